package util

// CloneSlice returns a copy of src, or nil when src is empty.
func CloneSlice[T any](src []T) []T {
	if len(src) == 0 {
		return nil
	}
	clone := make([]T, len(src))
	copy(clone, src)

	return clone
}

// Mean returns the arithmetic mean of values and false when values is empty.
func Mean[T ~float32 | ~float64 | ~int | ~int16 | ~uint16](values []T) (float64, bool) {
	if len(values) == 0 {
		return 0, false
	}

	var sum float64
	for _, v := range values {
		sum += float64(v)
	}

	return sum / float64(len(values)), true
}
