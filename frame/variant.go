package frame

// Variant identifies one of the supported protocol families.
type Variant uint8

const (
	// VariantCRC is the addressed, CRC-framed binary protocol (CT200).
	VariantCRC Variant = iota + 1
	// VariantFixed is the fixed-frame binary protocol (K30).
	VariantFixed
	// VariantASCII is the ASCII line protocol (UX100).
	VariantASCII
)

func (v Variant) String() string {
	switch v {
	case VariantCRC:
		return "crc"
	case VariantFixed:
		return "fixed"
	case VariantASCII:
		return "ascii"
	default:
		return "unknown"
	}
}

// BaudRate returns the fixed line speed of the variant, or 0 for an unknown variant.
func (v Variant) BaudRate() int {
	switch v {
	case VariantCRC, VariantFixed:
		return 19200
	case VariantASCII:
		return 9600
	default:
		return 0
	}
}
