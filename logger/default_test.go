package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSetDefault(t *testing.T) {
	prev := GetLogger()
	t.Cleanup(func() { SetDefault(prev) })

	m := NewMockLogger().AllowAll()
	SetDefault(m)
	SetDefault(nil)
	assert.Same(t, m, GetLogger())

	Warn("bus: attempt failed", "attempt", 1)
	Info("k30: port opened")
	assert.Equal(t, []string{"bus: attempt failed"}, m.Messages("Warn"))
	assert.Equal(t, []string{"k30: port opened"}, m.Messages("Info"))
	assert.Same(t, m, With("driver", "k30"))
}
