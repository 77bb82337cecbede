package pkg

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestBytesToString(t *testing.T) {
	assert.Equal(t, "test", BytesToString([]byte("test")))
	assert.Equal(t, "", BytesToString(nil))
}

func TestIntOrDefault(t *testing.T) {
	assert.Equal(t, 12, IntOrDefault("12", 0))
	assert.Equal(t, 7, IntOrDefault(" 7 ", 0))
	assert.Equal(t, 0, IntOrDefault("twelve", 0))
	assert.Equal(t, 0, IntOrDefault("-3", 0))
	assert.Equal(t, 0, IntOrDefault("", 0))
	assert.Equal(t, 1, IntOrDefault("1.5", 1))
}

func TestFloatOrDefault(t *testing.T) {
	assert.Equal(t, 102.5, FloatOrDefault("102.5", 0))
	assert.Equal(t, 102.5, FloatOrDefault("102,5", 0))
	assert.Equal(t, 0.0, FloatOrDefault("heavy", 0))
	assert.Equal(t, 0.0, FloatOrDefault("-5", 0))
	assert.Equal(t, 0.0, FloatOrDefault("NaN", 0))
	assert.Equal(t, 0.0, FloatOrDefault("+Inf", 0))
}
