package pkg

import (
	"math"
	"strconv"
	"strings"
	"unsafe"
)

// BytesToString converts bytes slice to a string without extra allocation
func BytesToString(buf []byte) string {
	return *(*string)(unsafe.Pointer(&buf))
}

// IntOrDefault parses a non-negative integer, falling back to def for
// malformed or negative input.
func IntOrDefault(raw string, def int) int {
	v, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || v < 0 {
		return def
	}
	return v
}

// FloatOrDefault parses a non-negative finite float, accepting a decimal comma.
func FloatOrDefault(raw string, def float64) float64 {
	raw = strings.ReplaceAll(strings.TrimSpace(raw), ",", ".")
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || v < 0 || math.IsInf(v, 0) || math.IsNaN(v) {
		return def
	}
	return v
}
