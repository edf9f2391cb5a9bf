// Package seed provides the deterministic string hash behind every daily
// pick. The same key always maps to the same index on every platform.
package seed

import "unicode/utf16"

// Hash folds key with h = h*31 + c over its UTF-16 code units using 32-bit
// wrapping arithmetic and returns the absolute value. Iterating UTF-16
// units keeps picks identical to those stored by existing clients.
func Hash(key string) int64 {
	var h int32
	for _, c := range utf16.Encode([]rune(key)) {
		h = (h << 5) - h + int32(c)
	}
	v := int64(h)
	if v < 0 {
		v = -v
	}
	return v
}

// Index maps key onto [0, n). It returns -1 when n is not positive.
func Index(key string, n int) int {
	if n <= 0 {
		return -1
	}
	return int(Hash(key) % int64(n))
}
