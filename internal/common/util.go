package common

// WipeByteArray zeroes b in place. It is safe to call with a nil slice.
func WipeByteArray(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
