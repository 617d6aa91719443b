package core

// EnsureLen returns a slice with the requested length, reusing buf capacity if possible.
func EnsureLen(buf []float64, n int) []float64 {
	if n <= 0 {
		return buf[:0]
	}
	if cap(buf) >= n {
		return buf[:n]
	}
	return make([]float64, n)
}

// SplitComplex writes the real and imaginary parts of src into re and im.
// Both destinations are resized with [EnsureLen] and returned.
func SplitComplex(re, im []float64, src []complex128) ([]float64, []float64) {
	re = EnsureLen(re, len(src))
	im = EnsureLen(im, len(src))
	for i, c := range src {
		re[i] = real(c)
		im[i] = imag(c)
	}
	return re, im
}

// Chunks partitions [0, n) into consecutive half-open ranges of at most size
// elements. It returns nil when n <= 0.
func Chunks(n, size int) [][2]int {
	if n <= 0 {
		return nil
	}
	if size <= 0 {
		size = n
	}
	out := make([][2]int, 0, (n+size-1)/size)
	for lo := 0; lo < n; lo += size {
		hi := lo + size
		if hi > n {
			hi = n
		}
		out = append(out, [2]int{lo, hi})
	}
	return out
}
