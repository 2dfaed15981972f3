// Package fn holds small generic helpers shared across packages.
package fn

// T is short for ternary
func T[T any](condition bool, trueVal, falseVal T) T {
	if condition {
		return trueVal
	}
	return falseVal
}

// CountIf returns how many of the first n indices satisfy pred.
func CountIf(n int, pred func(i int) bool) int {
	c := 0
	for i := 0; i < n; i++ {
		if pred(i) {
			c++
		}
	}
	return c
}
