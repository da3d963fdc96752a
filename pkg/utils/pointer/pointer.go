// Package pointer helps to fill optional (pointer) fields with literals.
package pointer

// Ref returns a pointer to a copy of t.
func Ref[T any](t T) *T {
	return &t
}
