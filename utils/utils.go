// Package utils provides utility functions for the application.
package utils

// Deref returns the value p points to, or the zero value when p is nil
func Deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}
