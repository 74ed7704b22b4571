package utils

// Value dereferences p, returning the zero value when p is nil
func Value[T any](p *T) T {
	if p == nil {
		var zero T
		return zero
	}
	return *p
}

// Ptr returns a pointer to v. Used for optional JSON fields in partial
// update payloads.
func Ptr[T any](v T) *T {
	return &v
}
