package patch

// Coalesce returns the value pointed to by ptr if it's not nil, otherwise returns fallback
func Coalesce[T any](ptr *T, fallback T) T {
	if ptr != nil {
		return *ptr
	}
	return fallback
}

// Ptr returns a pointer to v.
func Ptr[T any](v T) *T {
	return &v
}

// Changed reports whether ptr carries a value different from current.
func Changed[T comparable](ptr *T, current T) bool {
	return ptr != nil && *ptr != current
}
