package domain

// firstNonEmpty returns the first non-empty string, or "" when all are empty.
func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

// valueOr returns *ptr, or current when the patch left the field unset.
func valueOr[T any](ptr *T, current T) T {
	if ptr == nil {
		return current
	}
	return *ptr
}
