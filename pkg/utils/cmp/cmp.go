package cmp

// SliceEq reports whether a and b have the same elements in the same order.
func SliceEq[T comparable](a, b []T) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// SliceContentEq reports whether a and b have the same elements,
// ignoring order. Duplicates count.
func SliceContentEq[T comparable](a, b []T) bool {
	if len(a) != len(b) {
		return false
	}
	rest := make(map[T]int, len(a))
	for _, v := range a {
		rest[v] += 1
	}
	for _, v := range b {
		rest[v] -= 1
		if rest[v] < 0 {
			return false
		}
	}
	return true
}

// MapEq reports whether a and b hold the same key-value pairs.
func MapEq[K, V comparable](a, b map[K]V) bool {
	if len(a) != len(b) {
		return false
	}
	for k, va := range a {
		if vb, ok := b[k]; !ok || va != vb {
			return false
		}
	}
	return true
}
