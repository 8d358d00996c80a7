package slices

// Map applies mapper to each element and returns the mapped slice.
func Map[T, R any](sli []T, mapper func(T) R) []R {
	mapped := make([]R, len(sli))
	for i, v := range sli {
		mapped[i] = mapper(v)
	}
	return mapped
}

// First returns the first element satisfying pred, and whether it was found.
func First[T any](sli []T, pred func(T) bool) (T, bool) {
	for _, v := range sli {
		if pred(v) {
			return v, true
		}
	}
	return *new(T), false
}

// Contains reports whether pred holds for some element.
func Contains[T any](sli []T, pred func(T) bool) bool {
	_, ok := First(sli, pred)
	return ok
}

// ContainsItem reports whether item is an element of sli.
func ContainsItem[T comparable](sli []T, item T) bool {
	return Contains(sli, func(v T) bool { return v == item })
}

// Filter returns the elements satisfying pred, keeping order.
func Filter[T any](sli []T, pred func(T) bool) []T {
	filtered := []T{}
	for _, v := range sli {
		if pred(v) {
			filtered = append(filtered, v)
		}
	}
	return filtered
}
