package util

// InPlaceFilter keeps the elements matching keep, reusing the backing array of s
func InPlaceFilter[T any](s *[]T, keep func(T) bool) {
	kept := (*s)[:0]

	for _, element := range *s {
		if keep(element) {
			kept = append(kept, element)
		}
	}

	var zero T
	for i := len(kept); i < len(*s); i++ {
		(*s)[i] = zero
	}

	*s = kept
}
