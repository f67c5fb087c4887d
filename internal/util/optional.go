package util

// Optional is a generic container for a value that may be absent.
type Optional[T any] struct {
	// Value holds the actual value, only meaningful when Present is true.
	Value T
	// Present indicates if a value is available.
	Present bool
}

// Some wraps the given value.
func Some[T any](value T) Optional[T] {
	return Optional[T]{Value: value, Present: true}
}

// None returns an empty Optional.
func None[T any]() Optional[T] {
	return Optional[T]{}
}

// Get returns the value and whether it is present.
func (o Optional[T]) Get() (T, bool) {
	return o.Value, o.Present
}

// OrElse returns the value if present, otherwise the given fallback.
func (o Optional[T]) OrElse(fallback T) T {
	if o.Present {
		return o.Value
	}
	return fallback
}

// Ptr returns a pointer to a copy of the value, or nil if absent.
func (o Optional[T]) Ptr() *T {
	if !o.Present {
		return nil
	}
	value := o.Value
	return &value
}
