package models

import (
	"bytes"
	"encoding/json"
)

// Optional distinguishes the three states a JSON field can be in on a
// partial update: absent (leave the stored value alone), explicitly null
// (clear the stored value), and present with a value.
type Optional[T any] struct {
	Set   bool // field appeared in the payload
	Valid bool // field was non-null
	Value T
}

// Some is a convenience constructor for a present value.
func Some[T any](v T) Optional[T] {
	return Optional[T]{Set: true, Valid: true, Value: v}
}

// Null is a convenience constructor for an explicit null.
func Null[T any]() Optional[T] {
	return Optional[T]{Set: true}
}

func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.Set = true
	if bytes.Equal(data, []byte("null")) {
		o.Valid = false
		var zero T
		o.Value = zero
		return nil
	}
	if err := json.Unmarshal(data, &o.Value); err != nil {
		return err
	}
	o.Valid = true
	return nil
}

// Apply overwrites dst when a value is present. Explicit null is a no-op
// for non-nullable destinations.
func (o Optional[T]) Apply(dst *T) {
	if o.Set && o.Valid {
		*dst = o.Value
	}
}

// ApplyPtr overwrites a nullable destination: a present value replaces it,
// an explicit null clears it, absent leaves it alone.
func (o Optional[T]) ApplyPtr(dst **T) {
	if !o.Set {
		return
	}
	if !o.Valid {
		*dst = nil
		return
	}
	v := o.Value
	*dst = &v
}
