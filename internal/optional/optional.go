// Package optional models request fields that may be omitted, explicitly
// cleared with null, or set to a value.
package optional

import (
	"bytes"
	"encoding/json"
)

type Value[T any] struct {
	value   T
	present bool
	null    bool
}

func Of[T any](value T) Value[T] {
	return Value[T]{value: value, present: true}
}

func Null[T any]() Value[T] {
	return Value[T]{present: true, null: true}
}

// Present reports whether the field appeared in the payload, null included.
func (field Value[T]) Present() bool {
	return field.present
}

func (field Value[T]) IsNull() bool {
	return field.present && field.null
}

// Get returns the value and whether a non-null value was supplied.
func (field Value[T]) Get() (T, bool) {
	return field.value, field.present && !field.null
}

// Pointer returns nil for omitted or null fields.
func (field Value[T]) Pointer() *T {
	if !field.present || field.null {
		return nil
	}
	value := field.value
	return &value
}

// Apply writes the field into target when present: null clears it, a value replaces it.
func (field Value[T]) Apply(target **T) {
	if !field.present {
		return
	}
	*target = field.Pointer()
}

func (field *Value[T]) UnmarshalJSON(data []byte) error {
	field.present = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		var zero T
		field.value = zero
		field.null = true
		return nil
	}
	field.null = false
	return json.Unmarshal(data, &field.value)
}

func (field Value[T]) MarshalJSON() ([]byte, error) {
	if !field.present || field.null {
		return []byte("null"), nil
	}
	return json.Marshal(field.value)
}
