package normalize

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Field holds one scalar exactly as it was decoded from an API payload. The
// platform is loose about types (numbers arrive as strings, strings as
// numbers, empty strings stand in for absent values), so records keep the raw
// value and conversion happens in one place.
type Field struct {
	raw     any
	present bool
}

// Of wraps an already-decoded value. Of(nil) is treated as absent.
func Of(v any) Field {
	return Field{raw: v, present: true}
}

// Present reports whether the payload carried a non-null value.
func (f Field) Present() bool {
	return f.present && f.raw != nil
}

// Raw returns the value as decoded.
func (f Field) Raw() any {
	return f.raw
}

// UnmarshalJSON never fails: anything that is not valid JSON is kept as its
// literal text and later reported as malformed.
func (f *Field) UnmarshalJSON(data []byte) error {
	f.present = true
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		f.raw = string(data)
		return nil
	}
	f.raw = v
	return nil
}

// MarshalJSON emits the raw value so that a record can be written back out
// without losing what the platform sent.
func (f Field) MarshalJSON() ([]byte, error) {
	if !f.Present() {
		return []byte("null"), nil
	}
	return json.Marshal(f.raw)
}

func (f Field) String() string {
	if !f.Present() {
		return "<absent>"
	}
	return fmt.Sprintf("%v", f.raw)
}
