package table

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
)

// Object is a decoded JSON object that remembers its key order.
// Values are *Object, []any, string, int64, float64, bool or nil.
type Object struct {
	keys   []string
	values map[string]any
}

// NewObject creates an empty object
func NewObject() *Object {
	return &Object{values: make(map[string]any)}
}

// Put sets key, keeping its first position if it already exists
func (o *Object) Put(key string, value any) {
	if _, ok := o.values[key]; !ok {
		o.keys = append(o.keys, key)
	}
	o.values[key] = value
}

// Keys returns the keys in document order
func (o *Object) Keys() []string {
	return o.keys
}

// Get returns the raw value for key
func (o *Object) Get(key string) any {
	if o == nil {
		return nil
	}
	return o.values[key]
}

// Has reports whether key is present, even with a null value
func (o *Object) Has(key string) bool {
	if o == nil {
		return false
	}
	_, ok := o.values[key]
	return ok
}

// Object returns the nested object at key, or nil
func (o *Object) Object(key string) *Object {
	v, _ := o.Get(key).(*Object)
	return v
}

// Array returns the array at key, or nil
func (o *Object) Array(key string) []any {
	v, _ := o.Get(key).([]any)
	return v
}

// Objects returns the objects held in the array at key
func (o *Object) Objects(key string) []*Object {
	var out []*Object
	for _, item := range o.Array(key) {
		if obj, ok := item.(*Object); ok {
			out = append(out, obj)
		}
	}
	return out
}

// String returns the value at key as text
func (o *Object) String(key string) string {
	return formatCell(o.Get(key))
}

// Float returns the value at key as a float64 if it is numeric
func (o *Object) Float(key string) (float64, bool) {
	return toFloat(o.Get(key))
}

// MarshalJSON writes the object with its original key order
func (o *Object) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, key := range o.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(key)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		v, err := json.Marshal(o.values[key])
		if err != nil {
			return nil, err
		}
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Parse decodes a JSON document, keeping object key order
func Parse(body []byte) (any, error) {
	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("failed to parse JSON: invalid document")
	}
	return value(gjson.ParseBytes(body)), nil
}

// ParseObjects decodes a JSON array of objects, or a single object.
// Non-object array elements are skipped.
func ParseObjects(body []byte) ([]*Object, error) {
	v, err := Parse(body)
	if err != nil {
		return nil, err
	}

	switch t := v.(type) {
	case *Object:
		return []*Object{t}, nil
	case []any:
		out := make([]*Object, 0, len(t))
		for _, item := range t {
			if obj, ok := item.(*Object); ok {
				out = append(out, obj)
			}
		}
		return out, nil
	case nil:
		return nil, nil
	default:
		return nil, fmt.Errorf("expected a JSON object or array, got %T", v)
	}
}

func value(r gjson.Result) any {
	switch {
	case r.IsObject():
		obj := NewObject()
		r.ForEach(func(k, v gjson.Result) bool {
			obj.Put(k.Str, value(v))
			return true
		})
		return obj
	case r.IsArray():
		arr := []any{}
		r.ForEach(func(_, v gjson.Result) bool {
			arr = append(arr, value(v))
			return true
		})
		return arr
	}

	switch r.Type {
	case gjson.String:
		return r.Str
	case gjson.Number:
		return number(strings.TrimSpace(r.Raw))
	case gjson.True:
		return true
	case gjson.False:
		return false
	default:
		return nil
	}
}

func number(raw string) any {
	if i, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(raw, 64); err == nil {
		return f
	}
	return raw
}

// Number converts numeric text to int64 or float64 and returns other values unchanged
func Number(v any) any {
	s, ok := v.(string)
	if !ok {
		return v
	}
	s = strings.TrimSpace(s)
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	return v
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int64:
		return float64(n), true
	case int:
		return float64(n), true
	case float64:
		return n, true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	case string:
		if f, err := strconv.ParseFloat(strings.TrimSpace(n), 64); err == nil {
			return f, true
		}
	}
	return 0, false
}
