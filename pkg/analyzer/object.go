package analyzer

import (
	"bytes"
	"encoding/json"
	"math"
	"time"

	"github.com/tidwall/gjson"
)

// Field is a single member of a decoded JSON object.
// Value keeps the JSON type tag and the exact source text of the member.
type Field struct {
	Key   string
	Value gjson.Result
}

// Object is a JSON object that remembers the order its members appeared in.
// Members are passed through unvalidated.
type Object struct {
	fields []Field
	index  map[string]int
}

// ParseObject parses data as a JSON object.
// Duplicate keys keep their first position and their last value.
func ParseObject(data string) (Object, error) {
	if !gjson.Valid(data) {
		return Object{}, &FormatError{Reason: ErrMalformedJSON.Error(), Err: ErrMalformedJSON}
	}
	root := gjson.Parse(data)
	if !root.IsObject() {
		return Object{}, &FormatError{Reason: ErrMalformedJSON.Error() + ": not an object", Err: ErrMalformedJSON}
	}

	obj := Object{index: make(map[string]int)}
	root.ForEach(func(key, value gjson.Result) bool {
		k := key.String()
		if i, ok := obj.index[k]; ok {
			obj.fields[i].Value = value
			return true
		}
		obj.index[k] = len(obj.fields)
		obj.fields = append(obj.fields, Field{Key: k, Value: value})
		return true
	})
	return obj, nil
}

// Get returns the member stored under key.
func (o Object) Get(key string) (gjson.Result, bool) {
	i, ok := o.index[key]
	if !ok {
		return gjson.Result{}, false
	}
	return o.fields[i].Value, true
}

// Len returns the number of members.
func (o Object) Len() int { return len(o.fields) }

// Keys returns member names in source order.
func (o Object) Keys() []string {
	keys := make([]string, len(o.fields))
	for i, f := range o.fields {
		keys[i] = f.Key
	}
	return keys
}

// Fields returns a copy of the members in source order.
func (o Object) Fields() []Field {
	out := make([]Field, len(o.fields))
	copy(out, o.fields)
	return out
}

// Map converts the object to plain Go values as encoding/json would produce them.
func (o Object) Map() map[string]any {
	m := make(map[string]any, len(o.fields))
	for _, f := range o.fields {
		m[f.Key] = f.Value.Value()
	}
	return m
}

// MarshalJSON writes members in source order with their original value text.
func (o Object) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range o.fields {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(f.Key)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		if f.Value.Raw == "" {
			buf.WriteString("null")
			continue
		}
		buf.WriteString(f.Value.Raw)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Header is the decoded JOSE header.
type Header struct {
	Object
}

// Alg returns the "alg" member. ok is false when it is absent, empty or not a string.
func (h Header) Alg() (alg string, ok bool) {
	v, found := h.Get("alg")
	if !found || v.Type != gjson.String || v.Str == "" {
		return "", false
	}
	return v.Str, true
}

// Typ returns the "typ" member when it is a string.
func (h Header) Typ() (string, bool) {
	v, found := h.Get("typ")
	if !found || v.Type != gjson.String {
		return "", false
	}
	return v.Str, true
}

// Claims is the decoded payload.
type Claims struct {
	Object
}

// Date values outside this range are rejected, matching the ECMAScript time range.
const maxEpochSeconds = 8.64e12

// Expiration converts the "exp" claim (seconds since the Unix epoch) to an instant.
// ok is false when exp is absent or null. A non-numeric exp returns ErrInvalidExp.
func (c Claims) Expiration() (exp time.Time, ok bool, err error) {
	v, found := c.Get("exp")
	if !found || v.Type == gjson.Null {
		return time.Time{}, false, nil
	}
	if v.Type != gjson.Number || math.IsInf(v.Num, 0) || math.IsNaN(v.Num) || math.Abs(v.Num) > maxEpochSeconds {
		return time.Time{}, false, ErrInvalidExp
	}
	ms := int64(math.Trunc(v.Num * 1000))
	return time.UnixMilli(ms).UTC(), true, nil
}
