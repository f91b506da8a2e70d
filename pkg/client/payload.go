package client

import (
	"bytes"
	"fmt"
	"math"
	"reflect"
	"slices"
	"strconv"
	"strings"

	"github.com/bytedance/sonic"
)

// Param is a single key-value entry of a Payload.
type Param struct {
	Key   string
	Value any
}

// Payload is the data sent with a request, either as query parameters or as
// a JSON object body. Entries keep their insertion order, which is the order
// used both in the query string and in the body.
type Payload []Param

// NewPayload creates a Payload from params. A repeated key keeps its first
// position and its last value.
func NewPayload(params ...Param) Payload {
	p := make(Payload, 0, len(params))
	for _, param := range params {
		p.Set(param.Key, param.Value)
	}
	return p
}

// PayloadFromMap creates a Payload from m with keys in lexical order.
func PayloadFromMap(m map[string]any) Payload {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	p := make(Payload, 0, len(keys))
	for _, k := range keys {
		p = append(p, Param{Key: k, Value: m[k]})
	}
	return p
}

// Get retrieves the value associated with the given key.
// It returns nil and false when the key is not present.
func (p Payload) Get(key string) (any, bool) {
	for _, param := range p {
		if param.Key == key {
			return param.Value, true
		}
	}
	return nil, false
}

// Set assigns value to key. An existing key is updated in place, a new key
// is appended.
func (p *Payload) Set(key string, value any) {
	for i := range *p {
		if (*p)[i].Key == key {
			(*p)[i].Value = value
			return
		}
	}
	*p = append(*p, Param{Key: key, Value: value})
}

// Len returns the number of entries.
func (p Payload) Len() int {
	return len(p)
}

// Keys returns the keys in order.
func (p Payload) Keys() []string {
	keys := make([]string, len(p))
	for i, param := range p {
		keys[i] = param.Key
	}
	return keys
}

// Map returns the entries as a map.
func (p Payload) Map() map[string]any {
	m := make(map[string]any, len(p))
	for _, param := range p {
		m[param.Key] = param.Value
	}
	return m
}

// Encode converts the Payload into a query string ("a=1&b=2").
// Keys and values are written verbatim: nothing is percent-encoded, so a
// value containing '&' or '=' changes how the server splits the query.
func (p Payload) Encode() string {
	var buf strings.Builder

	for i, param := range p {
		if i > 0 {
			buf.WriteByte('&')
		}
		buf.WriteString(param.Key)
		buf.WriteByte('=')
		buf.WriteString(FormatValue(param.Value))
	}
	return buf.String()
}

// MarshalJSON encodes the Payload as a JSON object with keys in order.
func (p Payload) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')

	for i, param := range p {
		if i > 0 {
			buf.WriteByte(',')
		}

		key, err := sonic.Marshal(param.Key)
		if err != nil {
			return nil, err
		}
		value, err := sonic.Marshal(param.Value)
		if err != nil {
			return nil, fmt.Errorf("payload key %q: %w", param.Key, err)
		}

		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}

	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// FormatValue renders v the way it appears in a query string: nil as
// "null", numbers in their shortest form and lists joined by commas.
// A nil pointer renders as "null" too. Maps, structs and other values that
// are neither scalars nor lists have no defined rendering; they currently
// fall through to fmt.Sprint.
func FormatValue(v any) string {
	if isNilPointer(v) {
		return "null"
	}

	switch val := v.(type) {
	case nil:
		return "null"
	case string:
		return val
	case bool:
		return strconv.FormatBool(val)
	case int:
		return strconv.Itoa(val)
	case int8:
		return strconv.FormatInt(int64(val), 10)
	case int16:
		return strconv.FormatInt(int64(val), 10)
	case int32:
		return strconv.FormatInt(int64(val), 10)
	case int64:
		return strconv.FormatInt(val, 10)
	case uint:
		return strconv.FormatUint(uint64(val), 10)
	case uint8:
		return strconv.FormatUint(uint64(val), 10)
	case uint16:
		return strconv.FormatUint(uint64(val), 10)
	case uint32:
		return strconv.FormatUint(uint64(val), 10)
	case uint64:
		return strconv.FormatUint(val, 10)
	case float32:
		return formatFloat(float64(val), 32)
	case float64:
		return formatFloat(val, 64)
	case fmt.Stringer:
		return val.String()
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array {
		parts := make([]string, rv.Len())
		for i := range parts {
			elem := rv.Index(i).Interface()
			if elem == nil || isNilPointer(elem) {
				// Empty slots render as empty strings inside a list.
				continue
			}
			parts[i] = FormatValue(elem)
		}
		return strings.Join(parts, ",")
	}

	return fmt.Sprint(v)
}

func isNilPointer(v any) bool {
	rv := reflect.ValueOf(v)
	return rv.Kind() == reflect.Pointer && rv.IsNil()
}

func formatFloat(f float64, bitSize int) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	}

	if f == 0 {
		return "0"
	}

	abs := math.Abs(f)
	if abs >= 1e-6 && abs < 1e21 {
		return strconv.FormatFloat(f, 'f', -1, bitSize)
	}

	s := strconv.FormatFloat(f, 'e', -1, bitSize)
	s = strings.Replace(s, "e-0", "e-", 1)
	return strings.Replace(s, "e+0", "e+", 1)
}
