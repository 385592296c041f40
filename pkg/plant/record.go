package plant

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// statusKey is the attribute that carries a module's operating status.
const statusKey = "status"

// Record is the server-side state of a single module: its status plus any
// number of arbitrary attributes, kept in the order the server sent them.
type Record struct {
	Status string
	attrs  *orderedmap.OrderedMap[string, any]
}

// Detail is a humanized label/value line derived from a record attribute.
type Detail struct {
	Key   string
	Label string
	Value string
}

// NewRecord creates a record with the given status and no attributes.
func NewRecord(status string) *Record {
	return &Record{
		Status: status,
		attrs:  orderedmap.New[string, any](),
	}
}

// Set adds or replaces an attribute. Setting "status" updates Status instead.
func (r *Record) Set(key string, value any) *Record {
	if key == statusKey {
		r.Status = formatValue(value)
		return r
	}
	if r.attrs == nil {
		r.attrs = orderedmap.New[string, any]()
	}
	r.attrs.Set(key, value)
	return r
}

// Get returns the raw value of an attribute.
func (r *Record) Get(key string) (any, bool) {
	if key == statusKey {
		return r.Status, true
	}
	if r.attrs == nil {
		return nil, false
	}
	return r.attrs.Get(key)
}

// Keys returns the attribute keys (excluding status) in server order.
func (r *Record) Keys() []string {
	if r.attrs == nil {
		return nil
	}
	keys := make([]string, 0, r.attrs.Len())
	for pair := r.attrs.Oldest(); pair != nil; pair = pair.Next() {
		keys = append(keys, pair.Key)
	}
	return keys
}

// Details returns every non-status attribute as a humanized label/value pair.
func (r *Record) Details() []Detail {
	if r.attrs == nil {
		return nil
	}
	details := make([]Detail, 0, r.attrs.Len())
	for pair := r.attrs.Oldest(); pair != nil; pair = pair.Next() {
		details = append(details, Detail{
			Key:   pair.Key,
			Label: HumanizeKey(pair.Key),
			Value: formatValue(pair.Value),
		})
	}
	return details
}

// UnmarshalJSON decodes a record object, preserving attribute order.
func (r *Record) UnmarshalJSON(data []byte) error {
	fields := orderedmap.New[string, any]()
	if err := json.Unmarshal(data, fields); err != nil {
		return err
	}

	r.Status = ""
	if status, ok := fields.Delete(statusKey); ok {
		r.Status = formatValue(status)
	}
	r.attrs = fields
	return nil
}

// MarshalJSON encodes the record with status first, then attributes.
func (r *Record) MarshalJSON() ([]byte, error) {
	out := orderedmap.New[string, any]()
	out.Set(statusKey, r.Status)
	if r.attrs != nil {
		for pair := r.attrs.Oldest(); pair != nil; pair = pair.Next() {
			out.Set(pair.Key, pair.Value)
		}
	}
	return json.Marshal(out)
}

// formatValue renders a decoded JSON value the way it reads in a tooltip.
func formatValue(v any) string {
	switch val := v.(type) {
	case nil:
		return "null"
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(val), 'f', -1, 32)
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case bool:
		return strconv.FormatBool(val)
	case json.Number:
		return val.String()
	default:
		data, err := json.Marshal(val)
		if err != nil {
			return fmt.Sprintf("%v", val)
		}
		return string(bytes.TrimSpace(data))
	}
}
