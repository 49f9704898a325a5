// Package record defines the schema-less records stored in collections.
package record

import (
	"strconv"
	"strings"
	"time"

	"github.com/tidwall/gjson"
)

const (
	// DefaultIDField is the id field used when a collection does not name one.
	DefaultIDField = "id"
	// CreatedByField tags the owner of a record.
	CreatedByField = "createdBy"
)

// Record maps field names onto string, number or nil values. Every record
// carries a unique id under its collection's id field.
type Record map[string]interface{}

// NewID returns a creation timestamp id (unix milliseconds).
func NewID(now time.Time) string {
	return strconv.FormatInt(now.UnixNano()/int64(time.Millisecond), 10)
}

// ID returns the value of the id field, or "" when unset.
func (r Record) ID(field string) string {
	if field == "" {
		field = DefaultIDField
	}
	return r.String(field)
}

// CreatedBy returns the owner tag.
func (r Record) CreatedBy() string {
	return r.String(CreatedByField)
}

// String renders the field as text. Numbers print without trailing zeros and
// nil or absent fields are "".
func (r Record) String(field string) string {
	return Format(r[field])
}

// Format renders a record value as text.
func Format(v interface{}) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(t), 'f', -1, 32)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case bool:
		return strconv.FormatBool(t)
	default:
		return ""
	}
}

// Clone returns a copy that shares no map with r. Values are scalars so a
// shallow copy of the map is enough.
func (r Record) Clone() Record {
	if r == nil {
		return nil
	}
	c := make(Record, len(r))
	for k, v := range r {
		c[k] = v
	}
	return c
}

// With returns a copy of r with field set to value.
func (r Record) With(field string, value interface{}) Record {
	c := r.Clone()
	if c == nil {
		c = Record{}
	}
	c[field] = value
	return c
}

// Missing returns the fields that are absent or blank, in the order given.
func (r Record) Missing(fields ...string) []string {
	var missing []string
	for _, f := range fields {
		if strings.TrimSpace(r.String(f)) == "" {
			missing = append(missing, f)
		}
	}
	return missing
}

// Lookup reads a gjson path out of a raw JSON record. Field names containing
// spaces work as-is ("Client Name"); dots and wildcards must be escaped.
func Lookup(raw []byte, path string) (string, bool) {
	res := gjson.GetBytes(raw, path)
	if !res.Exists() {
		return "", false
	}
	return res.String(), true
}

// CloneAll copies every record of a collection.
func CloneAll(items []Record) []Record {
	out := make([]Record, len(items))
	for i, r := range items {
		out[i] = r.Clone()
	}
	return out
}
