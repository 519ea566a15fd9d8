package domain

import "strings"

// Record is one parsed access-log entry. Every field is optional.
type Record struct {
	values [fieldCount]*string
}

// RecordKey is the composite identity of a record.
type RecordKey struct {
	Host      string
	Timestamp string
	Request   string
}

// NewRecord maps values positionally onto host, logname, user, timestamp,
// request, status and bytes. Missing trailing values stay absent, extra values
// are ignored. Nothing is validated.
func NewRecord(values ...*string) Record {
	var r Record
	for i := 0; i < len(values) && i < fieldCount; i++ {
		if values[i] != nil {
			v := *values[i]
			r.values[i] = &v
		}
	}
	return r
}

// RecordFromStrings is NewRecord for values that are all present.
func RecordFromStrings(values ...string) Record {
	ptrs := make([]*string, len(values))
	for i := range values {
		ptrs[i] = &values[i]
	}
	return NewRecord(ptrs...)
}

// Get returns the value of f and whether it is present.
func (r Record) Get(f Field) (string, bool) {
	i := f.Index()
	if i < 0 || r.values[i] == nil {
		return "", false
	}
	return *r.values[i], true
}

// Value returns a copy of the value of f, nil when absent.
func (r Record) Value(f Field) *string {
	v, ok := r.Get(f)
	if !ok {
		return nil
	}
	return &v
}

func (r Record) Host() *string      { return r.Value(FieldHost) }
func (r Record) Logname() *string   { return r.Value(FieldLogname) }
func (r Record) User() *string      { return r.Value(FieldUser) }
func (r Record) Timestamp() *string { return r.Value(FieldTimestamp) }
func (r Record) Request() *string   { return r.Value(FieldRequest) }
func (r Record) Status() *string    { return r.Value(FieldStatus) }
func (r Record) Bytes() *string     { return r.Value(FieldBytes) }

// Values returns all seven values in field order.
func (r Record) Values() []*string {
	out := make([]*string, 0, fieldCount)
	for _, f := range Fields() {
		out = append(out, r.Value(f))
	}
	return out
}

// Key returns the (host, timestamp, request) identity. Absent parts are empty.
func (r Record) Key() RecordKey {
	host, _ := r.Get(FieldHost)
	ts, _ := r.Get(FieldTimestamp)
	req, _ := r.Get(FieldRequest)
	return RecordKey{Host: host, Timestamp: ts, Request: req}
}

// String joins the values with ", " in field order, absent values as <nil>.
func (r Record) String() string {
	parts := make([]string, 0, fieldCount)
	for _, v := range r.values {
		if v == nil {
			parts = append(parts, "<nil>")
			continue
		}
		parts = append(parts, *v)
	}
	return strings.Join(parts, ", ")
}
