// Package model holds the immutable TOML value tree the emitters walk, plus
// the structural type-equivalence judge and the array classifier.
package model

// Kind tags the variants of a TOML value.
type Kind int

const (
	KindString Kind = iota
	KindInteger
	KindFloat
	KindBool
	KindDatetime
	KindArray
	KindTable
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindInteger:
		return "integer"
	case KindFloat:
		return "float"
	case KindBool:
		return "bool"
	case KindDatetime:
		return "datetime"
	case KindArray:
		return "array"
	case KindTable:
		return "table"
	default:
		return "unknown"
	}
}

// Value is one node of a parsed TOML document. Exactly the field matching
// Kind is meaningful. Datetimes keep the raw document text so the emitted
// literal round-trips the source exactly.
type Value struct {
	Kind     Kind
	Str      string
	Int      int64
	Float    float64
	Bool     bool
	Datetime string
	Array    []*Value
	Table    *Table
}

// Table is an ordered mapping from raw TOML key to value. Insertion order is
// preserved and drives field ordering in emitted records.
type Table struct {
	keys     []string
	values   map[string]*Value
	comments map[string]string
}

// NewTable returns an empty ordered table.
func NewTable() *Table {
	return &Table{values: make(map[string]*Value)}
}

// Set stores v under key, appending the key on first sight.
func (t *Table) Set(key string, v *Value) {
	if _, ok := t.values[key]; !ok {
		t.keys = append(t.keys, key)
	}
	t.values[key] = v
}

// Get returns the value stored under key.
func (t *Table) Get(key string) (*Value, bool) {
	v, ok := t.values[key]
	return v, ok
}

// Keys returns the keys in insertion order. The returned slice is shared;
// callers must not mutate it.
func (t *Table) Keys() []string {
	return t.keys
}

// Len returns the number of keys.
func (t *Table) Len() int {
	return len(t.keys)
}

// SetComment attaches the TOML comment recovered for key.
func (t *Table) SetComment(key, comment string) {
	if t.comments == nil {
		t.comments = make(map[string]string)
	}
	t.comments[key] = comment
}

// Comment returns the TOML comment attached to key, if any.
func (t *Table) Comment(key string) string {
	return t.comments[key]
}
