package simplecms

import (
	"time"
)

// ValueKind identifies the variant held by a Value.
type ValueKind string

// Value kinds, one per storage slot.
const (
	KindText      ValueKind = "text"
	KindNumber    ValueKind = "number"
	KindBoolean   ValueKind = "boolean"
	KindDate      ValueKind = "date"
	KindJSON      ValueKind = "json"
	KindMedia     ValueKind = "media"
	KindReference ValueKind = "reference"
	KindArray     ValueKind = "array"
)

// Value is the typed content of a field value. The set of implementations is
// closed: TextValue, NumberValue, BoolValue, DateValue, JSONValue, MediaValue,
// ReferenceValue and ArrayValue.
type Value interface {
	Kind() ValueKind
	// Resolve returns the JSON-native form stored in version snapshots and
	// returned to callers.
	Resolve() interface{}
	sealed()
}

// TextValue holds text, textarea, rich_text and select values.
type TextValue string

// NumberValue holds number values.
type NumberValue float64

// BoolValue holds boolean values.
type BoolValue bool

// DateValue holds date and datetime values.
type DateValue time.Time

// JSONValue holds values of unrecognized field types as decoded JSON.
type JSONValue struct {
	Data interface{}
}

// MediaValue holds an opaque media id.
type MediaValue string

// ReferenceValue points at another entity. Type is optional.
type ReferenceValue struct {
	ID   string
	Type string
}

// ArrayValue holds an ordered list of values for multi-valued fields.
type ArrayValue []Value

func (TextValue) Kind() ValueKind      { return KindText }
func (NumberValue) Kind() ValueKind    { return KindNumber }
func (BoolValue) Kind() ValueKind      { return KindBoolean }
func (DateValue) Kind() ValueKind      { return KindDate }
func (JSONValue) Kind() ValueKind      { return KindJSON }
func (MediaValue) Kind() ValueKind     { return KindMedia }
func (ReferenceValue) Kind() ValueKind { return KindReference }
func (ArrayValue) Kind() ValueKind     { return KindArray }

func (v TextValue) Resolve() interface{}   { return string(v) }
func (v NumberValue) Resolve() interface{} { return float64(v) }
func (v BoolValue) Resolve() interface{}   { return bool(v) }
func (v DateValue) Resolve() interface{} {
	return time.Time(v).UTC().Format(time.RFC3339Nano)
}
func (v JSONValue) Resolve() interface{}  { return v.Data }
func (v MediaValue) Resolve() interface{} { return string(v) }
func (v ReferenceValue) Resolve() interface{} {
	if v.Type == "" {
		return v.ID
	}
	return map[string]interface{}{"id": v.ID, "type": v.Type}
}
func (v ArrayValue) Resolve() interface{} {
	out := make([]interface{}, len(v))
	for i, item := range v {
		out[i] = item.Resolve()
	}
	return out
}

func (TextValue) sealed()      {}
func (NumberValue) sealed()    {}
func (BoolValue) sealed()      {}
func (DateValue) sealed()      {}
func (JSONValue) sealed()      {}
func (MediaValue) sealed()     {}
func (ReferenceValue) sealed() {}
func (ArrayValue) sealed()     {}

// ResolveValue returns v.Resolve(), or nil for a nil Value.
func ResolveValue(v Value) interface{} {
	if v == nil {
		return nil
	}
	return v.Resolve()
}
