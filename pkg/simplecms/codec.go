package simplecms

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// Slots is the nullable column layout of a stored field value. A valid row
// has exactly one slot populated; ReferenceType travels with ReferenceID.
type Slots struct {
	Text          *string
	Number        *float64
	Boolean       *bool
	Date          *time.Time
	JSON          []byte
	MediaID       *string
	ReferenceID   *string
	ReferenceType *string
}

// Populated returns the number of non-null slots.
func (s Slots) Populated() int {
	n := 0
	if s.Text != nil {
		n++
	}
	if s.Number != nil {
		n++
	}
	if s.Boolean != nil {
		n++
	}
	if s.Date != nil {
		n++
	}
	if s.JSON != nil {
		n++
	}
	if s.MediaID != nil {
		n++
	}
	if s.ReferenceID != nil {
		n++
	}
	return n
}

var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// Coerce converts a raw request value into the Value variant selected by the
// field's declared type. A nil raw value yields a nil Value.
func Coerce(field *FieldDefinition, raw interface{}) (Value, error) {
	if raw == nil {
		return nil, nil
	}
	if field.Multiple() {
		items, ok := raw.([]interface{})
		if !ok {
			items = []interface{}{raw}
		}
		out := make(ArrayValue, 0, len(items))
		for i, item := range items {
			if item == nil {
				continue
			}
			v, err := coerceScalar(field.Type, item)
			if err != nil {
				return nil, invalid(field.Key, "item %d: %v", i, err)
			}
			out = append(out, v)
		}
		return out, nil
	}
	v, err := coerceScalar(field.Type, raw)
	if err != nil {
		return nil, invalid(field.Key, "%v", err)
	}
	return v, nil
}

func coerceScalar(t FieldType, raw interface{}) (Value, error) {
	switch t {
	case FieldTypeText, FieldTypeTextarea, FieldTypeRichText, FieldTypeSelect:
		s, err := toString(raw)
		if err != nil {
			return nil, err
		}
		return TextValue(s), nil
	case FieldTypeNumber:
		f, err := toNumber(raw)
		if err != nil {
			return nil, err
		}
		return NumberValue(f), nil
	case FieldTypeBoolean:
		return BoolValue(toBool(raw)), nil
	case FieldTypeDate, FieldTypeDatetime:
		d, err := toDate(raw)
		if err != nil {
			return nil, err
		}
		return DateValue(d), nil
	case FieldTypeMedia:
		id, err := toID(raw)
		if err != nil {
			return nil, fmt.Errorf("media %v", err)
		}
		return MediaValue(id), nil
	case FieldTypeReference:
		if m, ok := raw.(map[string]interface{}); ok {
			id, err := toID(m["id"])
			if err != nil {
				return nil, fmt.Errorf("reference %v", err)
			}
			ref := ReferenceValue{ID: id}
			if rt, ok := m["type"].(string); ok {
				ref.Type = rt
			}
			return ref, nil
		}
		id, err := toID(raw)
		if err != nil {
			return nil, fmt.Errorf("reference %v", err)
		}
		return ReferenceValue{ID: id}, nil
	default:
		data, err := normalizeJSON(raw)
		if err != nil {
			return nil, fmt.Errorf("value is not JSON encodable: %v", err)
		}
		return JSONValue{Data: data}, nil
	}
}

func toString(raw interface{}) (string, error) {
	switch v := raw.(type) {
	case string:
		return v, nil
	case bool:
		return strconv.FormatBool(v), nil
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), nil
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32), nil
	case int:
		return strconv.Itoa(v), nil
	case int64:
		return strconv.FormatInt(v, 10), nil
	case json.Number:
		return v.String(), nil
	case time.Time:
		return v.UTC().Format(time.RFC3339Nano), nil
	case fmt.Stringer:
		return v.String(), nil
	case map[string]interface{}, []interface{}:
		b, err := json.Marshal(v)
		if err != nil {
			return "", err
		}
		return string(b), nil
	default:
		return fmt.Sprint(v), nil
	}
}

func toNumber(raw interface{}) (float64, error) {
	var f float64
	switch v := raw.(type) {
	case float64:
		f = v
	case float32:
		f = float64(v)
	case int:
		f = float64(v)
	case int32:
		f = float64(v)
	case int64:
		f = float64(v)
	case json.Number:
		n, err := v.Float64()
		if err != nil {
			return 0, fmt.Errorf("malformed number %q", v.String())
		}
		f = n
	case bool:
		if v {
			return 1, nil
		}
		return 0, nil
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return 0, nil
		}
		n, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, fmt.Errorf("malformed number %q", v)
		}
		f = n
	default:
		return 0, fmt.Errorf("cannot convert %T to number", raw)
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("number must be finite")
	}
	return f, nil
}

func toBool(raw interface{}) bool {
	switch v := raw.(type) {
	case bool:
		return v
	case string:
		if b, err := strconv.ParseBool(strings.TrimSpace(v)); err == nil {
			return b
		}
		return v != ""
	case float64:
		return v != 0
	case int:
		return v != 0
	case int64:
		return v != 0
	case json.Number:
		f, err := v.Float64()
		return err != nil || f != 0
	default:
		return true
	}
}

// toDate parses raw as a UTC instant truncated to microseconds, the
// precision of the Postgres timestamptz column.
func toDate(raw interface{}) (time.Time, error) {
	t, err := parseDate(raw)
	if err != nil {
		return time.Time{}, err
	}
	return t.Truncate(time.Microsecond), nil
}

func parseDate(raw interface{}) (time.Time, error) {
	switch v := raw.(type) {
	case time.Time:
		return v.UTC(), nil
	case string:
		s := strings.TrimSpace(v)
		for _, layout := range dateLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				return t.UTC(), nil
			}
		}
		return time.Time{}, fmt.Errorf("malformed date %q", v)
	case float64:
		return time.UnixMilli(int64(v)).UTC(), nil
	case int64:
		return time.UnixMilli(v).UTC(), nil
	case int:
		return time.UnixMilli(int64(v)).UTC(), nil
	case json.Number:
		n, err := v.Int64()
		if err != nil {
			return time.Time{}, fmt.Errorf("malformed date %q", v.String())
		}
		return time.UnixMilli(n).UTC(), nil
	default:
		return time.Time{}, fmt.Errorf("cannot convert %T to date", raw)
	}
}

func toID(raw interface{}) (string, error) {
	switch v := raw.(type) {
	case string:
		return v, nil
	case float64, int, int64, json.Number:
		return fmt.Sprint(v), nil
	case fmt.Stringer:
		return v.String(), nil
	case map[string]interface{}:
		if id, ok := v["id"]; ok {
			return toID(id)
		}
		return "", fmt.Errorf("object has no id")
	case nil:
		return "", fmt.Errorf("id is required")
	default:
		return "", fmt.Errorf("cannot use %T as id", raw)
	}
}

// normalizeJSON returns the decoded JSON form of v so that stored values
// compare the same regardless of backend.
func normalizeJSON(v interface{}) (interface{}, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var out interface{}
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// EncodeSlots maps a Value onto storage slots. The result always starts from
// an all-null slot set and populates exactly one slot.
func EncodeSlots(v Value) (Slots, error) {
	var s Slots
	switch val := v.(type) {
	case TextValue:
		str := string(val)
		s.Text = &str
	case NumberValue:
		f := float64(val)
		s.Number = &f
	case BoolValue:
		b := bool(val)
		s.Boolean = &b
	case DateValue:
		t := time.Time(val).UTC()
		s.Date = &t
	case MediaValue:
		id := string(val)
		s.MediaID = &id
	case ReferenceValue:
		id := val.ID
		s.ReferenceID = &id
		if val.Type != "" {
			rt := val.Type
			s.ReferenceType = &rt
		}
	case JSONValue:
		b, err := json.Marshal(val.Data)
		if err != nil {
			return Slots{}, fmt.Errorf("encode json value: %w", err)
		}
		s.JSON = b
	case ArrayValue:
		b, err := json.Marshal(val.Resolve())
		if err != nil {
			return Slots{}, fmt.Errorf("encode array value: %w", err)
		}
		s.JSON = b
	case nil:
		return Slots{}, fmt.Errorf("cannot encode nil value")
	default:
		return Slots{}, fmt.Errorf("unsupported value %T", v)
	}
	return s, nil
}

// DecodeSlots reconstructs a Value from storage slots, checking slots in
// declared order and falling back to JSON. When field is multi-valued and the
// JSON slot holds a list, each element is coerced back to the field's type.
func DecodeSlots(s Slots, field *FieldDefinition) (Value, error) {
	switch {
	case s.Text != nil:
		return TextValue(*s.Text), nil
	case s.Number != nil:
		return NumberValue(*s.Number), nil
	case s.Boolean != nil:
		return BoolValue(*s.Boolean), nil
	case s.Date != nil:
		return DateValue(s.Date.UTC()), nil
	case s.MediaID != nil:
		return MediaValue(*s.MediaID), nil
	case s.ReferenceID != nil:
		ref := ReferenceValue{ID: *s.ReferenceID}
		if s.ReferenceType != nil {
			ref.Type = *s.ReferenceType
		}
		return ref, nil
	}

	if s.JSON == nil {
		return nil, fmt.Errorf("field value has no populated slot")
	}
	var data interface{}
	if err := json.Unmarshal(s.JSON, &data); err != nil {
		return nil, fmt.Errorf("decode json value: %w", err)
	}
	if field != nil && field.Multiple() {
		if items, ok := data.([]interface{}); ok {
			out := make(ArrayValue, 0, len(items))
			for _, item := range items {
				v, err := coerceScalar(field.Type, item)
				if err != nil {
					out = append(out, JSONValue{Data: item})
					continue
				}
				out = append(out, v)
			}
			return out, nil
		}
	}
	return JSONValue{Data: data}, nil
}
