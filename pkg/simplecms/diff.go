package simplecms

import (
	"bytes"
	"encoding/json"
	"sort"
	"strings"
)

// Compare diffs two snapshot data maps over the union of their keys. Keys
// known to fields come first in display order; remaining keys follow
// alphabetically. Values compare by their JSON encoding; rich text compares
// with whitespace collapsed.
func Compare(fields []*FieldDefinition, a, b map[string]interface{}) []FieldDiff {
	ordered := SortFields(fields)
	byKey := make(map[string]*FieldDefinition, len(ordered))
	for _, f := range ordered {
		byKey[f.Key] = f
	}

	seen := make(map[string]bool)
	var keys []string
	for _, f := range ordered {
		_, inA := a[f.Key]
		_, inB := b[f.Key]
		if inA || inB {
			keys = append(keys, f.Key)
			seen[f.Key] = true
		}
	}
	var extra []string
	for _, m := range []map[string]interface{}{a, b} {
		for k := range m {
			if !seen[k] {
				seen[k] = true
				extra = append(extra, k)
			}
		}
	}
	sort.Strings(extra)
	keys = append(keys, extra...)

	diffs := make([]FieldDiff, 0, len(keys))
	for _, k := range keys {
		d := FieldDiff{FieldKey: k, FieldName: k, ValueA: a[k], ValueB: b[k]}
		richText := false
		if f, ok := byKey[k]; ok {
			d.FieldName = f.Name
			richText = f.Type == FieldTypeRichText
		}
		d.Changed = !valuesEqual(d.ValueA, d.ValueB, richText)
		diffs = append(diffs, d)
	}
	return diffs
}

func valuesEqual(a, b interface{}, richText bool) bool {
	if richText {
		sa, okA := a.(string)
		sb, okB := b.(string)
		if okA && okB {
			return collapseWhitespace(sa) == collapseWhitespace(sb)
		}
	}
	ja, errA := json.Marshal(a)
	jb, errB := json.Marshal(b)
	if errA != nil || errB != nil {
		return false
	}
	return bytes.Equal(ja, jb)
}

func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// SortFields returns fields ordered by display order, ties broken by key.
func SortFields(fields []*FieldDefinition) []*FieldDefinition {
	out := make([]*FieldDefinition, len(fields))
	copy(out, fields)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].DisplayOrder != out[j].DisplayOrder {
			return out[i].DisplayOrder < out[j].DisplayOrder
		}
		return out[i].Key < out[j].Key
	})
	return out
}
