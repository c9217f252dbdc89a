package simplecms

import "strings"

func validateContentTypeFields(name, slug string, defaultStatus ContentStatus) error {
	if strings.TrimSpace(name) == "" {
		return invalid("name", "name is required")
	}
	if !ValidSlug(slug) {
		return invalid("slug", "slug %q must match [a-z0-9-]+", slug)
	}
	if err := validateStatus(defaultStatus); err != nil {
		return invalid("default_status", "unknown status %q", defaultStatus)
	}
	return nil
}

func validateFieldSpec(spec FieldSpec) error {
	if !ValidFieldKey(spec.Key) {
		return invalid("key", "field key %q must match [a-z0-9_]+", spec.Key)
	}
	if strings.TrimSpace(string(spec.Type)) == "" {
		return invalid(spec.Key, "field type is required")
	}
	return nil
}

func validateFieldSpecs(specs []FieldSpec) error {
	seen := make(map[string]bool, len(specs))
	for _, spec := range specs {
		if err := validateFieldSpec(spec); err != nil {
			return err
		}
		if seen[spec.Key] {
			return invalid(spec.Key, "duplicate field key")
		}
		seen[spec.Key] = true
	}
	return nil
}

// isBlank reports whether a raw value counts as missing for a required field.
func isBlank(raw interface{}) bool {
	switch v := raw.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(v) == ""
	case []interface{}:
		return len(v) == 0
	default:
		return false
	}
}

// checkRequired validates required fields against raw input. With partial
// set only keys present in raw are checked, so an update cannot blank a
// required field but need not resend it.
func checkRequired(fields []*FieldDefinition, raw map[string]interface{}, partial bool) error {
	for _, f := range SortFields(fields) {
		if !f.Required {
			continue
		}
		v, ok := raw[f.Key]
		if !ok && partial {
			continue
		}
		if isBlank(v) {
			return invalid(f.Key, "field is required")
		}
	}
	return nil
}
