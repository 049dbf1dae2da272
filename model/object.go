package model

import "strconv"

// Object is a flexible map representing one item of the filtered collection.
// Objects are opaque to the engine: it never mutates them, only projects
// string values out of them via facet-supplied projections. An object is
// identified by its position in the collection, which is stable for the
// lifetime of a session.
type Object map[string]interface{}

// StringValues projects the named attribute into a slice of strings.
// A single string value is normalized to a one-element slice; string slices
// (both []string and []interface{} as produced by json.Unmarshal) keep their
// order; numeric and boolean scalars are formatted. Missing attributes and
// unsupported element types project to nothing.
func (o Object) StringValues(attribute string) []string {
	raw, ok := o[attribute]
	if !ok {
		return nil
	}

	switch v := raw.(type) {
	case string:
		return []string{v}
	case []string:
		return v
	case []interface{}:
		values := make([]string, 0, len(v))
		for _, item := range v {
			if s, isStr := scalarString(item); isStr {
				values = append(values, s)
			}
		}
		return values
	default:
		if s, isStr := scalarString(raw); isStr {
			return []string{s}
		}
	}
	return nil
}

func scalarString(v interface{}) (string, bool) {
	switch s := v.(type) {
	case string:
		return s, true
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64), true
	case int:
		return strconv.Itoa(s), true
	case bool:
		return strconv.FormatBool(s), true
	}
	return "", false
}
