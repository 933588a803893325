package normalizer

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// requiredFields are the raw attributes every record carries into the
// classification passes even when the API omitted them.
var requiredFields = []string{
	"title", "company_name", "location", "description",
	"via", "job_id", "detected_extensions",
}

// stringifyRecord converts every raw field to its textual form so the
// substring and regex passes apply uniformly. Absent and nil values become
// the literal "None".
func stringifyRecord(raw map[string]any) map[string]string {
	rec := make(map[string]string, len(raw)+len(requiredFields))
	for k, v := range raw {
		rec[k] = stringifyValue(v)
	}
	for _, k := range requiredFields {
		if _, ok := rec[k]; !ok {
			rec[k] = "None"
		}
	}
	return rec
}

// stringifyValue renders one decoded JSON value. Booleans render as
// True/False and map keys keep their names, so the remote-flag check can
// match the literal "work_from_home" and "True" substrings. Map keys are
// sorted to keep the rendering deterministic.
func stringifyValue(v any) string {
	switch val := v.(type) {
	case nil:
		return "None"
	case string:
		return val
	case bool:
		if val {
			return "True"
		}
		return "False"
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case int:
		return strconv.Itoa(val)
	case map[string]any:
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		parts := make([]string, 0, len(keys))
		for _, k := range keys {
			parts = append(parts, "'"+k+"': "+stringifyElem(val[k]))
		}
		return "{" + strings.Join(parts, ", ") + "}"
	case []any:
		parts := make([]string, 0, len(val))
		for _, e := range val {
			parts = append(parts, stringifyElem(e))
		}
		return "[" + strings.Join(parts, ", ") + "]"
	default:
		return fmt.Sprint(val)
	}
}

// stringifyElem is stringifyValue with strings quoted, used for values
// nested inside container renderings.
func stringifyElem(v any) string {
	if s, ok := v.(string); ok {
		return "'" + s + "'"
	}
	return stringifyValue(v)
}
