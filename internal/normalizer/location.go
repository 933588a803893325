package normalizer

import "strings"

// extractState derives the state fragment from a raw location string. The
// branch order is part of the contract: the comma branch only applies when
// no dash is present, so the dash split wins whenever both occur. The "("
// branch is only reachable for strings with neither separator.
func extractState(location string) string {
	switch {
	case strings.Contains(location, ",") && !strings.Contains(location, "-"):
		return lastField(location)
	case strings.Contains(location, "-"):
		return lastField(location)
	case strings.Contains(location, "("):
		return firstField(location)
	default:
		return strings.TrimSpace(location)
	}
}

// extractCity derives the city fragment from a raw location string, with the
// same branch order as extractState.
func extractCity(location string) string {
	switch {
	case strings.Contains(location, ",") && !strings.Contains(location, "-"):
		return strings.SplitN(strings.TrimSpace(location), ",", 2)[0]
	case strings.Contains(location, "-"):
		return strings.SplitN(strings.TrimSpace(location), "-", 2)[0]
	case strings.Contains(location, "("):
		return firstField(location)
	default:
		return strings.TrimSpace(location)
	}
}

func lastField(s string) string {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return strings.TrimSpace(s)
	}
	return fields[len(fields)-1]
}

func firstField(s string) string {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return strings.TrimSpace(s)
	}
	return fields[0]
}
