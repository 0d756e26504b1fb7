package tmpl

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Format renders v the way it is inserted into a prompt: null is empty, lists
// are joined with ", " and records (or nested lists) are compact JSON.
func Format(v Value) string {
	switch v.kind {
	case KindNull:
		return ""
	case KindString:
		return v.str
	case KindNumber:
		return strconv.FormatFloat(v.num, 'f', -1, 64)
	case KindBool:
		return strconv.FormatBool(v.b)
	case KindList:
		parts := make([]string, len(v.list))
		for i, item := range v.list {
			if item.kind == KindList || item.kind == KindRecord {
				parts[i] = compactJSON(item)
				continue
			}
			parts[i] = Format(item)
		}
		return strings.Join(parts, ", ")
	case KindRecord:
		return compactJSON(v)
	}
	return ""
}

func compactJSON(v Value) string {
	b, err := json.Marshal(v.ToAny())
	if err != nil {
		// Values decoded from JSON or YAML always marshal.
		return ""
	}
	return string(b)
}
