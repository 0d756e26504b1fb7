package tmpl

import (
	"strconv"
	"strings"
)

// Resolve walks a dotted path such as "evaluationFocus.primaryConcerns.0"
// through v. The path "." returns v itself. The boolean is false as soon as
// a segment cannot be followed.
//
// An all-digit segment indexes into a list. Applied to a record it is looked
// up as an ordinary field name, so records with numeric keys still resolve.
func Resolve(v Value, path string) (Value, bool) {
	if path == "." {
		return v, true
	}
	if path == "" {
		return Value{}, false
	}

	cur := v
	for _, seg := range strings.Split(path, ".") {
		if seg == "" {
			return Value{}, false
		}
		switch cur.kind {
		case KindList:
			if !isIndex(seg) {
				return Value{}, false
			}
			i, err := strconv.Atoi(seg)
			if err != nil {
				return Value{}, false
			}
			next, ok := cur.Index(i)
			if !ok {
				return Value{}, false
			}
			cur = next
		case KindRecord:
			next, ok := cur.Field(seg)
			if !ok {
				return Value{}, false
			}
			cur = next
		default:
			return Value{}, false
		}
	}
	return cur, true
}

func isIndex(seg string) bool {
	for i := 0; i < len(seg); i++ {
		if seg[i] < '0' || seg[i] > '9' {
			return false
		}
	}
	return seg != ""
}
