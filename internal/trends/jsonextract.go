package trends

import (
	"errors"
	"strings"
)

// ErrNoJSONObject means the model response contained no brace-delimited
// object at all.
var ErrNoJSONObject = errors.New("no JSON object found in response")

// ExtractJSONObject isolates the first-'{' to last-'}' substring of a
// free-form model response. The heuristic tolerates surrounding prose and
// markdown code fences without needing to strip them. It only locates the
// candidate object; the caller still has to parse it.
func ExtractJSONObject(s string) (string, error) {
	start := strings.Index(s, "{")
	if start < 0 {
		return "", ErrNoJSONObject
	}
	end := strings.LastIndex(s, "}")
	if end < start {
		return "", ErrNoJSONObject
	}
	return s[start : end+1], nil
}
