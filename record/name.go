package record

import (
	"regexp"
	"strconv"
	"strings"
)

var placeholder = regexp.MustCompile(`\$\{([^}]+)\}`)

// Name expands ${id}, ${line} and ${field1}..${field4} in template and
// returns a file-system safe artifact name. Unknown placeholders are kept
// verbatim before sanitizing. An empty result falls back to record-<line>.
func Name(template string, rec Record) string {
	id := rec.ID
	if strings.TrimSpace(id) == "" {
		id = "record-" + strconv.Itoa(rec.Line)
	}
	out := placeholder.ReplaceAllStringFunc(template, func(match string) string {
		key := strings.ToLower(strings.TrimSpace(placeholder.FindStringSubmatch(match)[1]))
		switch {
		case key == "id":
			return id
		case key == "line":
			return strconv.Itoa(rec.Line)
		case strings.HasPrefix(key, "field"):
			n, err := strconv.Atoi(strings.TrimPrefix(key, "field"))
			if err != nil || n < 1 || n > MaxFields {
				return match
			}
			return rec.Fields[n-1]
		}
		return match
	})
	out = sanitize(out)
	if out == "" {
		return "record-" + strconv.Itoa(rec.Line)
	}
	return out
}

// sanitize keeps letters, digits, '.', '-' and '_'; everything else becomes
// '_'. Leading dots are dropped so names never escape or hide.
func sanitize(s string) string {
	var b strings.Builder
	for _, r := range strings.TrimSpace(s) {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '.', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return strings.TrimLeft(b.String(), ".")
}
