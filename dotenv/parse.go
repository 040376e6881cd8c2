package dotenv

import (
	"regexp"
	"strings"
)

// Entry is one KEY=VALUE pair with its value already decoded.
type Entry struct {
	Key   string
	Value string
}

var (
	exportPrefix = regexp.MustCompile(`^export\s+`)

	// assignment matches `key = value`; the value may be empty.
	assignment = regexp.MustCompile(`^([A-Za-z0-9_.-]+)\s*=\s*(.*)$`)

	// escapes are replaced one after another in this order, so `\\n`
	// decodes to a backslash followed by a newline.
	escapes = [][2]string{
		{`\n`, "\n"},
		{`\r`, "\r"},
		{`\t`, "\t"},
		{`\\`, `\`},
	}
)

// ParseLine parses a single dotenv line. It returns false for blank lines,
// comments and anything that is not an assignment.
//
// Order matters: the comment/blank check runs before the export prefix is
// stripped, which runs before the assignment match.
func ParseLine(line string) (Entry, bool) {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return Entry{}, false
	}

	line = exportPrefix.ReplaceAllString(line, "")

	m := assignment.FindStringSubmatch(line)
	if m == nil {
		return Entry{}, false
	}

	return Entry{Key: m[1], Value: decodeValue(m[2])}, true
}

// isDirective reports whether a trimmed line should be parsed at all.
func isDirective(line string) bool {
	line = strings.TrimSpace(line)
	return line != "" && !strings.HasPrefix(line, "#")
}

// decodeValue trims, strips one layer of matching quotes and expands
// \n, \r, \t and \\ in that order. Mismatched or lone quotes are kept as-is.
func decodeValue(raw string) string {
	v := strings.TrimSpace(raw)

	if len(v) >= 2 {
		first, last := v[0], v[len(v)-1]
		if first == last && (first == '"' || first == '\'') {
			v = v[1 : len(v)-1]
		}
	}

	for _, e := range escapes {
		v = strings.ReplaceAll(v, e[0], e[1])
	}
	return v
}
