package textdiff

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/dlclark/regexp2"
	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"
)

// Format names understood by Format. Formats other than FormatJSON and FormatSQL are passed through unchanged and only select a syntax
// highlighter in the viewer.
const (
	FormatPlain = "plain"
	FormatJSON  = "json"
	FormatSQL   = "sql"
)

// Formats returns the selectable format names.
func Formats() []string {
	return []string{FormatPlain, FormatJSON, "javascript", "typescript", "python", FormatSQL, "java", "csharp", "go", "html", "css"}
}

var jsonOptions = &pretty.Options{
	Width:    0, // never collapse arrays onto one line
	Prefix:   "",
	Indent:   "  ",
	SortKeys: false,
}

// sqlKeywords are applied in order; a multi-word keyword whose last word was already split by an earlier entry no longer matches.
var sqlKeywords = []string{
	"SELECT", "FROM", "WHERE", "JOIN", "LEFT JOIN", "RIGHT JOIN", "INNER JOIN",
	"ON", "AND", "OR", "GROUP BY", "ORDER BY", "HAVING", "LIMIT", "OFFSET",
	"INSERT INTO", "VALUES", "UPDATE", "SET", "DELETE FROM", "CREATE TABLE",
	"ALTER TABLE", "DROP TABLE", "CREATE INDEX", "DROP INDEX",
}

var sqlPatterns = compileSQLPatterns()

type sqlPattern struct {
	keyword string
	re      *regexp2.Regexp
}

func compileSQLPatterns() []sqlPattern {
	patterns := make([]sqlPattern, 0, len(sqlKeywords))
	for _, kw := range sqlKeywords {
		patterns = append(patterns, sqlPattern{
			keyword: kw,
			re:      regexp2.MustCompile(`\b`+kw+`\b`, regexp2.IgnoreCase|regexp2.ECMAScript),
		})
	}
	return patterns
}

// Format applies a formatting pass before comparison. JSON is parsed and printed again with two-space indentation, so documents that
// parse to the same value format the same. SQL gets a newline before each recognized keyword. Format never fails: input that cannot be
// formatted is returned as is.
func Format(text, format string) string {
	switch strings.ToLower(format) {
	case FormatJSON:
		return formatJSON(text)
	case FormatSQL:
		return formatSQL(text)
	default:
		return text
	}
}

func formatJSON(text string) string {
	if !gjson.Valid(text) {
		return text
	}
	var b strings.Builder
	writeJSON(&b, gjson.Parse(text))
	return strings.TrimRight(string(pretty.PrettyOptions([]byte(b.String()), jsonOptions)), "\n")
}

// writeJSON writes v in compact canonical form, as a JavaScript JSON.parse then JSON.stringify round trip would: numbers and strings are
// re-encoded, a repeated key keeps its first position and its last value, and array-index keys come first in ascending order.
func writeJSON(b *strings.Builder, v gjson.Result) {
	switch {
	case v.IsObject():
		writeJSONObject(b, v)
	case v.IsArray():
		b.WriteByte('[')
		first := true
		v.ForEach(func(_, elem gjson.Result) bool {
			if !first {
				b.WriteByte(',')
			}
			first = false
			writeJSON(b, elem)
			return true
		})
		b.WriteByte(']')
	case v.Type == gjson.Number:
		b.WriteString(jsonNumber(v.Num))
	case v.Type == gjson.String:
		writeJSONString(b, v.Str)
	case v.Type == gjson.True:
		b.WriteString("true")
	case v.Type == gjson.False:
		b.WriteString("false")
	default:
		b.WriteString("null")
	}
}

type jsonMember struct {
	key   string
	value gjson.Result
}

func writeJSONObject(b *strings.Builder, v gjson.Result) {
	var members []jsonMember
	index := make(map[string]int)
	v.ForEach(func(k, val gjson.Result) bool {
		key := k.String()
		if i, ok := index[key]; ok {
			members[i].value = val
			return true
		}
		index[key] = len(members)
		members = append(members, jsonMember{key: key, value: val})
		return true
	})

	sort.SliceStable(members, func(i, j int) bool {
		ni, iok := arrayIndex(members[i].key)
		nj, jok := arrayIndex(members[j].key)
		if iok && jok {
			return ni < nj
		}
		return iok && !jok
	})

	b.WriteByte('{')
	for i, m := range members {
		if i > 0 {
			b.WriteByte(',')
		}
		writeJSONString(b, m.key)
		b.WriteByte(':')
		writeJSON(b, m.value)
	}
	b.WriteByte('}')
}

// arrayIndex reports whether key is a canonical array index (0 to 2^32-2, no leading zeros).
func arrayIndex(key string) (uint64, bool) {
	if key == "" || (len(key) > 1 && key[0] == '0') {
		return 0, false
	}
	for _, c := range key {
		if c < '0' || c > '9' {
			return 0, false
		}
	}
	n, err := strconv.ParseUint(key, 10, 32)
	if err != nil || n == math.MaxUint32 {
		return 0, false
	}
	return n, true
}

// jsonNumber formats f the way JavaScript prints numbers: plain decimals between 1e-6 and 1e21, exponent form outside, null when not
// finite.
func jsonNumber(f float64) string {
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return "null"
	}
	if f == 0 {
		return "0"
	}
	if abs := math.Abs(f); abs >= 1e-6 && abs < 1e21 {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	mantissa, exp, _ := strings.Cut(strconv.FormatFloat(f, 'e', -1, 64), "e")
	return mantissa + "e" + exp[:1] + strings.TrimLeft(exp[1:], "0")
}

// writeJSONString quotes s, escaping only quotes, backslashes and control characters.
func writeJSONString(b *strings.Builder, s string) {
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\b':
			b.WriteString(`\b`)
		case '\f':
			b.WriteString(`\f`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		default:
			if r < 0x20 {
				fmt.Fprintf(b, `\u%04x`, r)
			} else {
				b.WriteRune(r)
			}
		}
	}
	b.WriteByte('"')
}

func formatSQL(sql string) string {
	formatted := sql
	for _, p := range sqlPatterns {
		out, err := p.re.Replace(formatted, "\n"+p.keyword, -1, -1)
		if err != nil {
			return sql
		}
		formatted = out
	}
	return strings.TrimSpace(formatted)
}
