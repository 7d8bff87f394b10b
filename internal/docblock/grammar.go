package docblock

import (
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// Whitespace is significant in both grammars (it separates the type list
// from the variable), so it is lexed as a token instead of being elided.
var lineLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Tag", Pattern: `@[A-Za-z][\w-]*`},
	{Name: "Sigil", Pattern: `\$[A-Za-z_]\w*`},
	{Name: "Type", Pattern: `[\w\\*\[][\w\\./*\[\]{}]*`},
	{Name: "Pipe", Pattern: `\|`},
	{Name: "Space", Pattern: `\s+`},
	{Name: "Word", Pattern: `\S+`},
})

// tagLine is a single "@name value" line of a doc block.
type tagLine struct {
	Name  string `parser:"@Tag"`
	Value string `parser:"( Space @( Tag | Sigil | Type | Pipe | Word | Space )* )?"`
}

// memberLine is the "<types> $name summary" payload of @property and @param.
type memberLine struct {
	Types   []string `parser:"@Type ( Pipe @Type )*"`
	Name    string   `parser:"Space @Sigil"`
	Summary string   `parser:"Space? @( Tag | Sigil | Type | Pipe | Word | Space )*"`
}

var (
	tagParser    = participle.MustBuild[tagLine](participle.Lexer(lineLexer))
	memberParser = participle.MustBuild[memberLine](participle.Lexer(lineLexer))
)

// MemberLine is a parsed member annotation such as "int|null $count items seen".
type MemberLine struct {
	Types   []string // raw type tokens in declaration order
	Name    string   // variable name without the sigil
	Summary string   // remaining free text
}

// ParseMember parses a member annotation line.
// It returns false when the line does not follow the member grammar.
func ParseMember(line string) (MemberLine, bool) {
	parsed, err := memberParser.ParseString("", strings.TrimSpace(line))
	if err != nil {
		return MemberLine{}, false
	}

	return MemberLine{
		Types:   parsed.Types,
		Name:    strings.TrimPrefix(parsed.Name, "$"),
		Summary: strings.TrimSpace(parsed.Summary),
	}, true
}

// parseTag parses a trimmed "@name value" line.
func parseTag(line string) (Tag, bool) {
	parsed, err := tagParser.ParseString("", line)
	if err != nil {
		return Tag{}, false
	}

	return Tag{
		Name:  strings.TrimPrefix(parsed.Name, "@"),
		Value: strings.TrimSpace(parsed.Value),
	}, true
}
