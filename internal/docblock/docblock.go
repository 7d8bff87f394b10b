package docblock

import (
	"strings"
)

// Tag is a single tag line of a doc block.
type Tag struct {
	Name  string // tag name without "@", e.g. "param"
	Value string // text following the tag name
}

// DocBlock is a parsed documentation comment.
type DocBlock struct {
	comment string
	tags    []Tag
}

// Parse parses the text of a documentation comment.
// Comment markers ("//", "/**", "*/", leading "*") are tolerated so that
// raw comments and already-stripped text parse the same way.
func Parse(text string) *DocBlock {
	block := &DocBlock{}

	var body []string

	for _, line := range strings.Split(text, "\n") {
		line = stripMarkers(line)

		if strings.HasPrefix(line, "@") {
			if tag, ok := parseTag(line); ok {
				block.tags = append(block.tags, tag)

				continue
			}
		}

		body = append(body, line)
	}

	block.comment = strings.TrimSpace(strings.Join(body, "\n"))

	return block
}

func stripMarkers(line string) string {
	line = strings.TrimSpace(line)
	line = strings.TrimPrefix(line, "/**")
	line = strings.TrimSuffix(line, "*/")
	line = strings.TrimPrefix(line, "//")

	if strings.HasPrefix(line, "*") && !strings.HasPrefix(line, "*/") {
		line = line[1:]
	}

	return strings.TrimSpace(line)
}

// Comment returns the free-text body of the doc block.
func (d *DocBlock) Comment() string {
	if d == nil {
		return ""
	}

	return d.comment
}

// Tag returns the value of the first tag with the given name, or def if absent.
func (d *DocBlock) Tag(name, def string) string {
	if d == nil {
		return def
	}

	for _, t := range d.tags {
		if t.Name == name {
			return t.Value
		}
	}

	return def
}

// Tags returns the values of all tags with the given name, in order.
func (d *DocBlock) Tags(name string) []string {
	if d == nil {
		return nil
	}

	var values []string

	for _, t := range d.tags {
		if t.Name == name {
			values = append(values, t.Value)
		}
	}

	return values
}

// HasTag reports whether at least one tag with the given name exists.
func (d *DocBlock) HasTag(name string) bool {
	if d == nil {
		return false
	}

	for _, t := range d.tags {
		if t.Name == name {
			return true
		}
	}

	return false
}

// Link returns the first @link tag value, or an empty string.
func (d *DocBlock) Link() string {
	return d.Tag("link", "")
}

// FirstToken returns the first whitespace-delimited token of s.
func FirstToken(s string) string {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return ""
	}

	return fields[0]
}
