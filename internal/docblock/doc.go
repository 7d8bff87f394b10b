// Package docblock parses documentation comments that carry typed tags.
//
// A doc block is free text followed (or interleaved) by tag lines of the
// form "@name value". Tags such as @property and @param carry a member
// line with the grammar
//
//	<type>[|<type>...] $<name> [summary]
//
// which ParseMember turns into a MemberLine.
//
// Key types:
//   - DocBlock: comment body plus ordered tag lines
//   - MemberLine: types, name and summary of a single member annotation
package docblock
