// Package analyze builds the type graph of a program's public API.
//
// Starting from one or more root type names it discovers every class and
// interface reachable through member and parameter declarations, reading
// structure from an introspection Source and typed tags from doc comments.
// Documentation tags take priority over structural types; each member uses
// exactly one of the two.
//
// Key types:
//   - Analyzer: the crawler and owner of the registry
//   - TypeDescriptor: a discovered class or interface
//   - MemberDescriptor: a property, method or parameter
//
// Key functions:
//   - Normalize: canonicalizes a raw type-name token
//   - FormatSignature: renders a method signature for display
package analyze
