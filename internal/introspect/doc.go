// Package introspect provides the hosts the analyser reads structure from.
//
// Two hosts are available:
//   - Packages: Go packages loaded with golang.org/x/tools/go/packages;
//     structs are classes, interfaces are interfaces, doc comments come
//     from the AST
//   - Manifest: a YAML document describing classes and interfaces as data
//
// Key types:
//   - TypeID: package import path + type name
//   - Type: a class or interface with its public properties and methods
//   - TypeRef: a structurally declared type and its nullability
package introspect
