// Package mdast provides the Markdown AST representation shared by every rule.
//
// A tree is built from goldmark's parse result by the parser/goldmark package.
// Every node records the byte span it covers in the owning document so that
// rules can report findings in document coordinates.
package mdast
