// Package ast holds the restricted syntax tree produced by the parser.
//
// Every node carries a Kind, a source Span and a kind-specific Data payload.
// The vocabularies are closed: consumers switch over Kind with one arm per
// variant. Trees are built once per compilation and never mutated afterwards.
package ast
