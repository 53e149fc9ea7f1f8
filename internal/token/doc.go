// Package token defines lexical token kinds and trivia for the rash front end.
// Invariants:
//   - Token.Text is a slice of the original source (no copies) for every kind
//     except StringLit, whose Text is the decoded value.
//   - Token.Span always covers the raw source bytes of the token.
//   - Attributes are lexed as '#' (Kind: Hash) + '[' ... ']'; no per-attribute kinds.
//   - Type names (u32, bool, str, Option, ...) are identifiers; the parser
//     maps them onto the closed type set.
//   - Words of the source language that rash deliberately does not support
//     (struct, impl, unsafe, ...) are lexed as Reserved so the parser can
//     reject them with a precise message.
package token
