// Package token defines the lexical vocabulary of Commodore BASIC V2.
// Invariants:
//   - Keywords is the canonical ordered token table; entry i encodes as byte 0x80+i.
//     Table order is load-bearing: lookups take the first prefix match.
//   - Token.Text is a verbatim slice of the line content; strings keep both quotes.
//   - The lexer assigns only coarse kinds. Keywords, identifiers and numbers
//     are all Word/Number tokens and are told apart by the classifiers here.
package token
