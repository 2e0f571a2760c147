package rancher

import (
	"strings"
	"unicode"
)

type TokenKind uint8

const (
	TokenGlyph TokenKind = iota
	TokenSpace
	TokenBreak
)

// Token is one cell of an input stream.
type Token struct {
	Kind TokenKind
	Rune rune
}

func TokenOf(r rune) Token {
	switch {
	case r == '\n':
		return Token{Kind: TokenBreak, Rune: r}
	case unicode.IsSpace(r):
		return Token{Kind: TokenSpace, Rune: ' '}
	default:
		return Token{Kind: TokenGlyph, Rune: r}
	}
}

func Tokenize(s string) []Token {
	var out = make([]Token, 0, len(s))
	for _, r := range s {
		if r == '\r' {
			continue
		}
		out = append(out, TokenOf(r))
	}
	return out
}

func TokensString(tokens []Token) string {
	var sb strings.Builder
	for _, t := range tokens {
		sb.WriteRune(t.Rune)
	}
	return sb.String()
}
