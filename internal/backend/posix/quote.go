package posix

import "strings"

// literal renders constant text. Words made only of safe characters stay
// bare; everything else is single-quoted.
func literal(s string) string {
	if isBareWord(s) {
		return s
	}
	return singleQuote(s)
}

func isBareWord(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		case c == '_' || c == '.' || c == '/' || c == ',' || c == ':' || c == '@' || c == '%' || c == '+' || c == '-':
		default:
			return false
		}
	}
	return true
}

// singleQuote wraps s in single quotes. An embedded quote closes the string,
// adds an escaped quote and reopens it.
func singleQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

var doubleEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`, "$", `\$`, "`", "\\`")

// escapeDouble escapes the characters that stay special inside double quotes.
func escapeDouble(s string) string {
	return doubleEscaper.Replace(s)
}
