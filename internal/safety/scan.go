// Package safety rejects string literals that could alter the structure of
// the generated script if they were ever interpolated unquoted.
package safety

import (
	"regexp"
	"strings"

	"rash/internal/source"
)

type detector struct {
	class Class
	// find returns the byte offset of the first match or -1.
	find func(s string) int
}

var (
	shellshockRe  = regexp.MustCompile(`\(\)\s*\{`)
	jndiRe        = regexp.MustCompile(`(?i)\$\{\s*(?:jndi|\$\{|lower:|upper:|env:|sys:)`)
	redirectionRe = regexp.MustCompile(`[<>]{1,2}\s*&?\s*/dev/`)
)

// detectors is scanned in order; more specific classes come first so that
// e.g. `() { :; };` is reported as Shellshock rather than a separator.
var detectors = []detector{
	{ClassNulByte, func(s string) int { return strings.IndexByte(s, 0) }},
	{ClassShellshock, regexIndex(shellshockRe)},
	{ClassJNDILookup, regexIndex(jndiRe)},
	{ClassQuoteEscape, findQuoteEscape},
	{ClassCommandSubst, substr("$(")},
	{ClassProcessSubst, findProcessSubst},
	{ClassBacktick, substr("`")},
	{ClassHereDoc, substr("<<")},
	{ClassRedirection, regexIndex(redirectionRe)},
	{ClassNewlineCommand, findNewlineCommand},
	{ClassAndList, substr("&&")},
	{ClassOrList, substr("||")},
	{ClassPipe, substr("|")},
	{ClassCommandSeparator, substr(";")},
	{ClassBackground, substr("&")},
	{ClassVariableExpansion, findExpansion},
	{ClassGlobStar, substr("*")},
	{ClassGlobQuestion, substr("?")},
}

func substr(needle string) func(string) int {
	return func(s string) int { return strings.Index(s, needle) }
}

func regexIndex(re *regexp.Regexp) func(string) int {
	return func(s string) int {
		if loc := re.FindStringIndex(s); loc != nil {
			return loc[0]
		}
		return -1
	}
}

// Scan returns the first matching class and its offset.
func Scan(s string) (Class, int, bool) {
	for _, d := range detectors {
		if off := d.find(s); off >= 0 {
			return d.class, off, true
		}
	}
	return 0, -1, false
}

// CheckLiteral rejects s if any injection class matches.
func CheckLiteral(s string) error {
	return CheckLiteralAt(s, source.NoSpan)
}

// CheckLiteralAt is CheckLiteral with a source location for the error.
func CheckLiteralAt(s string, sp source.Span) error {
	if class, off, found := Scan(s); found {
		return &InjectionError{Class: class, Span: sp, Literal: s, Offset: off}
	}
	return nil
}

func findProcessSubst(s string) int {
	for _, needle := range []string{"<(", ">("} {
		if i := strings.Index(s, needle); i >= 0 {
			return i
		}
	}
	return -1
}

const quoteNeighbours = ";|&$`<>()\\"

// findQuoteEscape reports a quote character whose kind appears an odd
// number of times and which touches a shell metacharacter.
func findQuoteEscape(s string) int {
	for _, q := range []byte{'\'', '"'} {
		if strings.Count(s, string(q))%2 == 0 {
			continue
		}
		for i := range len(s) {
			if s[i] != q {
				continue
			}
			if i > 0 && strings.IndexByte(quoteNeighbours, s[i-1]) >= 0 {
				return i
			}
			j := i + 1
			for j < len(s) && s[j] == ' ' {
				j++
			}
			if j < len(s) && strings.IndexByte(quoteNeighbours, s[j]) >= 0 {
				return i
			}
		}
	}
	return -1
}

// dangerousCommands trigger ClassNewlineCommand when they start a line.
var dangerousCommands = map[string]struct{}{
	"rm": {}, "curl": {}, "wget": {}, "eval": {}, "exec": {}, "sh": {},
	"bash": {}, "dash": {}, "zsh": {}, "ksh": {}, "nc": {}, "ncat": {},
	"sudo": {}, "su": {}, "chmod": {}, "chown": {}, "dd": {}, "mkfs": {},
	"python": {}, "python3": {}, "perl": {}, "ruby": {}, "kill": {},
	"reboot": {}, "shutdown": {}, "source": {}, "export": {}, "mv": {},
	"cp": {}, "ssh": {}, "scp": {}, "crontab": {}, "base64": {}, "xargs": {},
}

// findNewlineCommand only looks at what follows a line break; a newline on
// its own is plain multi-line text.
func findNewlineCommand(s string) int {
	for i := range len(s) {
		if s[i] != '\n' && s[i] != '\r' {
			continue
		}
		j := i + 1
		for j < len(s) && (s[j] == ' ' || s[j] == '\t' || s[j] == '\r' || s[j] == '\n') {
			j++
		}
		k := j
		for k < len(s) && !isWordEnd(s[k]) {
			k++
		}
		word := strings.TrimPrefix(s[j:k], "/usr")
		word = strings.TrimPrefix(word, "/bin/")
		if _, bad := dangerousCommands[word]; bad {
			return i
		}
	}
	return -1
}

func isWordEnd(c byte) bool {
	switch c {
	case ' ', '\t', '\r', '\n', ';', '|', '&':
		return true
	}
	return false
}

// findExpansion reports `$` that starts a parameter expansion. A dollar
// amount such as $19.99 is not one.
func findExpansion(s string) int {
	for i := 0; i < len(s)-1; i++ {
		if s[i] != '$' {
			continue
		}
		c := s[i+1]
		switch {
		case c == '_' || c == '{' || c == '\'' || isLetter(c):
			return i
		case strings.IndexByte("@*#?$!-", c) >= 0:
			return i
		case isDigit(c):
			j := i + 1
			for j < len(s) && isDigit(s[j]) {
				j++
			}
			if j+1 < len(s) && s[j] == '.' && isDigit(s[j+1]) {
				i = j
				continue
			}
			return i
		}
	}
	return -1
}

func isLetter(c byte) bool { return 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z' }
func isDigit(c byte) bool  { return '0' <= c && c <= '9' }
