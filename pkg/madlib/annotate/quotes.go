package annotate

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// find locates word in s, comparing runes after quote folding. It returns
// the byte span of the match in s.
func find(s, word string) (start, end int, ok bool) {
	if start, end, ok = findFolded(s, word); ok {
		return start, end, true
	}
	// Penn-style double quotes stand for a single quote character
	if word == "``" || word == "''" {
		return findFolded(s, `"`)
	}
	return 0, 0, false
}

func findFolded(s, word string) (int, int, bool) {
	if i := strings.Index(s, word); i >= 0 && !strings.ContainsFunc(s[:i], isCurlyQuote) {
		return i, i + len(word), true
	}
	for i := 0; i < len(s); {
		if n, ok := matchAt(s[i:], word); ok {
			return i, i + n, true
		}
		_, size := utf8.DecodeRuneInString(s[i:])
		i += size
	}
	return 0, 0, false
}

// matchAt reports whether s starts with word and how many bytes of s it
// covers.
func matchAt(s, word string) (int, bool) {
	n := 0
	for _, wr := range word {
		if n >= len(s) {
			return 0, false
		}
		r, size := utf8.DecodeRuneInString(s[n:])
		if foldQuote(r) != foldQuote(wr) {
			return 0, false
		}
		n += size
	}
	return n, true
}

func foldQuote(r rune) rune {
	switch r {
	case '\u2018', '\u2019', '\u201a', '\u201b', '\u2032': // single quotes, prime
		return '\''
	case '\u201c', '\u201d', '\u201e', '\u201f', '\u2033': // double quotes, double prime
		return '"'
	}
	return r
}

func isCurlyQuote(r rune) bool {
	return foldQuote(r) != r
}

func isOpeningQuote(r rune) bool {
	return r == '\u2018' || r == '\u201c'
}

// isPunct reports whether s is non-empty and made only of punctuation.
func isPunct(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsPunct(r) {
			return false
		}
	}
	return true
}
