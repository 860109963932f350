// Package pos holds the part-of-speech glossary: human-readable explanations
// for coarse (universal) and fine (Penn Treebank) tags, and the mapping from
// fine tags to coarse ones.
package pos

import (
	"strings"
	"unicode/utf8"
)

// Coarse (universal) tags.
const (
	ADJ   = "ADJ"
	ADP   = "ADP"
	ADV   = "ADV"
	AUX   = "AUX"
	CCONJ = "CCONJ"
	DET   = "DET"
	INTJ  = "INTJ"
	NOUN  = "NOUN"
	NUM   = "NUM"
	PART  = "PART"
	PRON  = "PRON"
	PROPN = "PROPN"
	PUNCT = "PUNCT"
	SCONJ = "SCONJ"
	SYM   = "SYM"
	VERB  = "VERB"
	X     = "X"
	SPACE = "SPACE"
)

// Unknown is the fine tag given to text the tagger did not cover.
const Unknown = "XX"

var glossary = map[string]string{
	// universal
	ADJ:   "adjective",
	ADP:   "adposition",
	ADV:   "adverb",
	AUX:   "auxiliary",
	"CONJ": "conjunction",
	CCONJ: "coordinating conjunction",
	DET:   "determiner",
	INTJ:  "interjection",
	NOUN:  "noun",
	NUM:   "numeral",
	PART:  "particle",
	PRON:  "pronoun",
	PROPN: "proper noun",
	PUNCT: "punctuation",
	SCONJ: "subordinating conjunction",
	SYM:   "symbol",
	VERB:  "verb",
	X:     "other",
	"EOL": "end of line",
	SPACE: "space",

	// penn treebank
	".":     "punctuation mark, sentence closer",
	",":     "punctuation mark, comma",
	"-LRB-": "left round bracket",
	"-RRB-": "right round bracket",
	"(":     "left round bracket",
	")":     "right round bracket",
	"``":    "opening quotation mark",
	`""`:    "closing quotation mark",
	"''":    "closing quotation mark",
	":":     "punctuation mark, colon or ellipsis",
	"$":     "symbol, currency",
	"#":     "symbol, number sign",
	"AFX":   "affix",
	"CC":    "conjunction, coordinating",
	"CD":    "cardinal number",
	"DT":    "determiner",
	"EX":    "existential there",
	"FW":    "foreign word",
	"HYPH":  "punctuation mark, hyphen",
	"IN":    "conjunction, subordinating or preposition",
	"JJ":    "adjective",
	"JJR":   "adjective, comparative",
	"JJS":   "adjective, superlative",
	"LS":    "list item marker",
	"MD":    "verb, modal auxiliary",
	"NIL":   "missing tag",
	"NN":    "noun, singular or mass",
	"NNP":   "noun, proper singular",
	"NNPS":  "noun, proper plural",
	"NNS":   "noun, plural",
	"PDT":   "predeterminer",
	"POS":   "possessive ending",
	"PRP":   "pronoun, personal",
	"PRP$":  "pronoun, possessive",
	"RB":    "adverb",
	"RBR":   "adverb, comparative",
	"RBS":   "adverb, superlative",
	"RP":    "adverb, particle",
	"TO":    `infinitival "to"`,
	"UH":    "interjection",
	"VB":    "verb, base form",
	"VBD":   "verb, past tense",
	"VBG":   "verb, gerund or present participle",
	"VBN":   "verb, past participle",
	"VBP":   "verb, non-3rd person singular present",
	"VBZ":   "verb, 3rd person singular present",
	"WDT":   "wh-determiner",
	"WP":    "wh-pronoun, personal",
	"WP$":   "wh-pronoun, possessive",
	"WRB":   "wh-adverb",
	"SP":    "space",
	"ADD":   "email",
	"NFP":   "superfluous punctuation",
	"GW":    "additional word in multi-word expression",
	Unknown: "unknown",
}

// fine -> coarse
var universal = map[string]string{
	".":     PUNCT,
	",":     PUNCT,
	"-LRB-": PUNCT,
	"-RRB-": PUNCT,
	"(":     PUNCT,
	")":     PUNCT,
	"``":    PUNCT,
	`""`:    PUNCT,
	"''":    PUNCT,
	":":     PUNCT,
	"HYPH":  PUNCT,
	"NFP":   PUNCT,
	"$":     SYM,
	"#":     SYM,
	"SYM":   SYM,
	"AFX":   ADJ,
	"JJ":    ADJ,
	"JJR":   ADJ,
	"JJS":   ADJ,
	"CC":    CCONJ,
	"CD":    NUM,
	"DT":    DET,
	"PDT":   DET,
	"WDT":   DET,
	"EX":    PRON,
	"PRP":   PRON,
	"PRP$":  PRON,
	"WP":    PRON,
	"WP$":   PRON,
	"IN":    ADP,
	"RP":    ADP,
	"MD":    AUX,
	"NN":    NOUN,
	"NNS":   NOUN,
	"NNP":   PROPN,
	"NNPS":  PROPN,
	"POS":   PART,
	"TO":    PART,
	"RB":    ADV,
	"RBR":   ADV,
	"RBS":   ADV,
	"WRB":   ADV,
	"UH":    INTJ,
	"VB":    VERB,
	"VBD":   VERB,
	"VBG":   VERB,
	"VBN":   VERB,
	"VBP":   VERB,
	"VBZ":   VERB,
	"SP":    SPACE,
	"FW":    X,
	"LS":    X,
	"NIL":   X,
	"ADD":   X,
	"GW":    X,
	Unknown: X,
}

// Explain returns the human-readable description of a coarse or fine tag,
// or "" if the tag is not in the glossary.
func Explain(tag string) string {
	return glossary[tag]
}

// Universal maps a fine tag to its coarse tag. Unrecognised tags map to X.
func Universal(fine string) string {
	if u, ok := universal[fine]; ok {
		return u
	}
	return X
}

// Brief is the short label for a fine tag: the part of its explanation
// before the first comma ("noun, plural" -> "noun").
func Brief(fine string) string {
	long := Explain(fine)
	if i := strings.IndexByte(long, ','); i >= 0 {
		return long[:i]
	}
	return long
}

// Answerable reports whether a coarse tag has a label a player can be asked
// for. Unknown text and whitespace do not.
func Answerable(coarse string) bool {
	switch coarse {
	case X, SPACE, "EOL":
		return false
	}
	return Explain(coarse) != ""
}

// PunctTag picks the fine punctuation tag for a run of punctuation,
// judged by its first rune.
func PunctTag(text string) string {
	if text == "``" {
		return "``"
	}
	r, _ := utf8.DecodeRuneInString(text)
	switch r {
	case '\u201c', '\u2018', '\u00ab': // opening quotes
		return "``"
	case '\u201d', '\u2019', '\u00bb', '"', '\'': // closing quotes
		return "''"
	case '(', '[', '{':
		return "-LRB-"
	case ')', ']', '}':
		return "-RRB-"
	case ',':
		return ","
	case '.', '!', '?':
		return "."
	case ':', ';', '\u2026', '\u2013', '\u2014': // ellipsis, dashes
		return ":"
	case '-':
		return "HYPH"
	}
	return "NFP"
}
