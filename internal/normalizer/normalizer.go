// Package normalizer cleans raw speech-to-text output before summarization.
package normalizer

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// Filler words and verbal pauses dropped from transcripts.
var fillerWords = map[string]struct{}{
	"um": {}, "uh": {}, "ah": {}, "er": {}, "mmm": {}, "umm": {}, "uhh": {},
	"hmm": {}, "like": {}, "so": {}, "actually": {}, "basically": {}, "ok": {}, "okay": {},
}

type term struct {
	phrase      []string
	replacement []string
}

// Applied in order: multi-word phrases before their single-word forms.
var terminology = compileTerms([][2]string{
	{"setting up", "deployment"},
	{"set up", "deploy"},
	{"setup", "deployment"},
	{"config", "configuration"},
	{"configs", "configurations"},
	{"ai", "artificial intelligence"},
	{"api", "application programming interface"},
	{"db", "database"},
	{"prod", "production"},
	{"dev", "development"},
})

var (
	rePunct = regexp.MustCompile(`[^\p{L}\p{N}_\s]`)
	reSpace = regexp.MustCompile(`\s+`)
	lower   = cases.Lower(language.Und)
)

func compileTerms(pairs [][2]string) []term {
	terms := make([]term, 0, len(pairs))
	for _, p := range pairs {
		terms = append(terms, term{phrase: strings.Fields(p[0]), replacement: strings.Fields(p[1])})
	}
	return terms
}

// replace substitutes whole-word occurrences of t, scanning left to right
// without overlap. After punctuation stripping words are separated by single
// spaces only, so whole words are exactly the Unicode word boundaries.
func (t term) replace(words []string) []string {
	n := len(t.phrase)
	out := make([]string, 0, len(words))
	for i := 0; i < len(words); {
		if i+n <= len(words) && equalWords(words[i:i+n], t.phrase) {
			out = append(out, t.replacement...)
			i += n
			continue
		}
		out = append(out, words[i])
		i++
	}
	return out
}

func equalWords(a, b []string) bool {
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// Normalize lowercases text, strips punctuation, collapses whitespace, drops
// filler words and maps informal terms to their corporate forms.
// Normalize(Normalize(x)) == Normalize(x).
func Normalize(text string) string {
	cleaned := lower.String(norm.NFC.String(text))
	cleaned = rePunct.ReplaceAllString(cleaned, "")
	cleaned = strings.TrimSpace(reSpace.ReplaceAllString(cleaned, " "))

	words := strings.Fields(cleaned)
	kept := words[:0]
	for _, w := range words {
		if _, filler := fillerWords[w]; !filler {
			kept = append(kept, w)
		}
	}
	for _, t := range terminology {
		kept = t.replace(kept)
	}
	return strings.Join(kept, " ")
}
