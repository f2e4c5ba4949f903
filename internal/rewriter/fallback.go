package rewriter

import (
	"context"
	"strings"
	"unicode"
)

// Fallback is a deterministic text simplifier used when the rewrite API is
// unavailable. It shortens sentences and swaps common difficult words for
// simpler ones. It never fails.
type Fallback struct{}

var _ Rewriter = (*Fallback)(nil)

func NewFallback() *Fallback { return &Fallback{} }

// Sentences longer than this are cut at the first comma past the midpoint,
// or hard-truncated.
const maxSentenceWords = 18

var substitutions = map[string]string{
	"approximately": "about",
	"significant":   "big",
	"significantly": "a lot",
	"demonstrate":   "show",
	"demonstrated":  "showed",
	"purchase":      "buy",
	"purchased":     "bought",
	"numerous":      "many",
	"additional":    "more",
	"assistance":    "help",
	"attempt":       "try",
	"attempted":     "tried",
	"construct":     "build",
	"constructed":   "built",
	"discover":      "find",
	"discovered":    "found",
	"enormous":      "huge",
	"frequently":    "often",
	"immediately":   "right away",
	"individuals":   "people",
	"initially":     "at first",
	"obtain":        "get",
	"obtained":      "got",
	"participate":   "join in",
	"previously":    "before",
	"require":       "need",
	"required":      "needed",
	"utilize":       "use",
	"announced":     "said",
	"indicated":     "said",
	"stated":        "said",
	"residents":     "people",
	"scientists":    "science experts",
	"researchers":   "science experts",
	"officials":     "leaders",
}

func (f *Fallback) Rewrite(_ context.Context, title, content string, _ int) (*Result, error) {
	sentences := splitSentences(content)

	simplified := make([]string, 0, len(sentences))
	for _, s := range sentences {
		s = substituteWords(shortenSentence(s))
		if s != "" {
			simplified = append(simplified, s)
		}
	}

	summaryCount := 2
	if len(simplified) < summaryCount {
		summaryCount = len(simplified)
	}

	return &Result{
		Title:   substituteWords(title),
		Content: strings.Join(simplified, " "),
		Summary: strings.Join(simplified[:summaryCount], " "),
	}, nil
}

func splitSentences(text string) []string {
	var sentences []string
	var current strings.Builder

	for _, r := range text {
		current.WriteRune(r)
		if r == '.' || r == '!' || r == '?' {
			if s := strings.TrimSpace(current.String()); s != "" {
				sentences = append(sentences, s)
			}
			current.Reset()
		}
	}
	if s := strings.TrimSpace(current.String()); s != "" {
		sentences = append(sentences, s+".")
	}
	return sentences
}

func shortenSentence(sentence string) string {
	words := strings.Fields(sentence)
	if len(words) <= maxSentenceWords {
		return sentence
	}

	// Prefer cutting at a comma past the midpoint so the clause stays whole.
	for i := len(words) / 2; i < maxSentenceWords && i < len(words); i++ {
		if strings.HasSuffix(words[i], ",") {
			return strings.TrimSuffix(strings.Join(words[:i+1], " "), ",") + "."
		}
	}

	return strings.TrimRight(strings.Join(words[:maxSentenceWords], " "), ",;:") + "."
}

func substituteWords(text string) string {
	words := strings.Fields(text)
	for i, w := range words {
		core := strings.TrimFunc(w, func(r rune) bool {
			return !unicode.IsLetter(r) && !unicode.IsNumber(r)
		})
		replacement, ok := substitutions[strings.ToLower(core)]
		if !ok {
			continue
		}
		if isCapitalized(core) {
			replacement = capitalize(replacement)
		}
		words[i] = strings.Replace(w, core, replacement, 1)
	}
	return strings.Join(words, " ")
}

func isCapitalized(word string) bool {
	for _, r := range word {
		return unicode.IsUpper(r)
	}
	return false
}

func capitalize(word string) string {
	runes := []rune(word)
	if len(runes) == 0 {
		return word
	}
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
