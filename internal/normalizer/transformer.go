package normalizer

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/clipperhouse/uax29/v2/words"
)

// negatedPrefix marks a content token that followed a negation cue.
const negatedPrefix = "not_"

// punctuationPattern matches anything that is neither a word character nor whitespace.
var punctuationPattern = regexp.MustCompile(`[^\p{L}\p{N}_\s\p{Z}]`)

// foldCase lowercases the whole headline.
func foldCase(s string) string {
	return strings.ToLower(s)
}

// expandContractions replaces known contractions with their long form.
// Unknown contractions pass through untouched.
func expandContractions(s string) string {
	s = typographicApostrophes.Replace(s)

	return contractionPattern.ReplaceAllStringFunc(s, func(m string) string {
		return contractions[m]
	})
}

// expandNumbers spells out every integer, decimal and percentage.
func expandNumbers(s string) string {
	return numberPattern.ReplaceAllStringFunc(s, spellNumber)
}

// stripPunctuation removes every non-word, non-space character.
func stripPunctuation(s string) string {
	return punctuationPattern.ReplaceAllString(s, "")
}

// tokenize splits s on Unicode word boundaries, dropping whitespace segments.
func tokenize(s string) []string {
	var tokens []string

	segments := words.FromString(s)
	for segments.Next() {
		seg := segments.Value()
		if strings.TrimFunc(seg, unicode.IsSpace) == "" {
			continue
		}

		tokens = append(tokens, seg)
	}

	return tokens
}

// removeStopwords drops stopwords while keeping negation cues.
func removeStopwords(tokens []string) []string {
	kept := make([]string, 0, len(tokens))

	for _, tok := range tokens {
		if IsStopword(tok) {
			continue
		}

		kept = append(kept, tok)
	}

	return kept
}

// lemmatizeTokens reduces each token using the word class its tag maps to.
func lemmatizeTokens(tokens []string, tagger Tagger, lemmatizer *Lemmatizer) []string {
	if len(tokens) == 0 {
		return []string{}
	}

	tags := tagger.Tag(tokens)
	lemmas := make([]string, len(tokens))

	for i, tok := range tokens {
		tag := fallbackTag
		if i < len(tags) {
			tag = tags[i]
		}

		lemmas[i] = lemmatizer.Lemma(tok, PartOfSpeechFromTag(tag))
	}

	return lemmas
}

// reattachNegation drops negation cues and prefixes the single token that
// follows a cue with negatedPrefix. A cue followed by another cue re-arms
// without marking anything, and a trailing cue produces nothing.
func reattachNegation(tokens []string) []string {
	out := make([]string, 0, len(tokens))
	negated := false

	for _, tok := range tokens {
		if IsNegation(tok) {
			negated = true

			continue
		}

		if negated {
			out = append(out, negatedPrefix+tok)
			negated = false

			continue
		}

		out = append(out, tok)
	}

	return out
}
