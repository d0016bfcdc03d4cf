package normalizer

import (
	"strings"

	"github.com/jdkato/prose/v2"
)

// PartOfSpeech is the coarse word class used to pick lemmatization rules.
type PartOfSpeech int

// Coarse word classes. Noun is the fallback for any unmapped tag.
const (
	Noun PartOfSpeech = iota
	Verb
	Adjective
	Adverb
)

// String returns the WordNet-style single letter for the class.
func (p PartOfSpeech) String() string {
	switch p {
	case Verb:
		return "v"
	case Adjective:
		return "a"
	case Adverb:
		return "r"
	default:
		return "n"
	}
}

// Tagger assigns a Penn Treebank tag to every token, in order.
type Tagger interface {
	Tag(tokens []string) []string
}

// PartOfSpeechFromTag maps a Penn Treebank tag onto a coarse word class.
func PartOfSpeechFromTag(tag string) PartOfSpeech {
	switch {
	case strings.HasPrefix(tag, "J"):
		return Adjective
	case strings.HasPrefix(tag, "V"):
		return Verb
	case strings.HasPrefix(tag, "N"):
		return Noun
	case strings.HasPrefix(tag, "R"):
		return Adverb
	default:
		return Noun
	}
}

// fallbackTag is assigned when the tagger cannot label a token.
const fallbackTag = "NN"

// ProseTagger tags tokens with the averaged perceptron model shipped with prose.
// The model is decoded once and shared by every Tag call.
type ProseTagger struct {
	model *prose.Model
}

// NewProseTagger loads the prose model and returns a tagger backed by it.
func NewProseTagger() *ProseTagger {
	return &ProseTagger{model: prose.ModelFromData("newsharvest")}
}

// Tag returns one tag per input token. Tokens prose splits further take the
// tag of their first piece; anything it cannot align is tagged as a noun.
func (t *ProseTagger) Tag(tokens []string) []string {
	tags := make([]string, len(tokens))
	for i := range tags {
		tags[i] = fallbackTag
	}

	if len(tokens) == 0 {
		return tags
	}

	doc, err := prose.NewDocument(
		strings.Join(tokens, " "),
		prose.WithSegmentation(false),
		prose.WithExtraction(false),
		prose.UsingModel(t.model),
	)
	if err != nil {
		return tags
	}

	return alignTags(tokens, doc.Tokens(), tags)
}

// alignTags walks the tagger output alongside the input tokens, joining
// pieces until they spell the input token again.
func alignTags(tokens []string, tagged []prose.Token, tags []string) []string {
	j := 0

	for i, tok := range tokens {
		if j >= len(tagged) {
			break
		}

		first := tagged[j]
		text := first.Text
		j++

		for text != tok && len(text) < len(tok) && j < len(tagged) {
			text += tagged[j].Text
			j++
		}

		if text != tok {
			break
		}

		if first.Tag != "" {
			tags[i] = first.Tag
		}
	}

	return tags
}
