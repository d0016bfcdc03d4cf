// Package normalizer reduces raw news headlines to normalized token sequences.
//
// The pipeline runs, in order: case folding, contraction expansion, number
// spelling, punctuation stripping, word tokenization, stopword removal that
// keeps negation cues, POS-aware lemmatization and negation re-attachment.
// Each stage is a pure function of the previous stage's output.
package normalizer

import (
	"strings"
	"sync"
)

// Processor runs the headline normalization pipeline.
type Processor struct {
	tagger     Tagger
	lemmatizer *Lemmatizer
}

// Option configures a Processor.
type Option func(*Processor)

// WithTagger replaces the part-of-speech tagger.
func WithTagger(t Tagger) Option {
	return func(p *Processor) {
		p.tagger = t
	}
}

// WithLexicon replaces the dictionary used to validate lemmas.
func WithLexicon(l Lexicon) Option {
	return func(p *Processor) {
		p.lemmatizer = NewLemmatizer(l)
	}
}

var (
	defaultLexiconOnce sync.Once
	defaultLexicon     Lexicon
)

// sharedLexicon loads the golem dictionary once per process. If it cannot be
// loaded lemmatization falls back to irregular forms only.
func sharedLexicon() Lexicon {
	defaultLexiconOnce.Do(func() {
		lex, err := NewGolemLexicon()
		if err != nil {
			return
		}

		defaultLexicon = lex
	})

	return defaultLexicon
}

// NewProcessor creates a new processor with the prose tagger and golem lexicon
// unless overridden by opts.
func NewProcessor(opts ...Option) *Processor {
	p := &Processor{}
	for _, opt := range opts {
		opt(p)
	}

	if p.tagger == nil {
		p.tagger = NewProseTagger()
	}

	if p.lemmatizer == nil {
		p.lemmatizer = NewLemmatizer(sharedLexicon())
	}

	return p
}

// Process normalizes one raw headline. It never fails; input without any
// content words yields an empty string.
func (p *Processor) Process(raw string) string {
	return strings.Join(p.Tokens(raw), " ")
}

// Tokens returns the normalized token sequence before joining.
func (p *Processor) Tokens(raw string) []string {
	text := foldCase(raw)
	text = expandContractions(text)
	text = expandNumbers(text)
	text = stripPunctuation(text)

	tokens := tokenize(text)
	tokens = removeStopwords(tokens)
	tokens = lemmatizeTokens(tokens, p.tagger, p.lemmatizer)

	return reattachNegation(tokens)
}

// ProcessAll normalizes every headline, preserving order.
func (p *Processor) ProcessAll(raw []string) []string {
	out := make([]string, len(raw))
	for i, h := range raw {
		out[i] = p.Process(h)
	}

	return out
}

var (
	defaultProcessorOnce sync.Once
	defaultProcessor     *Processor
)

// Normalize runs raw through a process-wide default Processor.
func Normalize(raw string) string {
	defaultProcessorOnce.Do(func() {
		defaultProcessor = NewProcessor()
	})

	return defaultProcessor.Process(raw)
}
