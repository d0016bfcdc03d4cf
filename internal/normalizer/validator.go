package normalizer

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

// Validation errors for normalized headlines.
var (
	ErrUppercase        = errors.New("token contains uppercase letters")
	ErrPunctuation      = errors.New("token contains punctuation")
	ErrDigits           = errors.New("token contains digits")
	ErrStopword         = errors.New("token is a stopword")
	ErrNegationCue      = errors.New("negation cue left in output")
	ErrIrregularSpacing = errors.New("tokens are not single-space separated")
)

// Validator checks that a string has the shape of normalized pipeline output.
type Validator struct{}

// NewValidator creates a new validator instance.
func NewValidator() *Validator {
	return &Validator{}
}

// Validate returns nil when s could have been produced by the pipeline.
func (v *Validator) Validate(s string) error {
	if s == "" {
		return nil
	}

	if strings.Join(strings.Fields(s), " ") != s {
		return ErrIrregularSpacing
	}

	for i, tok := range strings.Split(s, " ") {
		if err := v.validateToken(tok); err != nil {
			return fmt.Errorf("%w at index %d: %q", err, i, tok)
		}
	}

	return nil
}

func (v *Validator) validateToken(tok string) error {
	for _, r := range tok {
		switch {
		case unicode.IsUpper(r):
			return ErrUppercase
		case unicode.IsDigit(r):
			return ErrDigits
		case r != '_' && !unicode.IsLetter(r) && !unicode.IsNumber(r):
			return ErrPunctuation
		}
	}

	if IsNegation(tok) {
		return ErrNegationCue
	}

	if IsStopword(tok) {
		return ErrStopword
	}

	return nil
}
