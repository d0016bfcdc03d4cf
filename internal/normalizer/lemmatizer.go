package normalizer

import (
	"strings"

	"github.com/aaaton/golem/v4"
	"github.com/aaaton/golem/v4/dicts/en"
)

// Lexicon answers whether a word is a dictionary base form.
type Lexicon interface {
	IsBase(word string) bool
}

// GolemLexicon checks base forms against the golem English dictionary.
type GolemLexicon struct {
	lemmatizer *golem.Lemmatizer
}

// NewGolemLexicon loads the embedded English dictionary.
func NewGolemLexicon() (*GolemLexicon, error) {
	l, err := golem.New(en.New())
	if err != nil {
		return nil, err
	}

	return &GolemLexicon{lemmatizer: l}, nil
}

// IsBase reports whether word is known and is its own lemma.
func (g *GolemLexicon) IsBase(word string) bool {
	return g.lemmatizer.InDict(word) && g.lemmatizer.Lemma(word) == word
}

type suffixRule struct {
	suffix      string
	replacement string
}

// detachmentRules are the WordNet morphological substitutions per word class.
var detachmentRules = map[PartOfSpeech][]suffixRule{
	Noun: {
		{"s", ""}, {"ses", "s"}, {"ves", "f"}, {"xes", "x"}, {"zes", "z"},
		{"ches", "ch"}, {"shes", "sh"}, {"men", "man"}, {"ies", "y"},
	},
	Verb: {
		{"s", ""}, {"ies", "y"}, {"es", "e"}, {"es", ""},
		{"ed", "e"}, {"ed", ""}, {"ing", "e"}, {"ing", ""},
	},
	Adjective: {
		{"er", ""}, {"est", ""}, {"er", "e"}, {"est", "e"},
	},
}

// irregularForms are exceptions the suffix rules cannot reach.
var irregularForms = map[PartOfSpeech]map[string]string{
	Noun: {
		"men": "man", "women": "woman", "children": "child", "feet": "foot",
		"teeth": "tooth", "mice": "mouse", "geese": "goose", "oxen": "ox",
		"analyses": "analysis", "crises": "crisis", "theses": "thesis",
	},
	Verb: {
		"was": "be", "were": "be", "been": "be", "is": "be", "are": "be", "am": "be",
		"had": "have", "has": "have", "did": "do", "done": "do",
		"went": "go", "gone": "go", "made": "make", "said": "say",
		"saw": "see", "seen": "see", "took": "take", "taken": "take",
		"fell": "fall", "fallen": "fall", "rose": "rise", "risen": "rise",
		"sold": "sell", "bought": "buy", "paid": "pay", "lost": "lose",
		"won": "win", "grew": "grow", "grown": "grow", "left": "leave",
		"led": "lead", "ran": "run", "began": "begin", "begun": "begin",
		"broke": "break", "broken": "break", "brought": "bring", "built": "build",
		"came": "come", "chose": "choose", "chosen": "choose", "drew": "draw",
		"drawn": "draw", "drove": "drive", "driven": "drive", "fought": "fight",
		"found": "find", "gave": "give", "given": "give", "got": "get",
		"gotten": "get", "held": "hold", "kept": "keep", "knew": "know",
		"known": "know", "laid": "lay", "met": "meet", "sent": "send",
		"shook": "shake", "shaken": "shake", "slid": "slide", "sank": "sink",
		"sunk": "sink", "spent": "spend", "spun": "spin", "stood": "stand",
		"struck": "strike", "swung": "swing", "told": "tell", "thought": "think",
		"threw": "throw", "thrown": "throw", "wrote": "write", "written": "write",
		"sought": "seek", "felt": "feel", "meant": "mean", "dealt": "deal",
		"ate": "eat", "eaten": "eat", "flew": "fly", "flown": "fly",
		"froze": "freeze", "frozen": "freeze", "wore": "wear", "worn": "wear",
		"hid": "hide", "hidden": "hide", "bid": "bid", "forecast": "forecast",
	},
	Adjective: {
		"better": "good", "best": "good", "worse": "bad", "worst": "bad",
		"further": "far", "farther": "far", "furthest": "far", "farthest": "far",
	},
	Adverb: {
		"best": "well", "better": "well", "deeper": "deeply", "farther": "far",
		"further": "far", "harder": "hard", "hardest": "hard",
	},
}

// Lemmatizer reduces a token to its base form for a given word class.
// Without a lexicon only the irregular forms are applied.
type Lemmatizer struct {
	lexicon Lexicon
}

// NewLemmatizer creates a lemmatizer validating candidates against lexicon.
func NewLemmatizer(lexicon Lexicon) *Lemmatizer {
	return &Lemmatizer{lexicon: lexicon}
}

// Lemma returns the shortest valid base form of word, or word itself when no
// rule produces a dictionary form.
func (l *Lemmatizer) Lemma(word string, pos PartOfSpeech) string {
	if base, ok := irregularForms[pos][word]; ok {
		return base
	}

	if l.lexicon == nil || l.lexicon.IsBase(word) {
		return word
	}

	best := ""

	for _, rule := range detachmentRules[pos] {
		if !strings.HasSuffix(word, rule.suffix) {
			continue
		}

		stem := strings.TrimSuffix(word, rule.suffix)
		if stem == "" {
			continue
		}

		candidate := l.validate(stem+rule.replacement, pos)
		if candidate == "" {
			continue
		}

		if best == "" || len(candidate) < len(best) {
			best = candidate
		}
	}

	if best == "" {
		return word
	}

	return best
}

// validate accepts candidate when it is a base form. Verb and adjective stems
// with a doubled final consonant ("stopp", "bigg") are also tried undoubled.
func (l *Lemmatizer) validate(candidate string, pos PartOfSpeech) string {
	if l.lexicon.IsBase(candidate) {
		return candidate
	}

	if pos != Verb && pos != Adjective {
		return ""
	}

	n := len(candidate)
	if n < 3 || candidate[n-1] != candidate[n-2] || isVowel(candidate[n-1]) {
		return ""
	}

	if undoubled := candidate[:n-1]; l.lexicon.IsBase(undoubled) {
		return undoubled
	}

	return ""
}

func isVowel(c byte) bool {
	switch c {
	case 'a', 'e', 'i', 'o', 'u':
		return true
	}

	return false
}
