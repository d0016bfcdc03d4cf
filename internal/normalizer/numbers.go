package normalizer

import (
	"regexp"
	"strconv"
	"strings"
)

// numberPattern matches an integer or decimal optionally followed by a percent sign.
var numberPattern = regexp.MustCompile(`\d+(\.\d+)?%?`)

var (
	smallNumbers = [...]string{
		"zero", "one", "two", "three", "four", "five", "six", "seven", "eight", "nine",
		"ten", "eleven", "twelve", "thirteen", "fourteen", "fifteen", "sixteen",
		"seventeen", "eighteen", "nineteen",
	}
	tensNumbers = [...]string{
		"", "", "twenty", "thirty", "forty", "fifty", "sixty", "seventy", "eighty", "ninety",
	}
	scaleNames = [...]string{
		"", "thousand", "million", "billion", "trillion", "quadrillion", "quintillion",
	}
)

// spellNumber converts a matched numeric literal such as "5", "3.5" or "12%"
// into English words.
func spellNumber(literal string) string {
	percent := strings.HasSuffix(literal, "%")
	literal = strings.TrimSuffix(literal, "%")

	intPart, fracPart, _ := strings.Cut(literal, ".")

	// Trailing fractional zeros carry no value: "5.0" is "five", "3.50" is "three point five".
	fracPart = strings.TrimRight(fracPart, "0")

	var b strings.Builder

	b.WriteString(spellInteger(intPart))

	if fracPart != "" {
		b.WriteString(" point")

		for _, d := range fracPart {
			b.WriteByte(' ')
			b.WriteString(smallNumbers[d-'0'])
		}
	}

	if percent {
		b.WriteString(" percent")
	}

	return b.String()
}

// spellInteger spells a run of ASCII digits. Values that overflow uint64 are
// read digit by digit.
func spellInteger(digits string) string {
	n, err := strconv.ParseUint(digits, 10, 64)
	if err != nil {
		words := make([]string, 0, len(digits))
		for _, d := range digits {
			words = append(words, smallNumbers[d-'0'])
		}

		return strings.Join(words, " ")
	}

	return cardinal(n)
}

// cardinal renders n in British-style English cardinal words:
// 21 "twenty-one", 105 "one hundred and five", 1200 "one thousand, two hundred".
func cardinal(n uint64) string {
	switch {
	case n < 20:
		return smallNumbers[n]
	case n < 100:
		if n%10 == 0 {
			return tensNumbers[n/10]
		}

		return tensNumbers[n/10] + "-" + smallNumbers[n%10]
	case n < 1000:
		words := smallNumbers[n/100] + " hundred"
		if rem := n % 100; rem > 0 {
			words += " and " + cardinal(rem)
		}

		return words
	}

	scale := 0
	unit := uint64(1)

	for n/unit >= 1000 && scale < len(scaleNames)-1 {
		unit *= 1000
		scale++
	}

	words := cardinal(n/unit) + " " + scaleNames[scale]

	rem := n % unit
	if rem == 0 {
		return words
	}

	if rem < 100 {
		return words + " and " + cardinal(rem)
	}

	return words + ", " + cardinal(rem)
}
