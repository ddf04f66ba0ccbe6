package voice

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"
)

const daysPerMonth = 30

// ParsedFoodRecord is the best-effort result of parsing a transcript.
// A zero field means "not detected"; DaysToExpiry is only set when positive.
type ParsedFoodRecord struct {
	Name         string `json:"name,omitempty"`
	Category     string `json:"category,omitempty"`
	DaysToExpiry int    `json:"daysToExpiry,omitempty"`
	Location     string `json:"location,omitempty"`
	Quantity     string `json:"quantity,omitempty"`
}

func (r ParsedFoodRecord) IsEmpty() bool {
	return r == ParsedFoodRecord{}
}

// CanAutoSubmit reports whether the record carries the minimum fields for
// creating a food item without further input.
func (r ParsedFoodRecord) CanAutoSubmit() bool {
	return r.Name != "" && r.DaysToExpiry > 0
}

// shelfLifeMatcher reports whether its pattern occurs in text and, if so,
// the shelf-life in days it encodes.
type shelfLifeMatcher func(text string) (days int, matched bool)

const (
	monthWords = `(?:mesi?|mese)`
	dayWords   = `(?:giorni?|giorno|gg)`
)

var (
	// Months are tried first; days only when the month stage yields nothing.
	monthMatchers = []shelfLifeMatcher{
		digitsMatcher(regexp.MustCompile(`(\d+)\s*`+monthWords), daysPerMonth),
		numeralMatcher(func(w string) []*regexp.Regexp {
			return []*regexp.Regexp{regexp.MustCompile(w + `\s*` + monthWords)}
		}, daysPerMonth),
	}

	dayMatchers = []shelfLifeMatcher{
		digitsMatcher(
			regexp.MustCompile(`(\d+)\s*`+dayWords),
			1,
			regexp.MustCompile(`scadenza\s+(\d+)`),
			regexp.MustCompile(`tra\s+(\d+)`),
			regexp.MustCompile(`fra\s+(\d+)`),
		),
		numeralMatcher(func(w string) []*regexp.Regexp {
			return []*regexp.Regexp{
				regexp.MustCompile(w + `\s*` + dayWords),
				regexp.MustCompile(`scadenza\s+` + w),
				regexp.MustCompile(`tra\s+` + w),
				regexp.MustCompile(`fra\s+` + w),
			}
		}, 1),
	}
)

// digitsMatcher tries re first, then alternatives, and reads the first
// capture group of the first pattern that matches.
func digitsMatcher(re *regexp.Regexp, multiplier int, alternatives ...*regexp.Regexp) shelfLifeMatcher {
	patterns := append([]*regexp.Regexp{re}, alternatives...)
	return func(text string) (int, bool) {
		for _, p := range patterns {
			m := p.FindStringSubmatch(text)
			if m == nil {
				continue
			}
			n, err := strconv.Atoi(m[1])
			if err != nil || n > math.MaxInt32/multiplier {
				return 0, true
			}
			return n * multiplier, true
		}
		return 0, false
	}
}

// numeralMatcher compiles the patterns of every numeral word once and, at
// match time, walks the numerals in table order.
func numeralMatcher(patternsFor func(word string) []*regexp.Regexp, multiplier int) shelfLifeMatcher {
	compiled := make([][]*regexp.Regexp, len(numerals))
	for i, n := range numerals {
		compiled[i] = patternsFor(regexp.QuoteMeta(n.word))
	}
	return func(text string) (int, bool) {
		for i, n := range numerals {
			for _, p := range compiled[i] {
				if p.MatchString(text) {
					return n.value * multiplier, true
				}
			}
		}
		return 0, false
	}
}

// Parse extracts whatever food information the transcript contains. It never
// fails; an unrecognised transcript yields an empty record.
func Parse(transcript string) ParsedFoodRecord {
	text := strings.ToLower(transcript)

	var rec ParsedFoodRecord
	if days := extractShelfLife(text); days > 0 {
		rec.DaysToExpiry = days
	}

	rec.Name = extractName(text)
	if rec.Name != "" {
		rec.Category = CategoryFor(rec.Name)
	}

	rec.Location = extractLocation(text)
	return rec
}

func extractShelfLife(text string) int {
	if days := firstMatch(monthMatchers, text); days > 0 {
		return days
	}
	return firstMatch(dayMatchers, text)
}

// firstMatch stops at the first matcher whose pattern occurs, even when the
// value it reads is zero.
func firstMatch(matchers []shelfLifeMatcher, text string) int {
	for _, m := range matchers {
		if days, ok := m(text); ok {
			return days
		}
	}
	return 0
}

func extractName(text string) string {
	longest := ""
	for _, food := range foodVocabulary {
		if len(food) > len(longest) && strings.Contains(text, food) {
			longest = food
		}
	}
	if longest != "" {
		return longest
	}

	for _, word := range strings.Fields(text) {
		if utf8.RuneCountInString(word) <= 2 {
			continue
		}
		if _, stop := stopWords[word]; stop {
			continue
		}
		return word
	}
	return ""
}

func extractLocation(text string) string {
	for _, rule := range locationRules {
		for _, cue := range rule.cues {
			if strings.Contains(text, cue) {
				return rule.location
			}
		}
	}
	return ""
}
