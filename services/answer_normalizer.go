package services

import (
	"encoding/json"
	"net/url"
	"regexp"
	"strings"
)

// decimalComma matches a comma that sits directly before a digit, i.e. a
// locale decimal comma ("3,14"), as opposed to a list separator ("a, b").
var decimalComma = regexp.MustCompile(`,(\d)`)

var whitespace = regexp.MustCompile(`\s+`)

// NormalizeAnswer canonicalizes a submitted or stored answer string so the
// two can be compared directly. Applied identically to both sides.
func NormalizeAnswer(raw string) string {
	s := strings.ToLower(strings.TrimSpace(raw))
	s = strings.ReplaceAll(s, `"`, "")
	s = strings.ReplaceAll(s, "'", "")
	s = strings.TrimPrefix(s, "[")
	s = strings.TrimSuffix(s, "]")
	s = whitespace.ReplaceAllString(s, "")
	s = decimalComma.ReplaceAllString(s, ".$1")
	return s
}

// answerCandidates extracts the acceptable answers from a Question.Answer
// field. The field is usually a JSON array of strings, but legacy rows hold a
// bare string; a decode failure degrades to treating the raw value as the
// sole candidate rather than erroring.
func answerCandidates(stored string) []string {
	var arr []string
	if err := json.Unmarshal([]byte(stored), &arr); err == nil {
		return arr
	}
	var scalar string
	if err := json.Unmarshal([]byte(stored), &scalar); err == nil {
		return []string{scalar}
	}
	return []string{stored}
}

// IsAnswerCorrect reports whether the submission matches the stored answer
// field. Each candidate may pack alternatives separated by "|"; segments are
// URL-unescaped before normalization so encoded symbols in authored answers
// still match.
func IsAnswerCorrect(submitted, stored string) bool {
	want := NormalizeAnswer(submitted)
	for _, candidate := range answerCandidates(stored) {
		for _, segment := range strings.Split(candidate, "|") {
			if decoded, err := url.QueryUnescape(segment); err == nil {
				segment = decoded
			}
			if NormalizeAnswer(segment) == want {
				return true
			}
		}
	}
	return false
}
