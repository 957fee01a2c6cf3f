package service

import (
	"regexp"
	"strconv"
)

// MaxReflectionScore is the top of the reflection rating scale.
const MaxReflectionScore = 10

var ratingPattern = regexp.MustCompile(`(\d+)\s*/\s*10`)

// ParseReflectionScore extracts the first "N/10" rating from free text. The
// digit run directly before the slash is the score, so "7.5/10" reads as 5.
// The result is clamped to [0, 10]; ok is false when nothing matches or the
// digits do not fit an int.
func ParseReflectionScore(text string) (score int, ok bool) {
	match := ratingPattern.FindStringSubmatch(text)
	if match == nil {
		return 0, false
	}
	value, err := strconv.Atoi(match[1])
	if err != nil {
		return 0, false
	}
	if value > MaxReflectionScore {
		return MaxReflectionScore, true
	}
	return value, true
}
