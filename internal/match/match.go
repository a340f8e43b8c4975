package match

// Acceptance thresholds are asymmetric on purpose: a one-letter change in a
// short answer is usually a different word ("sol" vs "sal"), while the same
// change in a long phrase is almost always a typo. Short answers therefore
// get a stricter threshold than long ones.
const (
	shortAnswerLength  = 5
	lengthRatioCutoff  = 0.20
	mediumRatioCutoff  = 0.15
	mediumLengthFactor = 0.12
	longLengthFactor   = 0.10
	mediumMaxThreshold = 2
	longMaxThreshold   = 3
	exactLengthLimit   = 3
	oneTypoLengthLimit = 6
	mediumLengthLimit  = 10
)

// IsMatch reports whether a user's free-text answer should be accepted for
// the given correct answer. Each candidate (the correct answer first, then
// the alternatives) is tried in order and the first acceptance wins.
func IsMatch(input, correct string, alternatives []string) bool {
	if isMatchSingle(input, correct) {
		return true
	}
	for _, alt := range alternatives {
		if isMatchSingle(input, alt) {
			return true
		}
	}
	return false
}

func isMatchSingle(input, correct string) bool {
	normInput := Normalize(input)
	normCorrect := Normalize(correct)
	if normCorrect == "" {
		return false
	}
	if normInput == normCorrect {
		return true
	}

	strippedInput := stripSpaces(normInput)
	strippedCorrect := stripSpaces(normCorrect)
	if strippedInput == strippedCorrect {
		return true
	}

	distance := Levenshtein(strippedInput, strippedCorrect)
	return distance <= typoThreshold(strippedInput, strippedCorrect)
}

// typoThreshold returns the maximum accepted edit distance for the given
// already-stripped input and correct answer. A negative result rejects
// everything.
func typoThreshold(input, correct string) int {
	inputLen := len([]rune(input))
	correctLen := len([]rune(correct))

	lengthDiff := inputLen - correctLen
	if lengthDiff < 0 {
		lengthDiff = -lengthDiff
	}
	ratio := float64(lengthDiff) / float64(correctLen)

	// A large length change on a short answer means a different word, not a
	// typo.
	if ratio > lengthRatioCutoff && correctLen <= shortAnswerLength {
		return -1
	}

	maxLen := inputLen
	if correctLen > maxLen {
		maxLen = correctLen
	}

	switch {
	case maxLen <= exactLengthLimit:
		return 0
	case maxLen <= oneTypoLengthLimit:
		if ratio <= mediumRatioCutoff {
			return 1
		}
		return 0
	case maxLen <= mediumLengthLimit:
		return clampThreshold(int(mediumLengthFactor*float64(maxLen)), mediumMaxThreshold)
	default:
		return clampThreshold(int(longLengthFactor*float64(maxLen)), longMaxThreshold)
	}
}

func clampThreshold(threshold, max int) int {
	if threshold < 1 {
		return 1
	}
	if threshold > max {
		return max
	}
	return threshold
}
