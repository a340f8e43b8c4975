package match

import (
	"regexp"
	"strings"
)

// grammarDescriptors are parenthetical annotations that describe grammar
// rather than meaning. "du (singular)" should accept "du" but never
// "singular" on its own.
var grammarDescriptors = map[string]struct{}{
	"singular":      {},
	"plural":        {},
	"masculine":     {},
	"feminine":      {},
	"neuter":        {},
	"formal":        {},
	"informal":      {},
	"polite":        {},
	"past":          {},
	"present":       {},
	"past tense":    {},
	"present tense": {},
	"future tense":  {},
	"infinitive":    {},
	"imperative":    {},
	"definite":      {},
	"indefinite":    {},
	"first person":  {},
	"second person": {},
	"third person":  {},
	"noun":          {},
	"verb":          {},
	"adjective":     {},
	"adverb":        {},
	"pronoun":       {},
}

var parentheticalSuffixPattern = regexp.MustCompile(`\s*\([^)]*\)\s*$`)

// Alternatives derives the acceptable alternative answers for a canonical
// meaning string. The result always contains the trimmed original meaning,
// is deduplicated, and its order is not guaranteed to be stable.
func Alternatives(meaning string) []string {
	original := strings.TrimSpace(meaning)
	var candidates []string
	candidates = appendCandidate(candidates, original)

	// "freedom (liberty)" also accepts "freedom" and "liberty".
	if stripped := stripParentheticalSuffix(original); stripped != original {
		candidates = appendCandidate(candidates, stripped)
	}
	if content, ok := parentheticalContent(original); ok && !isGrammarDescriptor(content) {
		candidates = appendCandidate(candidates, content)
	}

	if strings.Contains(original, ",") {
		for _, segment := range strings.Split(original, ",") {
			segment = strings.TrimSpace(segment)
			candidates = appendCandidate(candidates, segment)
			if stripped := stripParentheticalSuffix(segment); stripped != segment {
				candidates = appendCandidate(candidates, stripped)
			}
		}
	}

	if strings.Contains(original, "/") {
		for _, segment := range strings.Split(original, "/") {
			segment = strings.TrimSpace(segment)
			if segment == "etc." || segment == "etc" || segment == "..." {
				continue
			}
			stripped := stripParentheticalSuffix(segment)
			if isDescriptorOnlySegment(segment) {
				// "(formal)" alone carries no meaning; only its stripped
				// remainder (usually empty) may survive the final filter.
				candidates = appendCandidate(candidates, stripped)
				continue
			}
			candidates = appendCandidate(candidates, segment)
			if stripped != segment {
				candidates = appendCandidate(candidates, stripped)
			}
		}
	}

	return filterCandidates(candidates, original)
}

func appendCandidate(candidates []string, candidate string) []string {
	for _, existing := range candidates {
		if existing == candidate {
			return candidates
		}
	}
	return append(candidates, candidate)
}

// stripParentheticalSuffix removes a trailing "(...)" annotation.
func stripParentheticalSuffix(s string) string {
	return strings.TrimSpace(parentheticalSuffixPattern.ReplaceAllString(s, ""))
}

// parentheticalContent returns the content of a trailing "(...)" annotation,
// keeping the original casing.
func parentheticalContent(s string) (string, bool) {
	open := strings.LastIndex(s, "(")
	closing := strings.LastIndex(s, ")")
	if open < 0 || closing < open {
		return "", false
	}
	content := strings.TrimSpace(s[open+1 : closing])
	if content == "" {
		return "", false
	}
	return content, true
}

func isGrammarDescriptor(s string) bool {
	_, ok := grammarDescriptors[strings.ToLower(strings.TrimSpace(s))]
	return ok
}

// isDescriptorOnlySegment reports whether a segment is nothing but a
// blacklisted descriptor in parentheses, like "(informal)".
func isDescriptorOnlySegment(segment string) bool {
	if !strings.HasPrefix(segment, "(") || !strings.HasSuffix(segment, ")") {
		return false
	}
	return isGrammarDescriptor(segment[1 : len(segment)-1])
}

// filterCandidates drops empty candidates and bare articles. "the" is never
// a useful answer; "a"/"an" only when the original meaning literally was one.
func filterCandidates(candidates []string, original string) []string {
	originalTokens := make(map[string]struct{})
	for _, token := range strings.FieldsFunc(original, func(r rune) bool {
		return r == ' ' || r == '\t' || r == '/'
	}) {
		originalTokens[strings.ToLower(token)] = struct{}{}
	}

	result := make([]string, 0, len(candidates))
	for _, candidate := range candidates {
		if candidate == "" {
			continue
		}
		lower := strings.ToLower(candidate)
		if lower == "the" {
			continue
		}
		if lower == "a" || lower == "an" {
			if _, ok := originalTokens[lower]; !ok {
				continue
			}
		}
		result = append(result, candidate)
	}
	return result
}
