package catalog

import (
	"gopkg.in/yaml.v3"
)

// Attributes is the typed grammatical detail of a vocabulary item, keyed by
// its word type. Matching and scheduling never inspect these fields; they
// are carried for display and export only, so unknown keys survive in Extra
// untouched.
type Attributes struct {
	Noun      *NounAttributes
	Verb      *VerbAttributes
	Adjective *AdjectiveAttributes
	Extra     map[string]any
}

// NounAttributes holds Norwegian noun inflection.
type NounAttributes struct {
	Gender         string // en, ei or et
	Plural         string
	Definite       string
	DefinitePlural string
}

// VerbAttributes holds Norwegian verb conjugation.
type VerbAttributes struct {
	Present        string
	Past           string
	PastParticiple string
}

// AdjectiveAttributes holds Norwegian adjective agreement forms.
type AdjectiveAttributes struct {
	Neuter string
	Plural string
}

// IsZero reports whether no attributes are set. yaml omits zero values via
// this method.
func (a Attributes) IsZero() bool {
	return a.Noun == nil && a.Verb == nil && a.Adjective == nil && len(a.Extra) == 0
}

// ParseAttributes routes a raw attribute map into the variant for the given
// word type. Keys that do not belong to the variant, and all keys of word
// types without a variant, fall through to Extra.
func ParseAttributes(wordType WordType, raw map[string]any) Attributes {
	if len(raw) == 0 {
		return Attributes{}
	}

	attrs := Attributes{}
	take := func(key string) (string, bool) {
		value, ok := raw[key]
		if !ok {
			return "", false
		}
		s, ok := value.(string)
		return s, ok
	}

	consumed := make(map[string]struct{})
	consume := func(key string) string {
		s, ok := take(key)
		if ok {
			consumed[key] = struct{}{}
		}
		return s
	}

	switch wordType {
	case WordTypeNoun:
		noun := NounAttributes{
			Gender:         consume("gender"),
			Plural:         consume("plural"),
			Definite:       consume("definite"),
			DefinitePlural: consume("definite_plural"),
		}
		if noun != (NounAttributes{}) {
			attrs.Noun = &noun
		}
	case WordTypeVerb:
		verb := VerbAttributes{
			Present:        consume("present"),
			Past:           consume("past"),
			PastParticiple: consume("past_participle"),
		}
		if verb != (VerbAttributes{}) {
			attrs.Verb = &verb
		}
	case WordTypeAdjective:
		adjective := AdjectiveAttributes{
			Neuter: consume("neuter"),
			Plural: consume("plural"),
		}
		if adjective != (AdjectiveAttributes{}) {
			attrs.Adjective = &adjective
		}
	}

	for key, value := range raw {
		if _, ok := consumed[key]; ok {
			continue
		}
		if attrs.Extra == nil {
			attrs.Extra = make(map[string]any)
		}
		attrs.Extra[key] = value
	}
	return attrs
}

// Flatten merges the set variant and the extra keys back into a single map,
// the inverse of ParseAttributes. It returns nil when nothing is set.
func (a Attributes) Flatten() map[string]any {
	if a.IsZero() {
		return nil
	}

	flat := make(map[string]any)
	put := func(key, value string) {
		if value != "" {
			flat[key] = value
		}
	}

	switch {
	case a.Noun != nil:
		put("gender", a.Noun.Gender)
		put("plural", a.Noun.Plural)
		put("definite", a.Noun.Definite)
		put("definite_plural", a.Noun.DefinitePlural)
	case a.Verb != nil:
		put("present", a.Verb.Present)
		put("past", a.Verb.Past)
		put("past_participle", a.Verb.PastParticiple)
	case a.Adjective != nil:
		put("neuter", a.Adjective.Neuter)
		put("plural", a.Adjective.Plural)
	}

	for key, value := range a.Extra {
		flat[key] = value
	}
	return flat
}

// MarshalYAML emits the flattened attribute map.
func (a Attributes) MarshalYAML() (any, error) {
	flat := a.Flatten()
	if flat == nil {
		return nil, nil
	}
	return flat, nil
}

var _ yaml.IsZeroer = Attributes{}
