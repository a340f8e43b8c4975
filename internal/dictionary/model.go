// Package dictionary looks up Norwegian words in the Ordbøkene API of the
// University of Bergen, with a file cache in front of the network.
package dictionary

import (
	"encoding/json"
	"strings"
)

const (
	// DictBokmaal is the bokmål dictionary identifier of the API.
	DictBokmaal = "bm"
	// DictNynorsk is the nynorsk dictionary identifier of the API.
	DictNynorsk = "nn"
)

// articlesResponse is the answer of the article search endpoint: article IDs
// per dictionary.
type articlesResponse struct {
	Meta     map[string]articlesMeta `json:"meta"`
	Articles map[string][]int        `json:"articles"`
}

type articlesMeta struct {
	Total int `json:"total"`
}

// article is one dictionary article. The body is a deeply nested template
// structure; only the parts shown to the user are modeled.
type article struct {
	ArticleID int     `json:"article_id"`
	Lemmas    []lemma `json:"lemmas"`
	Body      body    `json:"body"`
}

type lemma struct {
	Lemma     string     `json:"lemma"`
	Paradigms []paradigm `json:"paradigm_info"`
}

type paradigm struct {
	Tags []string `json:"tags"`
}

type body struct {
	Definitions []definitionElement `json:"definitions"`
}

// definitionElement is a node of the definition tree. Explanations carry
// content; definitions nest further elements.
type definitionElement struct {
	TypeName string              `json:"type_"`
	Content  string              `json:"content"`
	Elements []definitionElement `json:"elements"`
}

// Entry is a dictionary lookup result reduced to what the CLI shows.
type Entry struct {
	Word        string
	Dictionary  string
	ArticleID   int
	Lemmas      []string
	WordClass   string
	Definitions []string
}

// parseArticle reduces a raw article JSON document to an Entry.
func parseArticle(word, dict string, raw []byte) (Entry, error) {
	var parsed article
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return Entry{}, err
	}

	entry := Entry{
		Word:       word,
		Dictionary: dict,
		ArticleID:  parsed.ArticleID,
	}
	for _, l := range parsed.Lemmas {
		entry.Lemmas = append(entry.Lemmas, l.Lemma)
		if entry.WordClass == "" {
			entry.WordClass = wordClass(l)
		}
	}
	for _, definition := range parsed.Body.Definitions {
		collectExplanations(definition, &entry.Definitions)
	}
	return entry, nil
}

// wordClass extracts the part-of-speech tag of a lemma, the first paradigm
// tag that is not an inflection code.
func wordClass(l lemma) string {
	for _, p := range l.Paradigms {
		if len(p.Tags) > 0 {
			return strings.ToLower(p.Tags[0])
		}
	}
	return ""
}

func collectExplanations(element definitionElement, out *[]string) {
	if element.TypeName == "explanation" && strings.TrimSpace(element.Content) != "" {
		*out = append(*out, cleanContent(element.Content))
	}
	for _, child := range element.Elements {
		collectExplanations(child, out)
	}
}

// cleanContent strips the API's inline reference placeholders.
func cleanContent(content string) string {
	return strings.TrimSpace(strings.ReplaceAll(content, "$", ""))
}
