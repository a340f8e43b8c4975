package catalog

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// WordList is one importable YAML vocabulary file: a language, a default
// unlocking level, and the words themselves.
type WordList struct {
	Language string `yaml:"language"`
	Level    int    `yaml:"level"`
	Words    []Item `yaml:"words"`
}

// UnmarshalYAML decodes an item and routes its raw attribute map into the
// typed variant for the item's word type.
func (i *Item) UnmarshalYAML(value *yaml.Node) error {
	type rawItem struct {
		Word            string         `yaml:"word"`
		Meaning         string         `yaml:"meaning"`
		Type            WordType       `yaml:"type"`
		Level           int            `yaml:"level"`
		Attributes      map[string]any `yaml:"attributes"`
		AcceptedAnswers []string       `yaml:"accepted_answers"`
	}

	var raw rawItem
	if err := value.Decode(&raw); err != nil {
		return fmt.Errorf("value.Decode() > %w", err)
	}

	i.Word = raw.Word
	i.Meaning = raw.Meaning
	i.Type = raw.Type
	i.Level = raw.Level
	i.Attributes = ParseAttributes(raw.Type, raw.Attributes)
	i.AcceptedAnswers = raw.AcceptedAnswers
	return nil
}

// ReadWordList reads and validates a single YAML word list file. The list's
// language and level are applied to items that do not set their own.
func ReadWordList(path string) (*WordList, error) {
	contents, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("os.ReadFile(%s) > %w", path, err)
	}

	var list WordList
	if err := yaml.Unmarshal(contents, &list); err != nil {
		return nil, fmt.Errorf("yaml.Unmarshal(%s) > %w", path, err)
	}

	if list.Language == "" {
		return nil, fmt.Errorf("word list %s has no language", path)
	}
	if list.Level <= 0 {
		list.Level = 1
	}

	for idx := range list.Words {
		word := &list.Words[idx]
		if strings.TrimSpace(word.Word) == "" {
			return nil, fmt.Errorf("word list %s: entry %d has an empty word", path, idx)
		}
		if strings.TrimSpace(word.Meaning) == "" {
			return nil, fmt.Errorf("word list %s: entry %d (%s) has an empty meaning", path, idx, word.Word)
		}
		word.Language = list.Language
		if word.Level <= 0 {
			word.Level = list.Level
		}
		if word.Type == "" {
			word.Type = WordTypeOther
		}
	}
	return &list, nil
}

// ReadWordListDir reads every .yml/.yaml word list in a directory, sorted by
// file name.
func ReadWordListDir(dir string) ([]*WordList, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("os.ReadDir(%s) > %w", dir, err)
	}

	var paths []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := filepath.Ext(entry.Name())
		if ext != ".yml" && ext != ".yaml" {
			continue
		}
		paths = append(paths, filepath.Join(dir, entry.Name()))
	}
	sort.Strings(paths)

	lists := make([]*WordList, 0, len(paths))
	for _, path := range paths {
		list, err := ReadWordList(path)
		if err != nil {
			return nil, fmt.Errorf("ReadWordList(%s) > %w", path, err)
		}
		lists = append(lists, list)
	}
	return lists, nil
}
