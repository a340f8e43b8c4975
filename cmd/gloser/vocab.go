package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/gloser-app/gloser/internal/catalog"
	"github.com/gloser-app/gloser/internal/config"
	"github.com/gloser-app/gloser/internal/dictionary"
)

func newVocabCommand() *cobra.Command {
	vocabCommand := &cobra.Command{
		Use:   "vocab",
		Short: "Manage the vocabulary catalog",
	}

	vocabCommand.AddCommand(newVocabImportCommand())
	vocabCommand.AddCommand(newVocabListCommand())
	vocabCommand.AddCommand(newVocabDefineCommand())

	return vocabCommand
}

func newVocabImportCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "import [path]",
		Short: "Import word list YAML files into the catalog",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}

			path := cfg.Wordlists.Directory
			if len(args) > 0 {
				path = args[0]
			}
			if path == "" {
				return errors.New("no path given and no wordlists directory configured")
			}

			lists, err := readWordLists(path)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			db, err := openDatabase(ctx, cfg)
			if err != nil {
				return err
			}
			defer func() {
				_ = db.Close()
			}()

			repository := catalog.NewRepository(db)
			imported := 0
			for _, list := range lists {
				for i := range list.Words {
					if err := repository.Upsert(ctx, &list.Words[i]); err != nil {
						return fmt.Errorf("repository.Upsert(%s) > %w", list.Words[i].Word, err)
					}
					imported++
				}
			}
			fmt.Printf("Imported %d words from %d lists.\n", imported, len(lists))
			return nil
		},
	}
}

func readWordLists(path string) ([]*catalog.WordList, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("os.Stat(%s) > %w", path, err)
	}
	if info.IsDir() {
		return catalog.ReadWordListDir(path)
	}
	list, err := catalog.ReadWordList(path)
	if err != nil {
		return nil, err
	}
	return []*catalog.WordList{list}, nil
}

func newVocabListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the vocabulary catalog for the configured language",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}

			ctx := cmd.Context()
			db, err := openDatabase(ctx, cfg)
			if err != nil {
				return err
			}
			defer func() {
				_ = db.Close()
			}()

			items, err := catalog.NewRepository(db).List(ctx, cfg.Language)
			if err != nil {
				return fmt.Errorf("repository.List() > %w", err)
			}
			for _, item := range items {
				fmt.Printf("%d\t[%d] %-12s %-24s %s\n", item.ID, item.Level, item.Type, item.Word, item.Meaning)
			}
			fmt.Printf("%d words.\n", len(items))
			return nil
		},
	}
}

func newVocabDefineCommand() *cobra.Command {
	var dict string
	command := &cobra.Command{
		Use:   "define [word]",
		Short: "Look a word up in the Ordbøkene dictionary",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}

			client := dictionary.NewClient(dictionaryConfig(cfg.Dictionary))
			defer func() {
				_ = client.Close()
			}()

			entry, err := client.Lookup(cmd.Context(), args[0], dict)
			if errors.Is(err, dictionary.ErrNotFound) {
				fmt.Printf("No dictionary entry for %q.\n", args[0])
				return nil
			}
			if err != nil {
				return fmt.Errorf("client.Lookup(%s) > %w", args[0], err)
			}

			if entry.WordClass != "" {
				fmt.Printf("%s (%s)\n", entry.Word, entry.WordClass)
			} else {
				fmt.Println(entry.Word)
			}
			for i, definition := range entry.Definitions {
				fmt.Printf("%d. %s\n", i+1, definition)
			}
			return nil
		},
	}
	command.Flags().StringVar(&dict, "dict", dictionary.DictBokmaal, "dictionary to use (bm or nn)")
	return command
}

func dictionaryConfig(cfg config.DictionaryConfig) dictionary.Config {
	return dictionary.Config{
		BaseURL:        cfg.BaseURL,
		CacheDirectory: cfg.CacheDirectory,
		Timeout:        time.Duration(cfg.TimeoutSeconds) * time.Second,
	}
}
