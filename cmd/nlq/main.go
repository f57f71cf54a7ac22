// Copyright 2025 Docuseek Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/docuseek/nlq"
	"github.com/docuseek/nlq/core"
	"github.com/docuseek/nlq/pipeline"
)

func main() {
	app := &cli.App{
		Name:  "nlq",
		Usage: "Natural language query understanding for document search",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
			&cli.StringFlag{
				Name:    "db",
				Aliases: []string{"d"},
				Usage:   "Path to BadgerDB directory for persistent lexicons and usage analytics",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:      "query",
				Usage:     "Process a natural language query through the full pipeline",
				ArgsUsage: "<query text>",
				Action:    queryCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "lang",
						Usage: "Force the query language (en, ar) instead of detecting it",
					},
					&cli.StringFlag{
						Name:  "user",
						Usage: "User ID for personalization and usage analytics",
					},
					&cli.BoolFlag{
						Name:  "no-cache",
						Usage: "Bypass the result cache for this query",
					},
					&cli.IntFlag{
						Name:  "max-results",
						Usage: "Maximum number of search results",
						Value: 20,
					},
				},
			},
			{
				Name:      "suggest",
				Usage:     "Print query completions for a partial input",
				ArgsUsage: "<partial query>",
				Action:    suggestCommand,
			},
			{
				Name:  "templates",
				Usage: "Work with the question template library",
				Subcommands: []*cli.Command{
					{
						Name:   "list",
						Usage:  "List templates, optionally filtered",
						Action: templatesListCommand,
						Flags: []cli.Flag{
							&cli.StringFlag{
								Name:  "category",
								Usage: "Filter by category",
							},
							&cli.StringFlag{
								Name:  "lang",
								Usage: "Filter by language (en, ar)",
							},
						},
					},
					{
						Name:   "export",
						Usage:  "Export the template library as JSON to stdout",
						Action: templatesExportCommand,
					},
					{
						Name:      "import",
						Usage:     "Import templates from a JSON export file",
						ArgsUsage: "<file>",
						Action:    templatesImportCommand,
						Flags: []cli.Flag{
							&cli.BoolFlag{
								Name:  "replace",
								Usage: "Replace templates whose IDs already exist",
							},
						},
					},
					{
						Name:   "popular",
						Usage:  "Show the most used templates from persisted analytics",
						Action: templatesPopularCommand,
						Flags: []cli.Flag{
							&cli.IntFlag{
								Name:  "max",
								Usage: "Maximum number of templates to show",
								Value: 5,
							},
						},
					},
				},
			},
			{
				Name:  "lexicon",
				Usage: "Extend the synonym, acronym and translation lexicons",
				Subcommands: []*cli.Command{
					{
						Name:      "add-synonym",
						Usage:     "Register synonyms for a term",
						ArgsUsage: "<term> <synonym> [synonym...]",
						Action:    addSynonymCommand,
						Flags: []cli.Flag{
							&cli.StringFlag{
								Name:  "lang",
								Usage: "Lexicon language (en, ar)",
								Value: "en",
							},
						},
					},
					{
						Name:      "add-acronym",
						Usage:     "Register an acronym expansion",
						ArgsUsage: "<acronym> <expansion>",
						Action:    addAcronymCommand,
					},
					{
						Name:      "add-translation",
						Usage:     "Register an English/Arabic word or phrase pair",
						ArgsUsage: "<english> <arabic>",
						Action:    addTranslationCommand,
						Flags: []cli.Flag{
							&cli.BoolFlag{
								Name:  "transliteration",
								Usage: "Mark the pair as a phonetic mapping rather than a translation",
							},
						},
					},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

// openEngine builds an engine honoring the global --db flag.
func openEngine(c *cli.Context, opts ...nlq.EngineOption) (*nlq.Engine, error) {
	if dbPath := c.String("db"); dbPath != "" {
		opts = append(opts, nlq.WithStoragePath(dbPath))
	}
	engine, err := nlq.NewEngine(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create engine: %w", err)
	}
	return engine, nil
}

func parseLanguage(raw string) (core.Language, error) {
	if raw == "" {
		return "", nil
	}
	lang := core.Language(strings.ToLower(raw))
	if err := core.ValidateLanguage(lang); err != nil {
		return "", fmt.Errorf("invalid language %q: must be en or ar", raw)
	}
	return lang, nil
}

func queryCommand(c *cli.Context) error {
	text := strings.TrimSpace(strings.Join(c.Args().Slice(), " "))
	if text == "" {
		return fmt.Errorf("query text is required")
	}
	lang, err := parseLanguage(c.String("lang"))
	if err != nil {
		return err
	}

	engine, err := openEngine(c)
	if err != nil {
		return err
	}
	defer engine.Close()

	opts := pipeline.ProcessOptions{
		Language:   lang,
		SkipCache:  c.Bool("no-cache"),
		MaxResults: c.Int("max-results"),
	}
	if userID := c.String("user"); userID != "" {
		opts.User = &core.UserContext{ID: userID}
	}

	result, err := engine.ProcessQuery(context.Background(), text, opts)
	if err != nil {
		return fmt.Errorf("query processing failed: %w", err)
	}
	return printJSON(result)
}

func suggestCommand(c *cli.Context) error {
	partial := strings.TrimSpace(strings.Join(c.Args().Slice(), " "))
	if partial == "" {
		return fmt.Errorf("partial query text is required")
	}

	engine, err := openEngine(c)
	if err != nil {
		return err
	}
	defer engine.Close()

	for _, suggestion := range engine.Suggest(partial) {
		fmt.Println(suggestion)
	}
	return nil
}

func templatesListCommand(c *cli.Context) error {
	lang, err := parseLanguage(c.String("lang"))
	if err != nil {
		return err
	}

	engine, err := openEngine(c)
	if err != nil {
		return err
	}
	defer engine.Close()

	for _, tpl := range engine.Templates().List(c.String("category"), lang) {
		fmt.Printf("%-30s %-12s %s\n", tpl.ID, tpl.Category, tpl.Title)
	}
	return nil
}

func templatesExportCommand(c *cli.Context) error {
	engine, err := openEngine(c)
	if err != nil {
		return err
	}
	defer engine.Close()

	data, err := engine.Templates().Export()
	if err != nil {
		return fmt.Errorf("export failed: %w", err)
	}
	fmt.Println(string(data))
	return nil
}

func templatesImportCommand(c *cli.Context) error {
	path := c.Args().First()
	if path == "" {
		return fmt.Errorf("import file path is required")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read import file: %w", err)
	}

	engine, err := openEngine(c)
	if err != nil {
		return err
	}
	defer engine.Close()

	result, err := engine.Templates().Import(data, c.Bool("replace"))
	if err != nil {
		return fmt.Errorf("import failed: %w", err)
	}
	fmt.Fprintf(os.Stderr, "Added: %d, Replaced: %d, Skipped: %d\n",
		result.Added, result.Replaced, result.Skipped)
	return nil
}

func templatesPopularCommand(c *cli.Context) error {
	engine, err := openEngine(c)
	if err != nil {
		return err
	}
	defer engine.Close()

	for _, stats := range engine.Templates().PopularTemplates(c.Int("max")) {
		fmt.Printf("%-30s uses=%-6d unique-users~%d\n",
			stats.TemplateID, stats.Count, stats.UniqueUsers)
	}
	return nil
}

func addSynonymCommand(c *cli.Context) error {
	args := c.Args().Slice()
	if len(args) < 2 {
		return fmt.Errorf("a term and at least one synonym are required")
	}
	lang, err := parseLanguage(c.String("lang"))
	if err != nil {
		return err
	}

	engine, err := openEngine(c)
	if err != nil {
		return err
	}
	defer engine.Close()

	if err := engine.AddSynonym(context.Background(), lang, args[0], args[1:]...); err != nil {
		return fmt.Errorf("failed to add synonym: %w", err)
	}
	return nil
}

func addAcronymCommand(c *cli.Context) error {
	args := c.Args().Slice()
	if len(args) != 2 {
		return fmt.Errorf("an acronym and its expansion are required")
	}

	engine, err := openEngine(c)
	if err != nil {
		return err
	}
	defer engine.Close()

	if err := engine.AddAcronym(context.Background(), args[0], args[1]); err != nil {
		return fmt.Errorf("failed to add acronym: %w", err)
	}
	return nil
}

func addTranslationCommand(c *cli.Context) error {
	args := c.Args().Slice()
	if len(args) != 2 {
		return fmt.Errorf("an English term and its Arabic counterpart are required")
	}

	engine, err := openEngine(c)
	if err != nil {
		return err
	}
	defer engine.Close()

	err = engine.AddTranslation(context.Background(), args[0], args[1], c.Bool("transliteration"))
	if err != nil {
		return fmt.Errorf("failed to add translation: %w", err)
	}
	return nil
}

func printJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode result: %w", err)
	}
	fmt.Println(string(data))
	return nil
}

func setupLogger(c *cli.Context) error {
	// Get log level from flag and normalize to lowercase
	levelStr := strings.ToLower(c.String("log-level"))

	// Map string to slog.Level
	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	// Configure slog with the specified level
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
