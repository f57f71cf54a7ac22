package main

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"

	"github.com/docuseek/nlq/core"
)

func TestParseLanguage(t *testing.T) {
	t.Run("empty means detect", func(t *testing.T) {
		lang, err := parseLanguage("")
		require.NoError(t, err)
		assert.Equal(t, core.Language(""), lang)
	})

	t.Run("accepts english", func(t *testing.T) {
		lang, err := parseLanguage("en")
		require.NoError(t, err)
		assert.Equal(t, core.LanguageEnglish, lang)
	})

	t.Run("accepts uppercase arabic", func(t *testing.T) {
		lang, err := parseLanguage("AR")
		require.NoError(t, err)
		assert.Equal(t, core.LanguageArabic, lang)
	})

	t.Run("rejects unknown codes", func(t *testing.T) {
		_, err := parseLanguage("fr")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid language")
	})
}

func TestQueryCommandValidation(t *testing.T) {
	app := &cli.App{
		Name: "nlq",
		Commands: []*cli.Command{
			{
				Name:   "query",
				Action: queryCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "lang"},
					&cli.StringFlag{Name: "user"},
					&cli.BoolFlag{Name: "no-cache"},
					&cli.IntFlag{Name: "max-results", Value: 20},
				},
			},
		},
	}

	t.Run("query text is required", func(t *testing.T) {
		err := app.Run([]string{"nlq", "query"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "query text is required")
	})

	t.Run("invalid language is rejected", func(t *testing.T) {
		err := app.Run([]string{"nlq", "query", "--lang", "de", "find", "reports"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid language")
	})
}

func TestLexiconCommandValidation(t *testing.T) {
	app := &cli.App{
		Name: "nlq",
		Commands: []*cli.Command{
			{
				Name:   "add-synonym",
				Action: addSynonymCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "lang", Value: "en"},
				},
			},
			{
				Name:   "add-acronym",
				Action: addAcronymCommand,
			},
			{
				Name:   "add-translation",
				Action: addTranslationCommand,
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "transliteration"},
				},
			},
		},
	}

	t.Run("add-synonym needs a term and a synonym", func(t *testing.T) {
		err := app.Run([]string{"nlq", "add-synonym", "agreement"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "at least one synonym")
	})

	t.Run("add-acronym needs exactly two arguments", func(t *testing.T) {
		err := app.Run([]string{"nlq", "add-acronym", "RFP"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "expansion")
	})

	t.Run("add-translation needs exactly two arguments", func(t *testing.T) {
		err := app.Run([]string{"nlq", "add-translation", "document"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Arabic counterpart")
	})
}

func TestSetupLogger(t *testing.T) {
	t.Run("valid log levels", func(t *testing.T) {
		for _, tc := range []string{"debug", "info", "warn", "error", "DEBUG", "Info"} {
			t.Run(tc, func(t *testing.T) {
				app := &cli.App{
					Name: "test",
					Flags: []cli.Flag{
						&cli.StringFlag{
							Name:  "log-level",
							Value: "info",
						},
					},
					Before: setupLogger,
					Action: func(c *cli.Context) error {
						return nil
					},
				}
				err := app.Run([]string{"test", "--log-level", tc})
				require.NoError(t, err)
			})
		}
	})

	t.Run("invalid log level returns error", func(t *testing.T) {
		app := &cli.App{
			Name: "test",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:  "log-level",
					Value: "info",
				},
			},
			Before: setupLogger,
			Action: func(c *cli.Context) error {
				return nil
			},
		}

		err := app.Run([]string{"test", "--log-level", "invalid"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid log level")
	})
}

func TestMain(m *testing.M) {
	code := m.Run()
	os.Exit(code)
}
