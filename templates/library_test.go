package templates

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docuseek/nlq/core"
)

func TestExecuteTemplate(t *testing.T) {
	l, err := NewLibrary()
	require.NoError(t, err)

	t.Run("substitutes and derives filters", func(t *testing.T) {
		got, err := l.ExecuteTemplate("find-documents-by-type", map[string]string{"type": "PDF"})
		require.NoError(t, err)
		assert.Equal(t, "Find PDF documents", got.Query)
		assert.Equal(t, []string{"pdf"}, got.Filters.DocumentTypes)
	})

	t.Run("missing required parameter", func(t *testing.T) {
		_, err := l.ExecuteTemplate("find-documents-by-type", nil)
		require.Error(t, err)
		assert.ErrorIs(t, err, core.ErrMissingParameter)
	})

	t.Run("empty required parameter", func(t *testing.T) {
		_, err := l.ExecuteTemplate("find-documents-by-type", map[string]string{"type": "  "})
		assert.ErrorIs(t, err, core.ErrMissingParameter)
	})

	t.Run("optional parameter may be absent", func(t *testing.T) {
		got, err := l.ExecuteTemplate("documents-by-status", map[string]string{"status": "Approved"})
		require.NoError(t, err)
		assert.Equal(t, "List documents with status Approved", got.Query)
		assert.Equal(t, []string{"approved"}, got.Filters.Status)
		assert.Empty(t, got.Filters.DocumentTypes)
	})

	t.Run("unknown template", func(t *testing.T) {
		_, err := l.ExecuteTemplate("nope", nil)
		assert.ErrorIs(t, err, core.ErrNotFound)
	})
}

func TestSearchTemplates(t *testing.T) {
	l, err := NewLibrary()
	require.NoError(t, err)

	t.Run("body and tag matches rank first", func(t *testing.T) {
		got := l.SearchTemplates("find documents", 10)
		require.NotEmpty(t, got)
		assert.Equal(t, "find-documents-by-type", got[0].Template.ID)
		assert.Contains(t, got[0].MatchedText, "find")
		assert.Contains(t, got[0].MatchedTags, "documents")
		for i := 1; i < len(got); i++ {
			assert.GreaterOrEqual(t, got[i-1].Score, got[i].Score)
		}
	})

	t.Run("zero score templates excluded", func(t *testing.T) {
		got := l.SearchTemplates("zzzz qqqq", 10)
		assert.Empty(t, got)
	})

	t.Run("truncates to max", func(t *testing.T) {
		got := l.SearchTemplates("documents", 2)
		assert.LessOrEqual(t, len(got), 2)
	})

	t.Run("arabic query matches arabic templates", func(t *testing.T) {
		got := l.SearchTemplates("ابحث عن مستندات", 10)
		require.NotEmpty(t, got)
		assert.Equal(t, core.LanguageArabic, got[0].Template.Language)
	})
}

func TestSuggestTemplates(t *testing.T) {
	l, err := NewLibrary()
	require.NoError(t, err)

	user := &core.UserContext{
		ID:         "u1",
		Department: "analytics",
		Preferences: core.Preferences{
			Language: core.LanguageEnglish,
		},
	}

	t.Run("language match lifts english templates", func(t *testing.T) {
		got := l.SuggestTemplates(user, "", 3)
		require.NotEmpty(t, got)
		for _, s := range got {
			assert.Equal(t, core.LanguageEnglish, s.Template.Language)
			assert.LessOrEqual(t, s.Relevance, 1.0)
		}
	})

	t.Run("query text lifts matching templates", func(t *testing.T) {
		got := l.SuggestTemplates(nil, "how many", 1)
		require.Len(t, got, 1)
		assert.Equal(t, "count-documents-by-topic", got[0].Template.ID)
	})

	t.Run("reason is first satisfied criterion", func(t *testing.T) {
		got := l.SuggestTemplates(user, "", 1)
		require.NotEmpty(t, got)
		assert.Equal(t, "matches your language", got[0].Reason)
	})

	t.Run("no user no query falls back to priority", func(t *testing.T) {
		got := l.SuggestTemplates(nil, "", 3)
		require.NotEmpty(t, got)
		assert.Equal(t, "popular template", got[0].Reason)
		assert.Equal(t, 3, got[0].Template.Priority)
	})
}

func TestPersonalizeTemplate(t *testing.T) {
	l, err := NewLibrary()
	require.NoError(t, err)

	user := &core.UserContext{
		ID: "u1",
		Preferences: core.Preferences{
			DocumentTypes: []string{"pdf"},
		},
	}

	got, err := l.PersonalizeTemplate("find-documents-by-type", user)
	require.NoError(t, err)
	assert.Equal(t, "Find [pdf] documents", got.Template)

	original, err := l.Get("find-documents-by-type")
	require.NoError(t, err)
	assert.Equal(t, "Find {type} documents", original.Template)
}

func TestUsageAnalytics(t *testing.T) {
	l, err := NewLibrary()
	require.NoError(t, err)
	now := time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)

	l.RecordUsage("find-documents-by-type", "u1", now)
	l.RecordUsage("find-documents-by-type", "u1", now.Add(time.Minute))
	l.RecordUsage("find-documents-by-type", "u2", now.Add(2*time.Minute))
	l.RecordUsage("recent-documents", "u1", now)
	l.RecordUsage("unknown-template", "u1", now)

	stats := l.Usage("find-documents-by-type")
	assert.Equal(t, 3, stats.Count)
	assert.Equal(t, 2, stats.UniqueUsers)
	assert.Equal(t, now.Add(2*time.Minute), stats.LastUsed)

	popular := l.PopularTemplates(10)
	require.Len(t, popular, 2)
	assert.Equal(t, "find-documents-by-type", popular[0].TemplateID)
}

func TestExportImport(t *testing.T) {
	l, err := NewLibrary()
	require.NoError(t, err)

	data, err := l.Export()
	require.NoError(t, err)

	t.Run("import skips existing by default", func(t *testing.T) {
		result, err := l.Import(data, false)
		require.NoError(t, err)
		assert.Zero(t, result.Added)
		assert.Equal(t, len(l.List("", "")), result.Skipped)
	})

	t.Run("replace overwrites existing", func(t *testing.T) {
		result, err := l.Import(data, true)
		require.NoError(t, err)
		assert.Equal(t, len(l.List("", "")), result.Replaced)
	})

	t.Run("imports into empty library", func(t *testing.T) {
		empty, err := NewLibrary(WithoutSeedCatalog())
		require.NoError(t, err)
		result, err := empty.Import(data, false)
		require.NoError(t, err)
		assert.Equal(t, len(l.List("", "")), result.Added)
	})

	t.Run("invalid template rejected", func(t *testing.T) {
		result, err := l.Import([]byte(`{"version":1,"templates":[{"ID":"x"}]}`), false)
		require.Error(t, err)
		assert.Zero(t, result.Added)
	})
}

func TestAdd(t *testing.T) {
	l, err := NewLibrary(WithoutSeedCatalog())
	require.NoError(t, err)

	tpl := core.QuestionTemplate{
		ID:       "custom",
		Category: "custom",
		Title:    "Custom",
		Template: "Find {thing}",
		Language: core.LanguageEnglish,
		Parameters: []core.TemplateParameter{
			{Name: "thing", Type: "string", Required: true},
		},
	}
	require.NoError(t, l.Add(tpl))
	assert.ErrorIs(t, l.Add(tpl), core.ErrValidation)

	bad := tpl
	bad.ID = ""
	assert.ErrorIs(t, l.Add(bad), core.ErrInvalidTemplate)
}
