package multilang

import (
	"strings"
	"testing"

	"github.com/docuseek/nlq/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestProcessor(t *testing.T) *Processor {
	t.Helper()
	p, err := NewProcessor()
	require.NoError(t, err)
	return p
}

func TestDetectLanguage(t *testing.T) {
	p := newTestProcessor(t)

	t.Run("pure english", func(t *testing.T) {
		result := p.DetectLanguage("find all contracts")
		assert.Equal(t, core.LanguageEnglish, result.Language)
		assert.Greater(t, result.Confidence, 0.5)
	})

	t.Run("pure arabic", func(t *testing.T) {
		result := p.DetectLanguage("ابحث عن العقود")
		assert.Equal(t, core.LanguageArabic, result.Language)
		assert.Greater(t, result.Confidence, 0.5)
	})

	t.Run("mixed with ordered segments", func(t *testing.T) {
		result := p.DetectLanguage("hello مرحبا world")
		assert.Equal(t, core.LanguageMixed, result.Language)
		require.Len(t, result.Segments, 3)
		assert.Equal(t, core.LanguageEnglish, result.Segments[0].Language)
		assert.Equal(t, "hello", result.Segments[0].Text)
		assert.Equal(t, core.LanguageArabic, result.Segments[1].Language)
		assert.Equal(t, "مرحبا", result.Segments[1].Text)
		assert.Equal(t, core.LanguageEnglish, result.Segments[2].Language)
		assert.Equal(t, "world", result.Segments[2].Text)
	})

	t.Run("mixed iff both languages present", func(t *testing.T) {
		for _, text := range []string{"find العقود", "تقرير report", "only english", "فقط عربي"} {
			result := p.DetectLanguage(text)
			en, ar := 0, 0
			for _, seg := range result.Segments {
				switch seg.Language {
				case core.LanguageEnglish:
					en++
				case core.LanguageArabic:
					ar++
				}
			}
			assert.Equal(t, result.Language == core.LanguageMixed, en >= 1 && ar >= 1, "text %q", text)
		}
	})

	t.Run("no letters falls back to english", func(t *testing.T) {
		result := p.DetectLanguage("123 456")
		assert.Equal(t, core.LanguageEnglish, result.Language)
		assert.Equal(t, 0.5, result.Confidence)
	})

	t.Run("confidence always in range", func(t *testing.T) {
		for _, text := range []string{"", "a", "مرحبا hello 123", "!!!", "q1 2024 تقرير"} {
			result := p.DetectLanguage(text)
			assert.GreaterOrEqual(t, result.Confidence, 0.0)
			assert.LessOrEqual(t, result.Confidence, 1.0)
		}
	})

	t.Run("adjacent same-language tokens merge into one run", func(t *testing.T) {
		result := p.DetectLanguage("find all contracts عن النظام")
		require.Len(t, result.Segments, 2)
		assert.Equal(t, "find all contracts", result.Segments[0].Text)
		assert.Equal(t, "عن النظام", result.Segments[1].Text)
	})
}

func TestTranslate(t *testing.T) {
	p := newTestProcessor(t)

	t.Run("identity when source equals target", func(t *testing.T) {
		result, err := p.Translate("find all contracts", core.LanguageEnglish, core.LanguageEnglish)
		require.NoError(t, err)
		assert.Equal(t, "find all contracts", result.Text)
		assert.Equal(t, 1.0, result.Confidence)
	})

	t.Run("identity with auto-detected source", func(t *testing.T) {
		result, err := p.Translate("find all contracts", core.LanguageEnglish, "")
		require.NoError(t, err)
		assert.Equal(t, "find all contracts", result.Text)
		assert.Equal(t, 1.0, result.Confidence)
	})

	t.Run("arabic to english", func(t *testing.T) {
		result, err := p.Translate("مستند نظام", core.LanguageEnglish, core.LanguageArabic)
		require.NoError(t, err)
		assert.Contains(t, result.Text, "document")
		assert.Contains(t, result.Text, "system")
		assert.Equal(t, 1.0, result.Confidence)
	})

	t.Run("english to arabic", func(t *testing.T) {
		result, err := p.Translate("document system", core.LanguageArabic, core.LanguageEnglish)
		require.NoError(t, err)
		assert.Contains(t, result.Text, "مستند")
		assert.Contains(t, result.Text, "نظام")
	})

	t.Run("unmapped tokens pass through", func(t *testing.T) {
		result, err := p.Translate("document 42 zzqx", core.LanguageArabic, core.LanguageEnglish)
		require.NoError(t, err)
		assert.Contains(t, result.Text, "42")
		assert.Contains(t, result.Text, "zzqx")
		assert.InDelta(t, 1.0/3.0, result.Confidence, 1e-9)
	})

	t.Run("transliteration fallback for brands", func(t *testing.T) {
		result, err := p.Translate("microsoft report", core.LanguageArabic, core.LanguageEnglish)
		require.NoError(t, err)
		assert.Contains(t, result.Text, "مايكروسوفت")
		assert.Contains(t, result.Text, "تقرير")
		assert.Equal(t, 1.0, result.Confidence)
	})

	t.Run("phrase dictionary wins over single words", func(t *testing.T) {
		result, err := p.Translate("created by admin", core.LanguageArabic, core.LanguageEnglish)
		require.NoError(t, err)
		assert.Contains(t, result.Text, "من إعداد")
	})

	t.Run("invalid target language", func(t *testing.T) {
		_, err := p.Translate("find", "fr", "")
		assert.ErrorIs(t, err, core.ErrUnsupportedLanguage)
	})

	t.Run("runtime-added mapping", func(t *testing.T) {
		p.AddTranslation("blockchain", "سلسلة الكتل")
		result, err := p.Translate("blockchain", core.LanguageArabic, core.LanguageEnglish)
		require.NoError(t, err)
		assert.Equal(t, "سلسلة الكتل", result.Text)
	})
}

func TestFindCrossLanguageMatches(t *testing.T) {
	p := newTestProcessor(t)

	docs := []core.DocumentSearchResult{
		{ID: "ar-1", Title: "مستند نظام الفواتير", Content: "نظام إدارة", Language: core.LanguageArabic},
		{ID: "ar-2", Title: "تقرير الميزانية", Content: "ميزانية السنة", Language: core.LanguageArabic},
		{ID: "en-1", Title: "document system", Content: "system overview", Language: core.LanguageEnglish},
		{ID: "mixed-1", Title: "system نظام", Language: core.LanguageMixed},
	}

	t.Run("same-language documents excluded", func(t *testing.T) {
		matches := p.FindCrossLanguageMatches("document system", docs, 10)
		for _, m := range matches {
			assert.NotEqual(t, core.LanguageEnglish, m.DocumentLanguage)
		}
	})

	t.Run("matches translated terms", func(t *testing.T) {
		matches := p.FindCrossLanguageMatches("document system", docs, 10)
		require.NotEmpty(t, matches)
		assert.Equal(t, "ar-1", matches[0].Document.ID)
		require.NotEmpty(t, matches[0].MatchedTerms)
		assert.Equal(t, core.TranslationTranslated, matches[0].MatchedTerms[0].Type)
		assert.Greater(t, matches[0].MatchScore, 0.0)
		assert.LessOrEqual(t, matches[0].MatchScore, 1.0)
	})

	t.Run("sorted descending and truncated", func(t *testing.T) {
		matches := p.FindCrossLanguageMatches("document system budget", docs, 1)
		require.Len(t, matches, 1)

		all := p.FindCrossLanguageMatches("document system budget", docs, 10)
		for i := 1; i < len(all); i++ {
			assert.GreaterOrEqual(t, all[i-1].MatchScore, all[i].MatchScore)
		}
	})

	t.Run("no overlap yields no match", func(t *testing.T) {
		matches := p.FindCrossLanguageMatches("zzqx unmatched", docs, 10)
		assert.Empty(t, matches)
	})
}

func TestCreateBilingualResultSet(t *testing.T) {
	p := newTestProcessor(t)

	docs := []core.DocumentSearchResult{
		{ID: "en-1", Language: core.LanguageEnglish},
		{ID: "en-2", Language: core.LanguageEnglish},
		{ID: "ar-1", Language: core.LanguageArabic},
		{ID: "mixed-1", Language: core.LanguageMixed},
	}

	set := p.CreateBilingualResultSet("find contracts", docs)
	assert.Len(t, set.SameLanguage, 2)
	assert.Len(t, set.CrossLanguage, 1)
	assert.Len(t, set.Mixed, 1)
	assert.Equal(t, 4, set.TotalMatches)
	assert.Equal(t, 2, set.LanguageDistribution[core.LanguageEnglish])
	assert.Equal(t, 1, set.LanguageDistribution[core.LanguageArabic])
	assert.Equal(t, 1, set.LanguageDistribution[core.LanguageMixed])
}

func TestRTL(t *testing.T) {
	p := newTestProcessor(t)

	t.Run("rtl needed iff arabic present", func(t *testing.T) {
		assert.False(t, p.ShouldUseRTL("english only"))
		assert.True(t, p.ShouldUseRTL("مرحبا"))
		assert.True(t, p.ShouldUseRTL("hello مرحبا"))
	})

	t.Run("pure arabic unchanged", func(t *testing.T) {
		text := "ابحث عن العقود"
		assert.Equal(t, text, p.FormatForRTL(text))
	})

	t.Run("pure english unchanged", func(t *testing.T) {
		assert.Equal(t, "find contracts", p.FormatForRTL("find contracts"))
	})

	t.Run("mixed wraps arabic runs preserving order", func(t *testing.T) {
		got := p.FormatForRTL("hello مرحبا world")
		assert.Equal(t, "hello ‫مرحبا‬ world", got)
		assert.Equal(t, 1, strings.Count(got, rtlEmbed))
		assert.Equal(t, 1, strings.Count(got, popDir))
	})
}
