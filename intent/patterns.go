package intent

import (
	"regexp"

	"github.com/docuseek/nlq/core"
)

// patternGroup is one intent category with its ordered detection patterns.
type patternGroup struct {
	intent   core.IntentType
	patterns []*regexp.Regexp
}

// intentPatterns holds the ordered, language-specific pattern groups used
// for classification. Within a language, the first group with a matching
// pattern wins; the default is core.IntentSearch.
var intentPatterns = map[core.Language][]patternGroup{
	core.LanguageEnglish: {
		{core.IntentSearch, compileAll(
			`(?i)\b(find|search|look(ing)? for|locate|retrieve|where (is|are))\b`,
			`(?i)\bshow me\b.*\b(documents?|files?|reports?)\b`,
		)},
		{core.IntentFilter, compileAll(
			`(?i)\b(only|just|filter|narrow|limit(ed)? to)\b`,
			`(?i)\b(exclude|without|except)\b`,
		)},
		{core.IntentAnalytics, compileAll(
			`(?i)\b(how many|count|number of|statistics|stats|summar(y|ize)|total)\b`,
			`(?i)\b(average|trend|compare|distribution)\b`,
		)},
		{core.IntentAction, compileAll(
			`(?i)\b(create|delete|remove|update|rename|move|share|upload|download|open)\b`,
		)},
		{core.IntentContext, compileAll(
			`(?i)\b(my|mine|i uploaded|i created)\b`,
			`(?i)\b(recent(ly)?|last (viewed|opened|accessed))\b`,
		)},
	},
	core.LanguageArabic: {
		{core.IntentSearch, compileAll(
			`(ابحث|اعثر|أعثر|جد|أين|اعرض|أرني)`,
		)},
		{core.IntentFilter, compileAll(
			`(فقط|استبعد|باستثناء|بدون|حصر)`,
		)},
		{core.IntentAnalytics, compileAll(
			`(كم عدد|كم|عدد|إحصائيات|احصائيات|ملخص|متوسط|مقارنة)`,
		)},
		{core.IntentAction, compileAll(
			`(احذف|أنشئ|انشئ|حدث|حدّث|افتح|شارك|ارفع|حمل|حمّل)`,
		)},
		{core.IntentContext, compileAll(
			`(ملفاتي|مستنداتي|قسمي|الأخيرة|مؤخرا|مؤخراً)`,
		)},
	},
}

// strongPatterns mark queries whose phrasing unambiguously signals intent;
// a match adds the strong-pattern confidence bonus.
var strongPatterns = map[core.Language][]*regexp.Regexp{
	core.LanguageEnglish: compileAll(
		`(?i)^(find|search|show me|how many|count|create|delete)\b`,
		`(?i)\bdocuments? (about|by|from|created)\b`,
	),
	core.LanguageArabic: compileAll(
		`^(ابحث|اعثر|أعثر|اعرض|كم|احذف|أنشئ|انشئ)`,
		`(مستندات عن|مستند عن|وثائق عن)`,
	),
}

// actionVocab lists the action verbs recognized per intent and language.
// The first vocabulary word found in the normalized query becomes the
// intent's action; if none match, the first word of the vocabulary is used.
var actionVocab = map[core.Language]map[core.IntentType][]string{
	core.LanguageEnglish: {
		core.IntentSearch:    {"find", "search", "locate", "retrieve", "show"},
		core.IntentFilter:    {"filter", "narrow", "limit", "exclude"},
		core.IntentAnalytics: {"count", "summarize", "analyze", "compare"},
		core.IntentAction:    {"create", "delete", "update", "open", "share", "upload", "download"},
		core.IntentContext:   {"show", "list"},
	},
	core.LanguageArabic: {
		core.IntentSearch:    {"ابحث", "اعثر", "اعرض"},
		core.IntentFilter:    {"استبعد", "فقط"},
		core.IntentAnalytics: {"عدد", "ملخص", "قارن"},
		core.IntentAction:    {"أنشئ", "احذف", "حدث", "افتح", "شارك"},
		core.IntentContext:   {"اعرض"},
	},
}

// abbreviations expanded during normalization, keyed per language.
var abbreviations = map[core.Language]map[string]string{
	core.LanguageEnglish: {
		"docs":  "documents",
		"doc":   "document",
		"info":  "information",
		"dept":  "department",
		"mgmt":  "management",
		"rpt":   "report",
		"rpts":  "reports",
		"pres":  "presentation",
		"qtr":   "quarter",
		"fy":    "fiscal year",
	},
	core.LanguageArabic: {
		"د":   "دكتور",
		"ق.م": "قبل الميلاد",
	},
}

// aggregationPatterns map analytics phrasing to an aggregation kind.
var aggregationPatterns = []struct {
	kind    string
	pattern *regexp.Regexp
}{
	{"count", regexp.MustCompile(`(?i)\b(how many|count|number of)\b|(كم عدد|كم|عدد)`)},
	{"average", regexp.MustCompile(`(?i)\b(average|avg|mean)\b|(متوسط)`)},
	{"sum", regexp.MustCompile(`(?i)\b(sum|total)\b|(مجموع|إجمالي)`)},
	{"trend", regexp.MustCompile(`(?i)\b(trend|over time|growth)\b|(اتجاه|مع الوقت)`)},
}

// exclusionPattern marks filter queries that exclude rather than include.
var exclusionPattern = regexp.MustCompile(`(?i)\b(exclude|without|except|not)\b|(استبعد|باستثناء|بدون)`)

// scopePatterns map context phrasing to a scope. Scope is checked on every
// query, independent of the classified intent.
var scopePatterns = []struct {
	scope   string
	pattern *regexp.Regexp
}{
	{"personal", regexp.MustCompile(`(?i)\b(my|mine)\b|(ملفاتي|مستنداتي|لي)`)},
	{"department", regexp.MustCompile(`(?i)\b(department|team|group)\b|(قسمي|قسم|فريق)`)},
	{"recent", regexp.MustCompile(`(?i)\b(recent(ly)?|latest|last)\b|(الأخيرة|مؤخرا|مؤخراً|آخر)`)},
}

// Entity extraction patterns, applied to the original-case sanitized text.
var (
	documentTypeRe = regexp.MustCompile(`(?i)\b(pdf|word|excel|powerpoint|docx?|xlsx?|pptx?|spreadsheets?|presentations?|reports?|contracts?|invoices?|memos?|emails?)\b|(تقرير|تقارير|عقد|عقود|فاتورة|فواتير|عرض تقديمي|مذكرة)`)
	dateRe         = regexp.MustCompile(`(?i)\b(\d{4}-\d{2}-\d{2}|\d{1,2}/\d{1,2}/\d{2,4}|today|yesterday|last week|last month|this week|this month|this year)\b|(اليوم|أمس|الأسبوع الماضي|الشهر الماضي|هذا العام)`)
	authorRe       = regexp.MustCompile(`(?:\b(?:by|from|authored by|written by)\s+|(?:بواسطة|من إعداد)\s+)([A-Z][a-zA-Z]+(?:\s+[A-Z][a-zA-Z]+)?|[\x{0600}-\x{06FF}]+(?:\s+[\x{0600}-\x{06FF}]+)?)`)
	topicRe        = regexp.MustCompile(`(?i)\babout\s+([a-zA-Z][a-zA-Z ]{1,40}?)(?:\s+(?:by|from|in|created|modified)\b|$)|(?:عن|حول)\s+([\x{0600}-\x{06FF}]+(?:\s+[\x{0600}-\x{06FF}]+){0,3})`)
	quotedRe       = regexp.MustCompile(`"([^"]+)"|'([^']+)'|«([^»]+)»`)
)

// docTypeCanonical maps matched document-type words to canonical type names.
var docTypeCanonical = map[string]string{
	"pdf": "pdf",
	"word": "word", "doc": "word", "docx": "word",
	"excel": "excel", "xls": "excel", "xlsx": "excel", "spreadsheet": "excel", "spreadsheets": "excel",
	"powerpoint": "powerpoint", "ppt": "powerpoint", "pptx": "powerpoint",
	"presentation": "powerpoint", "presentations": "powerpoint", "عرض تقديمي": "powerpoint",
	"report": "report", "reports": "report", "تقرير": "report", "تقارير": "report",
	"contract": "contract", "contracts": "contract", "عقد": "contract", "عقود": "contract",
	"invoice": "invoice", "invoices": "invoice", "فاتورة": "invoice", "فواتير": "invoice",
	"memo": "memo", "memos": "memo", "مذكرة": "memo",
	"email": "email", "emails": "email",
}

// clarificationPrompts are shown when a query is ambiguous, per language.
var clarificationPrompts = map[core.Language][]string{
	core.LanguageEnglish: {
		"Could you be more specific about what you are looking for?",
		"Are you interested in a particular document type or topic?",
	},
	core.LanguageArabic: {
		"هل يمكنك تحديد ما تبحث عنه بشكل أدق؟",
		"هل تبحث عن نوع مستند معين أو موضوع محدد؟",
	},
}

func compileAll(exprs ...string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, len(exprs))
	for i, expr := range exprs {
		out[i] = regexp.MustCompile(expr)
	}
	return out
}
