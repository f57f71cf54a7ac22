package core

import "time"

// Language identifies a supported query or document language.
type Language string

const (
	// LanguageEnglish is Latin-script English text.
	LanguageEnglish Language = "en"
	// LanguageArabic is Arabic-script text.
	LanguageArabic Language = "ar"
	// LanguageMixed is text containing both English and Arabic segments.
	LanguageMixed Language = "mixed"
)

// IntentType classifies the purpose of a query.
type IntentType string

const (
	IntentSearch    IntentType = "search"
	IntentFilter    IntentType = "filter"
	IntentAnalytics IntentType = "analytics"
	IntentAction    IntentType = "action"
	IntentContext   IntentType = "context"
)

// EntityType categorizes a span extracted from a query.
type EntityType string

const (
	EntityDocumentType EntityType = "document_type"
	EntityDate         EntityType = "date"
	EntityAuthor       EntityType = "author"
	EntityTopic        EntityType = "topic"
)

// Entity is a typed span extracted from a query, with a normalized form.
type Entity struct {
	Type       EntityType
	Value      string
	Normalized string
}

// QueryIntent is the classified purpose of a query together with the
// entities and parameters extracted from it.
type QueryIntent struct {
	Type       IntentType
	Action     string
	Confidence float64 // in [0,1]
	Entities   []Entity
	Parameters map[string]string
}

// ExpansionType categorizes an expansion term.
type ExpansionType string

const (
	ExpansionSynonym   ExpansionType = "synonym"
	ExpansionRelated   ExpansionType = "related"
	ExpansionAcronym   ExpansionType = "acronym"
	ExpansionSemantic  ExpansionType = "semantic"
	ExpansionTechnical ExpansionType = "technical"
)

// ExpansionSource identifies where an expansion term came from.
type ExpansionSource string

const (
	SourceCorpus     ExpansionSource = "corpus"
	SourceDictionary ExpansionSource = "dictionary"
	SourceContext    ExpansionSource = "context"
	SourceUser       ExpansionSource = "user"
)

// ExpansionTerm is a related or alternate word suggested to broaden search.
type ExpansionTerm struct {
	Term       string
	Type       ExpansionType
	Confidence float64 // in [0,1]
	Source     ExpansionSource
}

// QueryVariation is a rewritten form of a query with a relevance score.
type QueryVariation struct {
	Query       string
	Score       float64 // in [0,1]
	Explanation string
}

// SuggestedFilter recommends a structured filter derived from query content.
type SuggestedFilter struct {
	Field     string
	Value     string
	Relevance float64 // in [0,1]
}

// ExpandedQuery is the result of expanding a query with synonyms, acronyms
// and corpus-derived terms.
type ExpandedQuery struct {
	OriginalQuery    string
	ExpandedTerms    []ExpansionTerm
	RankedVariations []QueryVariation // sorted by Score descending
	SuggestedFilters []SuggestedFilter
}

// OrganizationalContext holds a department or team's vocabulary and
// typical queries. Mutated only via explicit add operations.
type OrganizationalContext struct {
	ID            string
	Name          string
	Type          string
	Terminology   map[string][]string // term -> synonyms
	CommonQueries []string
	DocumentTypes []string
}

// Bounds for user activity tracking.
const (
	MaxRecentQueries   = 10
	MaxRecentDocuments = 10
	MaxRecentTopics    = 10
	MaxSearchHistory   = 20
)

// RecentActivity tracks a user's latest interactions, most recent first.
// Each list is capped at its Max bound.
type RecentActivity struct {
	Queries   []string
	Documents []string
	Topics    []string
}

// Preferences holds a user's search preferences.
// SearchHistory is deduplicated and capped at MaxSearchHistory.
type Preferences struct {
	Language      Language
	DocumentTypes []string
	SearchHistory []string
}

// UserContext describes the current user for personalization.
type UserContext struct {
	ID             string
	Role           string
	Department     string
	Permissions    []string
	RecentActivity RecentActivity
	Preferences    Preferences
}

// DocumentAccess records how often a document has been accessed.
type DocumentAccess struct {
	ID          string
	Title       string
	AccessCount int
}

// DocumentCollectionContext is an immutable snapshot of collection-wide
// statistics, replaced wholesale on update.
type DocumentCollectionContext struct {
	TotalDocuments        int
	DocumentTypes         map[string]int
	Authors               []string
	Topics                []string
	AverageDocumentAge    float64          // days
	MostAccessedDocuments []DocumentAccess // top 10 by access count
	CommonTerms           map[string]int   // term -> frequency
	LanguageDistribution  map[Language]int
}

// LanguageSegment is a contiguous run of text in a single language.
type LanguageSegment struct {
	Language Language
	Text     string
}

// LanguageDetectionResult reports the detected language of a text.
// Language is LanguageMixed iff Segments contains at least one English
// and one Arabic segment.
type LanguageDetectionResult struct {
	Language   Language
	Confidence float64 // in [0,1]
	Segments   []LanguageSegment
}

// TranslationType classifies how a query term matched a document term.
type TranslationType string

const (
	TranslationDirect         TranslationType = "direct"
	TranslationTranslated     TranslationType = "translated"
	TranslationTransliterated TranslationType = "transliterated"
)

// MatchedTerm links a query term to the document term it matched.
type MatchedTerm struct {
	QueryTerm    string
	DocumentTerm string
	Type         TranslationType
}

// CrossLanguageMatch is a document in another language linked to the
// query via translation.
type CrossLanguageMatch struct {
	Document         DocumentSearchResult
	DocumentLanguage Language
	MatchScore       float64 // in (0,1]
	TranslatedQuery  string
	MatchedTerms     []MatchedTerm
}

// TemplateParameter describes a single placeholder in a question template.
type TemplateParameter struct {
	Name     string
	Type     string
	Required bool
	Options  []string
}

// QuestionTemplate is a parameterized query template with placeholders
// written as {name}.
type QuestionTemplate struct {
	ID          string
	Category    string
	Title       string
	Description string
	Template    string
	Parameters  []TemplateParameter
	Language    Language
	Examples    []string
	Tags        []string
	Priority    int
}

// RefinementType classifies a refinement suggestion.
type RefinementType string

const (
	RefinementFilter        RefinementType = "filter"
	RefinementExpansion     RefinementType = "expansion"
	RefinementNarrowing     RefinementType = "narrowing"
	RefinementRephrase      RefinementType = "rephrase"
	RefinementClarification RefinementType = "clarification"
)

// RefinementSuggestion proposes a change to a query.
// Value carries the material applied by the rewrite rule for Type.
type RefinementSuggestion struct {
	Type       RefinementType
	Suggestion string
	Value      string
	Confidence float64 // in [0,1]
}

// FollowUpQuestion is a question posed back to the user, with priority 0-9.
type FollowUpQuestion struct {
	Question string
	Type     string
	Priority int
}

// QualityScores groups the heuristic quality dimensions of a query.
// All fields are in [0,1].
type QualityScores struct {
	Specificity  float64
	Clarity      float64
	Completeness float64
}

// ResultScores groups the heuristic quality dimensions of search results.
// All fields are in [0,1].
type ResultScores struct {
	Relevance float64
	Coverage  float64
	Diversity float64
}

// RefinementAnalysis is the per-query quality assessment driving
// refinement suggestions.
type RefinementAnalysis struct {
	QueryQuality  QualityScores
	ResultQuality ResultScores
}

// SessionQuery is one query within a session's history.
// Satisfaction is nil until the user reports it.
type SessionQuery struct {
	Text         string
	Intent       *QueryIntent
	Timestamp    time.Time
	Results      []DocumentSearchResult
	ResultCount  int
	Satisfaction *float64
}

// SessionMetrics aggregates per-session statistics.
// SuccessfulSearches counts queries with satisfaction >= 0.7.
type SessionMetrics struct {
	TotalQueries        int
	RefinementCount     int
	AverageSatisfaction float64
	SuccessfulSearches  int
}

// QuerySession holds a user's query history for iterative refinement.
// Refinements and FollowUpQuestions are fully replaced on each new query.
type QuerySession struct {
	ID                string
	Queries           []SessionQuery
	CurrentQuery      string
	Refinements       []RefinementSuggestion
	FollowUpQuestions []FollowUpQuestion
	UserContext       *UserContext
	Metrics           SessionMetrics
	LastActive        time.Time
}

// DocumentSearchResult is a document returned by the search backend.
type DocumentSearchResult struct {
	ID          string
	Title       string
	Content     string
	Type        string
	Author      string
	CreatedAt   time.Time
	Language    Language
	Tags        []string
	AccessCount int
	Score       float64
}

// VoiceResult is the payload returned by the speech-to-text collaborator.
type VoiceResult struct {
	Recognized  string
	Confidence  float64
	Parameters  map[string]string
	Suggestions []string
}

// MultilingualResult aggregates the multilingual stage's contribution to
// a processing result.
type MultilingualResult struct {
	Detection             LanguageDetectionResult
	TranslatedQuery       string
	TranslationConfidence float64
	CrossLanguageMatches  []CrossLanguageMatch
	RequiresRTL           bool
}

// TemplateMatch is a template scored against a query.
type TemplateMatch struct {
	Template       QuestionTemplate
	Score          float64 // in [0,1]
	MatchedText    []string
	MatchedTags    []string
	GeneratedQuery string
}

// ResultMetadata describes how a processing result was produced.
type ResultMetadata struct {
	UsedComponents []string
	CacheHit       bool
	ErrorOccurred  bool
}

// ProcessingResult is the full output of the query understanding pipeline
// for a single query.
type ProcessingResult struct {
	OriginalQuery         string
	ProcessedQuery        string
	Intent                *QueryIntent
	ExpandedQuery         *ExpandedQuery
	MultilingualResult    *MultilingualResult
	TemplateMatch         *TemplateMatch
	RefinementSuggestions []RefinementSuggestion
	SearchResults         []DocumentSearchResult
	Confidence            float64 // in [0,1]
	ProcessingTime        time.Duration
	Metadata              ResultMetadata
}
