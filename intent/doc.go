// Package intent classifies free-text queries and extracts typed entities.
//
// The Extractor type sanitizes raw input, classifies the query's intent by
// testing ordered, language-specific pattern groups, extracts an action verb
// and intent-specific parameters, and pulls typed entities (document types,
// dates, authors, topics) out of the original-case text.
//
// Classification is deterministic and pattern-driven; there is no learned
// model. Pattern tables are data-driven and keyed by language so new
// languages or categories can be added without touching the classifier.
package intent
