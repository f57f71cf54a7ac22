// Package expand broadens queries with synonyms, acronyms and
// corpus-derived related terms.
//
// The Expander type combines a seeded synonym/acronym dictionary with
// statistics gathered from the document corpus: term frequencies,
// adjacent-term co-occurrence clusters, lexically detected technical
// terms, and acronym definitions of the form "Machine Learning (ML)".
// AnalyzeCorpus replaces the corpus snapshot wholesale; expansion reads
// whichever snapshot is current.
package expand
