// Package refine implements the session-scoped query refinement engine.
// Each session keeps an ordered query history; adding a query recomputes
// the quality analysis and replaces the session's refinement suggestions
// and follow-up questions. Sessions are reclaimed only by an explicit
// age-based sweep.
package refine
