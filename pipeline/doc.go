// Package pipeline orchestrates the query understanding components:
// intent extraction always runs first, then expansion, multilingual
// processing, template matching and refinement, each behind a
// configuration toggle. The orchestrator owns the result cache, the
// work queue and the fallback behavior when intent extraction fails.
package pipeline
