// Package mock provides deterministic in-memory collaborator doubles
// for tests and demos.
package mock

import (
	"context"
	"strings"
	"sync"

	"github.com/docuseek/nlq/core"
)

// Searcher is an in-memory DocumentSearcher. It matches documents whose
// title, content or tags contain any query token and counts its calls.
type Searcher struct {
	mu        sync.Mutex
	documents []core.DocumentSearchResult
	calls     int
	err       error
}

// NewSearcher creates a searcher over a fixed document set.
func NewSearcher(docs ...core.DocumentSearchResult) *Searcher {
	return &Searcher{documents: docs}
}

// FailWith makes every subsequent Search call return err.
func (s *Searcher) FailWith(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = err
}

// Calls reports how many times Search was invoked.
func (s *Searcher) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

// Search implements pipeline.DocumentSearcher.
func (s *Searcher) Search(ctx context.Context, query string, max int) ([]core.DocumentSearchResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	tokens := strings.Fields(strings.ToLower(query))
	var out []core.DocumentSearchResult
	for _, doc := range s.documents {
		if matches(doc, tokens) {
			out = append(out, doc)
			if max > 0 && len(out) == max {
				break
			}
		}
	}
	return out, nil
}

func matches(doc core.DocumentSearchResult, tokens []string) bool {
	haystack := strings.ToLower(doc.Title + " " + doc.Content + " " + strings.Join(doc.Tags, " "))
	for _, token := range tokens {
		if strings.Contains(haystack, token) {
			return true
		}
	}
	return false
}

// Speech is a canned SpeechToText double. Each Transcribe call returns
// the next scripted result and counts the call.
type Speech struct {
	mu      sync.Mutex
	results []core.VoiceResult
	next    int
	calls   int
	err     error
}

// NewSpeech creates a speech double replaying the given results. When
// the script runs out the last result repeats.
func NewSpeech(results ...core.VoiceResult) *Speech {
	return &Speech{results: results}
}

// FailWith makes every subsequent Transcribe call return err.
func (s *Speech) FailWith(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = err
}

// Calls reports how many times Transcribe was invoked.
func (s *Speech) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

// Transcribe implements pipeline.SpeechToText.
func (s *Speech) Transcribe(ctx context.Context, audio []byte, lang core.Language) (*core.VoiceResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(s.results) == 0 {
		return &core.VoiceResult{Recognized: "", Confidence: 0}, nil
	}
	result := s.results[s.next]
	if s.next < len(s.results)-1 {
		s.next++
	}
	return &result, nil
}
