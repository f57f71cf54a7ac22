package multilang

import (
	"log/slog"
	"strings"
	"sync"
)

// Processor provides language detection, translation and cross-language
// matching over a mutable bidirectional dictionary.
// All methods are safe for concurrent use.
type Processor struct {
	mu           sync.RWMutex
	enToAr       map[string]string
	arToEn       map[string]string
	translitEnAr map[string]string
	translitArEn map[string]string
	logger       *slog.Logger
}

// Option configures a Processor.
type Option func(*Processor) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(p *Processor) error {
		if logger == nil {
			logger = slog.Default()
		}
		p.logger = logger
		return nil
	}
}

// NewProcessor creates a processor seeded with the built-in dictionary.
func NewProcessor(opts ...Option) (*Processor, error) {
	p := &Processor{
		enToAr:       make(map[string]string, len(seedTranslations)),
		arToEn:       make(map[string]string, len(seedTranslations)),
		translitEnAr: make(map[string]string, len(seedTransliterations)),
		translitArEn: make(map[string]string, len(seedTransliterations)),
		logger:       slog.Default(),
	}
	for en, ar := range seedTranslations {
		p.enToAr[en] = ar
		p.arToEn[ar] = en
	}
	for en, ar := range seedTransliterations {
		p.translitEnAr[en] = ar
		p.translitArEn[ar] = en
	}
	for _, opt := range opts {
		if err := opt(p); err != nil {
			return nil, err
		}
	}
	return p, nil
}

// AddTranslation adds a bidirectional word or phrase mapping.
// English keys are stored lowercased.
func (p *Processor) AddTranslation(english, arabic string) {
	english = strings.ToLower(strings.TrimSpace(english))
	arabic = strings.TrimSpace(arabic)
	if english == "" || arabic == "" {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.enToAr[english] = arabic
	p.arToEn[arabic] = english
}

// AddTransliteration adds a bidirectional phonetic mapping for a proper
// noun or brand name.
func (p *Processor) AddTransliteration(english, arabic string) {
	english = strings.ToLower(strings.TrimSpace(english))
	arabic = strings.TrimSpace(arabic)
	if english == "" || arabic == "" {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.translitEnAr[english] = arabic
	p.translitArEn[arabic] = english
}
