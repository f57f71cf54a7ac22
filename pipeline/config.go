package pipeline

import (
	"fmt"
	"time"

	"github.com/docuseek/nlq/core"
)

// PerformanceMode selects how the orchestrator schedules work.
type PerformanceMode string

const (
	// PerformanceBasic queues every request uniformly.
	PerformanceBasic PerformanceMode = "basic"
	// PerformanceAggressive pre-warms components, chunks batches and
	// routes high-priority requests around the queue.
	PerformanceAggressive PerformanceMode = "aggressive"
)

// Config is the flat orchestrator configuration.
type Config struct {
	EnableQueryExpansion      bool
	EnableMultilingualSupport bool
	EnableTemplateSystem      bool
	EnableQueryRefinement     bool
	EnableVoiceInput          bool
	CacheEnabled              bool
	CacheTTL                  time.Duration
	MaxCacheSize              int
	PerformanceOptimization   PerformanceMode
	DebugMode                 bool
}

// DefaultConfig enables every component with a five minute cache.
func DefaultConfig() Config {
	return Config{
		EnableQueryExpansion:      true,
		EnableMultilingualSupport: true,
		EnableTemplateSystem:      true,
		EnableQueryRefinement:     true,
		EnableVoiceInput:          true,
		CacheEnabled:              true,
		CacheTTL:                  5 * time.Minute,
		MaxCacheSize:              100,
		PerformanceOptimization:   PerformanceBasic,
	}
}

func (c Config) validate() error {
	switch c.PerformanceOptimization {
	case PerformanceBasic, PerformanceAggressive:
	default:
		return fmt.Errorf("%w: unknown performance mode %q", core.ErrValidation, c.PerformanceOptimization)
	}
	if c.CacheTTL < 0 {
		return fmt.Errorf("%w: negative cache TTL", core.ErrValidation)
	}
	if c.MaxCacheSize < 0 {
		return fmt.Errorf("%w: negative cache size", core.ErrValidation)
	}
	return nil
}

// ConfigPatch is a partial configuration update. Nil fields keep their
// current value.
type ConfigPatch struct {
	EnableQueryExpansion      *bool
	EnableMultilingualSupport *bool
	EnableTemplateSystem      *bool
	EnableQueryRefinement     *bool
	EnableVoiceInput          *bool
	CacheEnabled              *bool
	CacheTTL                  *time.Duration
	MaxCacheSize              *int
	PerformanceOptimization   *PerformanceMode
	DebugMode                 *bool
}

func (p ConfigPatch) apply(c Config) Config {
	if p.EnableQueryExpansion != nil {
		c.EnableQueryExpansion = *p.EnableQueryExpansion
	}
	if p.EnableMultilingualSupport != nil {
		c.EnableMultilingualSupport = *p.EnableMultilingualSupport
	}
	if p.EnableTemplateSystem != nil {
		c.EnableTemplateSystem = *p.EnableTemplateSystem
	}
	if p.EnableQueryRefinement != nil {
		c.EnableQueryRefinement = *p.EnableQueryRefinement
	}
	if p.EnableVoiceInput != nil {
		c.EnableVoiceInput = *p.EnableVoiceInput
	}
	if p.CacheEnabled != nil {
		c.CacheEnabled = *p.CacheEnabled
	}
	if p.CacheTTL != nil {
		c.CacheTTL = *p.CacheTTL
	}
	if p.MaxCacheSize != nil {
		c.MaxCacheSize = *p.MaxCacheSize
	}
	if p.PerformanceOptimization != nil {
		c.PerformanceOptimization = *p.PerformanceOptimization
	}
	if p.DebugMode != nil {
		c.DebugMode = *p.DebugMode
	}
	return c
}
