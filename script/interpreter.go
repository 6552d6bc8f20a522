package script

import (
	"fmt"
	"sync"
)

// Config controls evaluation bounds and compile caching.
type Config struct {
	StepQuota         int
	MaxCachedPrograms int
	Width             int
}

// Engine compiles DSL source into reusable programs.
type Engine struct {
	config  Config
	cache   map[string]*Program
	cacheMu sync.RWMutex
}

// NewEngine constructs an Engine, filling zero config fields with defaults.
func NewEngine(cfg Config) (*Engine, error) {
	if cfg.StepQuota < 0 {
		return nil, fmt.Errorf("step quota must be non-negative, got %d", cfg.StepQuota)
	}
	if cfg.MaxCachedPrograms < 0 {
		return nil, fmt.Errorf("program cache size must be non-negative, got %d", cfg.MaxCachedPrograms)
	}
	if cfg.Width < 0 {
		return nil, fmt.Errorf("width must be non-negative, got %d", cfg.Width)
	}
	if cfg.StepQuota == 0 {
		cfg.StepQuota = DefaultStepQuota
	}
	if cfg.MaxCachedPrograms == 0 {
		cfg.MaxCachedPrograms = 256
	}
	if cfg.Width == 0 {
		cfg.Width = DefaultWidth
	}
	return &Engine{
		config: cfg,
		cache:  make(map[string]*Program),
	}, nil
}

// MustNewEngine is NewEngine for configs known to be valid.
func MustNewEngine(cfg Config) *Engine {
	engine, err := NewEngine(cfg)
	if err != nil {
		panic(err)
	}
	return engine
}

// Config returns the effective configuration.
func (e *Engine) Config() Config {
	return e.config
}

// Compile expands, lexes and parses source. Identical sources share one
// Program.
func (e *Engine) Compile(source string) (*Program, error) {
	e.cacheMu.RLock()
	prog, ok := e.cache[source]
	e.cacheMu.RUnlock()
	if ok {
		return prog, nil
	}

	expanded, err := Expand(source)
	if err != nil {
		return nil, err
	}
	tokens, err := Lex(expanded)
	if err != nil {
		return nil, err
	}
	stmt, err := ParseTokens(tokens, expanded)
	if err != nil {
		return nil, err
	}
	prog = &Program{
		engine:   e,
		source:   source,
		expanded: expanded,
		tokens:   tokens,
		ast:      stmt,
	}

	e.cacheMu.Lock()
	if len(e.cache) >= e.config.MaxCachedPrograms {
		clear(e.cache)
	}
	e.cache[source] = prog
	e.cacheMu.Unlock()
	return prog, nil
}

// CachedPrograms reports how many compiled programs the engine holds.
func (e *Engine) CachedPrograms() int {
	e.cacheMu.RLock()
	defer e.cacheMu.RUnlock()
	return len(e.cache)
}
