package config

import (
	"sync"
)

const (
	// DefaultProvider is the provider name recorded on spans when no
	// override is given
	DefaultProvider = "anthropic"

	// DefaultMaxFieldLength is the truncation limit for serialized
	// span attribute values
	DefaultMaxFieldLength = 1000
)

// RedactionHook receives the attributes about to be set on a span and
// returns the attributes that should actually be sent. It may remove or
// alter entries; it is always given a copy of the original map.
type RedactionHook func(attributes map[string]interface{}) map[string]interface{}

// Config contains the process-wide instrumentation settings
type Config struct {
	// Provider is the default gen_ai.system value for spans
	Provider string

	// MaxFieldLength is the maximum length of a serialized attribute
	// value before truncation
	MaxFieldLength int

	// Debug enables logging of tracing backend failures
	Debug bool

	// BeforeSendAttributes is an optional hook applied to span
	// attributes before they are sent
	BeforeSendAttributes RedactionHook

	// InstrumentOpenAI enables tracing inside the OpenAI client adapter
	InstrumentOpenAI bool

	// InstrumentAnthropic enables tracing inside the Anthropic client adapter
	InstrumentAnthropic bool
}

// NewConfig creates a Config with default values
func NewConfig() *Config {
	return &Config{
		Provider:       DefaultProvider,
		MaxFieldLength: DefaultMaxFieldLength,
	}
}

// Store holds the current Config and guards access to it. A single
// mutex covers both lazy creation and replacement; reads return a value
// snapshot so no lock is held while spans are built.
type Store struct {
	mu  sync.Mutex
	cfg *Config
}

// NewStore creates a store with no configuration yet; defaults are
// created on first access
func NewStore() *Store {
	return &Store{}
}

// Get returns a snapshot of the current configuration, creating the
// defaults if none has been set
func (s *Store) Get() Config {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cfg == nil {
		s.cfg = NewConfig()
	}
	return *s.cfg
}

// Replace swaps in a new configuration wholesale
func (s *Store) Replace(cfg *Config) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cfg = cfg
}

// Configure mutates the current configuration under the store lock
func (s *Store) Configure(fn func(*Config)) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cfg == nil {
		s.cfg = NewConfig()
	}
	fn(s.cfg)
}

// Reset discards the current configuration so the next access recreates
// the defaults
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cfg = nil
}

// defaultStore is the process-wide store used when none is passed explicitly
var defaultStore = NewStore()

// Default returns the process-wide store
func Default() *Store {
	return defaultStore
}

// Get returns a snapshot of the process-wide configuration
func Get() Config {
	return defaultStore.Get()
}

// Configure mutates the process-wide configuration
func Configure(fn func(*Config)) {
	defaultStore.Configure(fn)
}

// Reset restores the process-wide configuration to defaults
func Reset() {
	defaultStore.Reset()
}
