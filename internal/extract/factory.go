package extract

import (
	"fmt"

	"telextract/internal/config"
	"telextract/internal/port"
)

// ProviderFactory is a function that creates a FieldExtractor from an AI config.
type ProviderFactory func(cfg *config.AIConfig) (port.FieldExtractor, error)

// registry of AI provider factories, populated by init() in each provider
// package or explicitly via RegisterProvider.
var providers = map[string]ProviderFactory{}

// RegisterProvider registers an AI provider factory by name.
func RegisterProvider(name string, factory ProviderFactory) {
	providers[name] = factory
}

// NewFieldExtractor creates a FieldExtractor from an AI config using the
// registered factory.
func NewFieldExtractor(cfg *config.AIConfig) (port.FieldExtractor, error) {
	factory, ok := providers[cfg.Provider]
	if !ok {
		return nil, fmt.Errorf("unknown AI provider: %s", cfg.Provider)
	}
	return factory(cfg)
}
