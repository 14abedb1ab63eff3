package llm

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"

	"golang.org/x/sync/singleflight"
)

// SafeDefaultModel is used when the configured default is not a known identifier.
const SafeDefaultModel = "gpt-4o-mini"

// ErrUnknownModel is returned when a caller asks for an identifier that is not
// in the registry.
var ErrUnknownModel = errors.New("unknown model identifier")

// Builder constructs a provider handle. Builders must not perform network I/O.
type Builder func() Provider

// Registration binds an abstract model identifier to a provider constructor.
type Registration struct {
	ID         string
	Provider   string
	Configured bool
	Build      Builder
}

// ProvidersConfig carries the credentials and endpoints of every provider family.
// Any of them may be empty; the affected handles fail on first use.
type ProvidersConfig struct {
	OpenAIAPIKey    string
	OpenAIBaseURL   string
	AzureAPIKey     string
	AzureEndpoint   string
	AzureDeployment string
	AWSRegion       string
	OllamaURL       string
}

// DefaultRegistrations is the fixed set of identifiers this service supports.
func DefaultRegistrations(cfg ProvidersConfig) []Registration {
	openAIReady := cfg.OpenAIAPIKey != ""
	azureReady := cfg.AzureAPIKey != "" && cfg.AzureEndpoint != "" && cfg.AzureDeployment != ""
	bedrockReady := cfg.AWSRegion != ""
	ollamaReady := cfg.OllamaURL != ""

	return []Registration{
		{ID: "gpt-4o-mini", Provider: "openai", Configured: openAIReady, Build: func() Provider {
			return NewOpenAIProvider(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL, "gpt-4o-mini")
		}},
		{ID: "gpt-4o", Provider: "openai", Configured: openAIReady, Build: func() Provider {
			return NewOpenAIProvider(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL, "gpt-4o")
		}},
		{ID: "azure-gpt-4o", Provider: "azure", Configured: azureReady, Build: func() Provider {
			return NewAzureOpenAIProvider(cfg.AzureAPIKey, cfg.AzureEndpoint, cfg.AzureDeployment)
		}},
		{ID: "claude-3-5-sonnet", Provider: "bedrock", Configured: bedrockReady, Build: func() Provider {
			return NewBedrockProvider(cfg.AWSRegion, "anthropic.claude-3-5-sonnet-20240620-v1:0")
		}},
		{ID: "claude-3-haiku", Provider: "bedrock", Configured: bedrockReady, Build: func() Provider {
			return NewBedrockProvider(cfg.AWSRegion, "anthropic.claude-3-haiku-20240307-v1:0")
		}},
		{ID: "llama3", Provider: "ollama", Configured: ollamaReady, Build: func() Provider {
			return NewOllamaProvider(cfg.OllamaURL, "llama3")
		}},
	}
}

// ModelInfo describes one registry entry for listing.
type ModelInfo struct {
	ID         string `json:"id"`
	Provider   string `json:"provider"`
	Configured bool   `json:"configured"`
	Default    bool   `json:"default"`
}

// Registry maps model identifiers to lazily constructed provider handles.
// Handles are cached for the lifetime of the registry.
type Registry struct {
	defaultID     string
	registrations map[string]Registration

	mu      sync.RWMutex
	handles map[string]Provider
	group   singleflight.Group
}

// NewRegistry builds a registry over regs. If defaultID is not registered the
// registry falls back to SafeDefaultModel.
func NewRegistry(defaultID string, regs []Registration) *Registry {
	r := &Registry{
		registrations: make(map[string]Registration, len(regs)),
		handles:       make(map[string]Provider),
	}
	for _, reg := range regs {
		r.registrations[reg.ID] = reg
	}
	defaultID = strings.TrimSpace(defaultID)
	if _, ok := r.registrations[defaultID]; !ok {
		slog.Warn("Configured default model is not a known identifier, using safe default",
			"configured", defaultID, "fallback", SafeDefaultModel)
		defaultID = SafeDefaultModel
	}
	r.defaultID = defaultID
	return r
}

// DefaultID returns the identifier used when callers do not ask for one.
func (r *Registry) DefaultID() string { return r.defaultID }

// Resolve returns the handle for modelID, or for the default when modelID is empty.
func (r *Registry) Resolve(modelID string) (Provider, error) {
	id := strings.TrimSpace(modelID)
	if id == "" {
		id = r.defaultID
	}

	r.mu.RLock()
	handle, ok := r.handles[id]
	r.mu.RUnlock()
	if ok {
		return handle, nil
	}

	reg, ok := r.registrations[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownModel, id)
	}

	v, err, _ := r.group.Do(id, func() (any, error) {
		r.mu.RLock()
		existing, ok := r.handles[id]
		r.mu.RUnlock()
		if ok {
			return existing, nil
		}
		if reg.Build == nil {
			return nil, fmt.Errorf("model %q has no builder", id)
		}
		built := reg.Build()
		r.mu.Lock()
		r.handles[id] = built
		r.mu.Unlock()
		slog.Debug("Constructed model handle", "model", id, "provider", reg.Provider)
		return built, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(Provider), nil
}

// Models lists every registered identifier, sorted.
func (r *Registry) Models() []ModelInfo {
	out := make([]ModelInfo, 0, len(r.registrations))
	for _, reg := range r.registrations {
		out = append(out, ModelInfo{
			ID:         reg.ID,
			Provider:   reg.Provider,
			Configured: reg.Configured,
			Default:    reg.ID == r.defaultID,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
