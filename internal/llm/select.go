package llm

import "fmt"

// Credentials records which providers are configured.
type Credentials struct {
	Gemini bool
	OpenAI bool
}

// Selection strategy: explicit environment preference wins when its
// credentials exist; otherwise a complexity hint prefers the
// higher-capability provider; otherwise the default. Pure function so the
// policy is testable without environment mutation.
const (
	defaultProvider        = ProviderGemini
	higherCapabilityChoice = ProviderOpenAI
)

func (c Credentials) has(name string) bool {
	switch name {
	case ProviderGemini:
		return c.Gemini
	case ProviderOpenAI:
		return c.OpenAI
	default:
		return false
	}
}

// Select picks a provider name, or fails when no provider is configured.
func Select(preferred string, creds Credentials, complexityHint bool) (string, error) {
	if preferred != "" && creds.has(preferred) {
		return preferred, nil
	}
	if complexityHint && creds.has(higherCapabilityChoice) {
		return higherCapabilityChoice, nil
	}
	if creds.has(defaultProvider) {
		return defaultProvider, nil
	}
	if creds.has(higherCapabilityChoice) {
		return higherCapabilityChoice, nil
	}
	return "", fmt.Errorf("no provider credentials configured")
}

// Registry holds the constructed providers by name.
type Registry struct {
	providers map[string]Provider
}

// NewRegistry builds a registry from the available providers.
func NewRegistry(providers ...Provider) *Registry {
	r := &Registry{providers: make(map[string]Provider, len(providers))}
	for _, p := range providers {
		r.providers[p.Name()] = p
	}
	return r
}

// Credentials reports which providers the registry actually holds.
func (r *Registry) Credentials() Credentials {
	_, gemini := r.providers[ProviderGemini]
	_, oai := r.providers[ProviderOpenAI]
	return Credentials{Gemini: gemini, OpenAI: oai}
}

// Get returns the named provider.
func (r *Registry) Get(name string) (Provider, error) {
	p, ok := r.providers[name]
	if !ok {
		return nil, fmt.Errorf("provider %q not configured", name)
	}
	return p, nil
}
