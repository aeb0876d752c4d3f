package advisor

import (
	"context"
	"fmt"
)

// Config selects which provider serves each advisor task, loaded from
// config/models.yaml.
type Config struct {
	ActiveProvider string                 `yaml:"active_provider"`
	Agents         map[string]AgentConfig `yaml:"agents"`
}

type AgentConfig struct {
	Provider    string `yaml:"provider"` // Optional override
	Model       string `yaml:"model"`    // Optional model override
	Description string `yaml:"description"`
}

type Manager struct {
	config    Config
	providers map[string]Provider
}

func NewManager(config Config) *Manager {
	return &Manager{
		config: config,
		providers: map[string]Provider{
			"openai": &OpenAIProvider{},
			"gemini": &GeminiProvider{},
		},
	}
}

// GetProvider resolves the provider for an advisor task ("summary",
// "affordability_summary"), honoring per-task overrides before the global
// active provider.
func (m *Manager) GetProvider(agentType string) Provider {
	// 1. Check for task-specific override
	if agentConfig, ok := m.config.Agents[agentType]; ok && agentConfig.Provider != "" {
		if p, ok := m.providers[agentConfig.Provider]; ok {
			return p
		}
	}

	// 2. Use global active provider
	if p, ok := m.providers[m.config.ActiveProvider]; ok {
		return p
	}

	// 3. Fallback
	return m.providers["gemini"]
}

// ExecutePrompt handles instruction adaptation before sending to the model.
// A per-task model from the config is passed through options unless the
// caller already chose one.
func (m *Manager) ExecutePrompt(ctx context.Context, agentType string, rawPrompt string, rawSystemPrompt string, options map[string]interface{}) (string, error) {
	provider := m.GetProvider(agentType)

	if agentConfig, ok := m.config.Agents[agentType]; ok && agentConfig.Model != "" {
		if options == nil {
			options = make(map[string]interface{})
		}
		if _, set := options["model"]; !set {
			options["model"] = agentConfig.Model
		}
	}

	adaptedSystemPrompt := provider.AdaptInstructions(rawSystemPrompt)
	return provider.GenerateResponse(ctx, rawPrompt, adaptedSystemPrompt, options)
}

func (m *Manager) SetGlobalProvider(newProvider string) error {
	if _, ok := m.providers[newProvider]; !ok {
		return fmt.Errorf("provider %s not found", newProvider)
	}
	m.config.ActiveProvider = newProvider
	fmt.Printf("Global provider set to: %s\n", newProvider)
	return nil
}

func (m *Manager) GetActiveProvider() string {
	return m.config.ActiveProvider
}

// RegisterProvider makes a provider available under a name. Tests register
// stubs here.
func (m *Manager) RegisterProvider(name string, p Provider) {
	m.providers[name] = p
}
