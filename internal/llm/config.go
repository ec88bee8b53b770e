// Package llm provides the model configuration and client abstraction for
// generated study-plan content.
package llm

// ModelTier selects the capability level for a generation call.
type ModelTier string

const (
	// TierLite is for cheap structured output: resource lists, link groups.
	TierLite ModelTier = "lite"
	// TierStandard is for plan-structure generation and long-form text.
	TierStandard ModelTier = "standard"
)

// Config holds the per-tier model names.
type Config struct {
	Models map[ModelTier]string
}

// DefaultConfig returns the default Gemini model mapping.
func DefaultConfig() *Config {
	return &Config{
		Models: map[ModelTier]string{
			TierLite:     "gemini-2.5-flash-lite",
			TierStandard: "gemini-2.5-flash",
		},
	}
}

// GetModel returns the model name for a tier, falling back to the standard
// tier when the requested one is not configured.
func (c *Config) GetModel(tier ModelTier) string {
	if model, ok := c.Models[tier]; ok {
		return model
	}
	return c.Models[TierStandard]
}
