package llm

// Friendly model names accepted in configuration, per provider. Anything
// not listed passes through unchanged.
var modelAliases = map[string]map[string]string{
	ProviderAnthropic: {
		"claude-sonnet": "claude-sonnet-4-20250514",
		"claude-haiku":  "claude-haiku-4-5-20251001",
	},
	ProviderOpenAI: {
		"gpt-4o":      "gpt-4o",
		"gpt-4o-mini": "gpt-4o-mini",
	},
	ProviderGemini: {
		"gemini-flash": "gemini-2.0-flash",
		"gemini-pro":   "gemini-2.0-pro",
	},
}

// ResolveModel maps a configured model name to the provider's model id.
func ResolveModel(provider, name string) string {
	if id, ok := modelAliases[provider][name]; ok {
		return id
	}
	return name
}
