package llm

import "testing"

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"mock needs no key", Config{Provider: "mock"}, false},
		{"gemini without key", Config{Provider: "gemini"}, true},
		{"gemini with key", Config{Provider: "gemini", Gemini: GeminiConfig{APIKey: "k"}}, false},
		{"openai without key", Config{Provider: "openai"}, true},
		{"anthropic with key", Config{Provider: "anthropic", Anthropic: AnthropicConfig{APIKey: "k"}}, false},
		{"unknown provider", Config{Provider: "llama-at-home"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestConfigFromEnv(t *testing.T) {
	t.Setenv("STUDYPAL_LLM_PROVIDER", "openai")
	t.Setenv("STUDYPAL_OPENAI_API_KEY", "sk-test")
	t.Setenv("STUDYPAL_OPENAI_MODEL", "gpt-4o")

	cfg := ConfigFromEnv()
	if cfg.Provider != "openai" {
		t.Errorf("provider = %q", cfg.Provider)
	}
	if cfg.OpenAI.APIKey != "sk-test" {
		t.Errorf("api key = %q", cfg.OpenAI.APIKey)
	}
	if cfg.OpenAI.Model != "gpt-4o" {
		t.Errorf("model = %q", cfg.OpenAI.Model)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("validate: %v", err)
	}
}

func TestConfigFromEnvFallsBackToStandardKeys(t *testing.T) {
	t.Setenv("STUDYPAL_LLM_PROVIDER", "gemini")
	t.Setenv("STUDYPAL_GEMINI_API_KEY", "")
	t.Setenv("GEMINI_API_KEY", "standard-key")

	cfg := ConfigFromEnv()
	if cfg.Gemini.APIKey != "standard-key" {
		t.Errorf("api key = %q, want fallback to GEMINI_API_KEY", cfg.Gemini.APIKey)
	}
}

func TestDiscoverConfig(t *testing.T) {
	for _, k := range []string{"GEMINI_API_KEY", "OPENAI_API_KEY", "ANTHROPIC_API_KEY", "OPENROUTER_API_KEY"} {
		t.Setenv(k, "")
	}

	if _, ok := DiscoverConfig(); ok {
		t.Fatal("expected no discovery with all keys unset")
	}

	t.Setenv("OPENAI_API_KEY", "sk-found")
	cfg, ok := DiscoverConfig()
	if !ok {
		t.Fatal("expected discovery")
	}
	if cfg.Provider != "openai" || cfg.OpenAI.APIKey != "sk-found" {
		t.Errorf("discovered = %q/%q", cfg.Provider, cfg.OpenAI.APIKey)
	}
}
