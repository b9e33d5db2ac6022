package codex

import (
	"bytes"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	apperrors "github.com/swerner/grepo2/internal/errors"
)

const (
	openRouterBaseURL = "https://openrouter.ai/api/v1"
	tokenEnvVar       = "OPENROUTER_API_KEY"
	baseURLEnvVar     = "OPENAI_API_BASE"
)

// EnsureOpenRouterProfile writes the OpenRouter provider profile into
// <homeDir>/.codex/config.toml so the codex CLI routes its completions
// through OpenRouter. Settings outside [model_providers.openrouter] are
// preserved.
func EnsureOpenRouterProfile(homeDir string) error {
	dir := filepath.Join(homeDir, ".codex")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return apperrors.ErrCodexConfig.WithError(err)
	}

	path := filepath.Join(dir, "config.toml")
	cfg := map[string]any{}
	if _, err := toml.DecodeFile(path, &cfg); err != nil && !os.IsNotExist(err) {
		return apperrors.ErrCodexConfig.WithError(err).WithContext("path", path)
	}

	providers, _ := cfg["model_providers"].(map[string]any)
	if providers == nil {
		providers = map[string]any{}
	}
	providers["openrouter"] = map[string]any{
		"name":     "OpenRouter",
		"base_url": openRouterBaseURL,
		"env_key":  tokenEnvVar,
	}
	cfg["model_providers"] = providers

	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return apperrors.ErrCodexConfig.WithError(err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return apperrors.ErrCodexConfig.WithError(err).WithContext("path", path)
	}
	return nil
}

// openRouterEnv extends the current environment with the variables the
// codex process needs to reach OpenRouter.
func openRouterEnv(token string) []string {
	return append(os.Environ(),
		tokenEnvVar+"="+token,
		baseURLEnvVar+"="+openRouterBaseURL,
	)
}
