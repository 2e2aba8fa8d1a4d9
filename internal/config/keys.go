package config

import "os"

// APIKeySource represents where an API key comes from.
type APIKeySource string

const (
	KeySourceEnv    APIKeySource = "env"
	KeySourceConfig APIKeySource = "config"
	KeySourceNone   APIKeySource = "none"
)

// KeyStatus represents the status of an API key.
type KeyStatus struct {
	Name   string       `json:"name"`
	EnvVar string       `json:"env_var"`
	Source APIKeySource `json:"source"`
	IsSet  bool         `json:"is_set"`
	Masked string       `json:"masked,omitempty"` // e.g., "abc...xyz"
}

// CheckAPIKeys returns the status of the optional upstream keys.
func CheckAPIKeys(cfg *Config) []KeyStatus {
	return []KeyStatus{
		checkKey("Twelve Data API Key", cfg.Providers.TwelveData.APIKey, EnvTwelveDataKey),
		checkKey("Gemini API Key", cfg.Assistant.GeminiAPIKey, EnvGeminiKey),
	}
}

func checkKey(name, value, envVar string) KeyStatus {
	status := KeyStatus{Name: name, EnvVar: envVar, IsSet: value != "", Source: KeySourceNone}
	if value == "" {
		return status
	}
	if os.Getenv(envVar) != "" {
		status.Source = KeySourceEnv
	} else {
		status.Source = KeySourceConfig
	}
	status.Masked = maskKey(value)
	return status
}

// maskKey shows only the first and last 3 characters of a key.
func maskKey(key string) string {
	if len(key) <= 8 {
		return "***"
	}
	return key[:3] + "..." + key[len(key)-3:]
}
