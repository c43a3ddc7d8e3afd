package emostream

import (
	"errors"
	"fmt"
	"os"
)

const streamPath = "/v0/stream/models"

var baseURLByEnvironment = map[string]string{
	"prod": "wss://api.hume.ai",
	"dev":  "wss://api.dev.hume.ai",
}

type Config struct {
	APIKey      string
	Environment string
	BaseURL     string
}

func FromEnv() (Config, error) {
	apiKey := os.Getenv("EMOTION_API_KEY")
	if apiKey == "" {
		return Config{}, errors.New("EMOTION_API_KEY is required")
	}

	environment := os.Getenv("EMOTION_API_ENV")
	if environment == "" {
		environment = "prod"
	}

	cfg := Config{
		APIKey:      apiKey,
		Environment: environment,
		BaseURL:     os.Getenv("EMOTION_API_URL"),
	}

	return cfg, nil
}

// StreamURL formats the connection URL from the base endpoint and credential.
func (c Config) StreamURL() string {
	base := c.BaseURL
	if base == "" {
		var ok bool
		base, ok = baseURLByEnvironment[c.Environment]
		if !ok {
			base = baseURLByEnvironment["prod"]
		}
	}

	return fmt.Sprintf("%s%s?apikey=%s", base, streamPath, c.APIKey)
}
