package inertia

import (
	"errors"
	"fmt"

	"github.com/joeshaw/envdecode"
)

// Config holds the settings that are usually supplied by the environment.
type Config struct {
	// Version is the asset version. ENV: INERTIA_VERSION
	Version string `env:"INERTIA_VERSION"`
	// SSREnabled turns on server-side rendering. ENV: INERTIA_SSR_ENABLED
	SSREnabled bool `env:"INERTIA_SSR_ENABLED,default=false"`
	// SSRURL is the SSR server's render endpoint. ENV: INERTIA_SSR_URL
	SSRURL string `env:"INERTIA_SSR_URL,default=http://127.0.0.1:13714/render"`
	// EncryptHistory encrypts history state by default. ENV: INERTIA_ENCRYPT_HISTORY
	EncryptHistory bool `env:"INERTIA_ENCRYPT_HISTORY,default=false"`
	// FlashKey enables the cookie flash store when set. ENV: INERTIA_FLASH_KEY
	FlashKey string `env:"INERTIA_FLASH_KEY"`
}

// ConfigFromEnv decodes Config from environment variables.
func ConfigFromEnv() (Config, error) {
	var cfg Config
	if err := envdecode.Decode(&cfg); err != nil && !errors.Is(err, envdecode.ErrNoTargetFieldsAreSet) {
		return Config{}, fmt.Errorf("inertia: decode config: %w", err)
	}
	return cfg, nil
}
