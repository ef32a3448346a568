package config

import (
	"fmt"
	"os"
)

type AuthConfig struct {
	JwksUrl string
}

func GetAuthConfig() (*AuthConfig, error) {
	jwksUrl := os.Getenv("JWKS_URL")
	if jwksUrl == "" {
		return nil, fmt.Errorf("JWKS_URL environment variable not set")
	}

	return &AuthConfig{
		JwksUrl: jwksUrl,
	}, nil
}
