package config

import (
	"sync"
)

type AuthConfig struct {
	JWTSecret     string
	SessionCookie string
	SignInURL     string
}

var (
	authConfig *AuthConfig
	authOnce   sync.Once
)

func LoadAuthConfig() *AuthConfig {
	authOnce.Do(func() {
		authConfig = &AuthConfig{
			JWTSecret:     getEnv("AUTH_JWT_SECRET", ""),
			SessionCookie: getEnv("AUTH_SESSION_COOKIE", "session"),
			SignInURL:     getEnv("AUTH_SIGN_IN_URL", "/sign-in"),
		}
	})
	return authConfig
}
