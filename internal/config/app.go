package config

import (
	"sync"

	log "github.com/sirupsen/logrus"
)

type AppConfig struct {
	Name    string
	Env     string
	Port    string
	BaseURL string
}

var (
	appConfig *AppConfig
	appOnce   sync.Once
)

func LoadAppConfig() *AppConfig {
	appOnce.Do(func() {
		env := getEnv("APP_ENV", "")
		if env == "" {
			env = "development"
			log.Warnf("APP_ENV not set, defaulting to %s", env)
		}
		appConfig = &AppConfig{
			Name:    getEnv("APP_NAME", "mockmate"),
			Env:     env,
			Port:    getEnv("APP_PORT", ":3000"),
			BaseURL: getEnv("APP_URL", ""),
		}
	})
	return appConfig
}

func (c *AppConfig) IsProduction() bool {
	return c.Env == "production"
}
