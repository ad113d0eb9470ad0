package config

import (
	"os"
	"time"
)

type JwtConfig struct {
	Secret   string
	TokenTTL time.Duration
}

func NewJwtConfig() *JwtConfig {
	return &JwtConfig{
		Secret:   os.Getenv("JWT_SECRET"),
		TokenTTL: time.Duration(getIntEnv("JWT_TTL_HOURS", 24)) * time.Hour,
	}
}
