package config

import "os"

type AppConfig struct {
	DebugMode      bool
	ServerPort     int
	SandboxConfig  *SandboxConfig
	RedisConfig    *RedisConfig
	PostgresConfig *PostgresConfig
	JwtConfig      *JwtConfig
	GGAuthConfig   *GGAuthConfig
}

func NewSystemConfig() *AppConfig {
	return &AppConfig{
		DebugMode:      os.Getenv("DEBUG_MODE") == "true",
		ServerPort:     getIntEnv("SERVER_PORT", 8082),
		SandboxConfig:  NewSandboxConfig(),
		RedisConfig:    NewRedisConfig(),
		PostgresConfig: NewPostgresConfig(),
		JwtConfig:      NewJwtConfig(),
		GGAuthConfig:   NewGGAuthConfig(),
	}
}
