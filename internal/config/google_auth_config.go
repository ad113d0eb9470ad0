package config

type GGAuthConfig struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string

	// AllowedDomain, when set, restricts Google sign-in to one email domain
	AllowedDomain string
}

func NewGGAuthConfig() *GGAuthConfig {
	return &GGAuthConfig{
		ClientID:      getEnv("GOOGLE_CLIENT_ID", ""),
		ClientSecret:  getEnv("GOOGLE_CLIENT_SECRET", ""),
		RedirectURL:   getEnv("GOOGLE_REDIRECT_URL", "http://localhost:8082/auth/callback"),
		AllowedDomain: getEnv("GOOGLE_ALLOWED_DOMAIN", ""),
	}
}
