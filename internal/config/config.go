package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds application configuration
type Config struct {
	Port     string
	Env      string
	LogLevel string

	// CORS allowlist for the chat widget origins.
	CORSAllowedOrigins []string

	// Rate limiting for public endpoints.
	RateLimitPerSecond float64
	RateLimitBurst     int

	// Completion service (OpenAI-compatible).
	OpenAIAPIKey   string
	OpenAIBaseURL  string
	OpenAIModel    string
	LLMMaxTokens   int
	LLMTemperature float64
	LLMTimeout     time.Duration

	// Fallback completion provider.
	GeminiAPIKey string
	GeminiModel  string

	// Lead email delivery.
	EmailProvider string // smtp, sendgrid, ses, stub
	LeadTo        string
	LeadFrom      string
	LeadFromName  string

	// SMTP relay (Brevo by default).
	SMTPHost string
	SMTPPort int
	SMTPUser string
	SMTPPass string

	// SendGrid email.
	SendGridAPIKey string

	// AWS (SES email provider).
	AWSRegion string

	// Redis (lead dedupe). Empty addr disables dedupe.
	RedisAddr     string
	RedisPassword string
	LeadDedupeTTL time.Duration

	// Admin endpoints.
	AdminJWTSecret string

	// Spotify playlist export (all four required to enable pro mode).
	SpotifyClientID     string
	SpotifyClientSecret string
	SpotifyRefreshToken string
	SpotifyUserID       string
}

// Load reads configuration from environment variables
func Load() *Config {
	return &Config{
		Port:     getEnv("PORT", "8080"),
		Env:      getEnv("ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),

		CORSAllowedOrigins: getEnvAsList("CORS_ALLOWED_ORIGINS", []string{
			"https://www.musicmasti.com",
			"https://musicmasti.com",
		}),

		RateLimitPerSecond: getEnvAsFloat("RATE_LIMIT_PER_SECOND", 2),
		RateLimitBurst:     getEnvAsInt("RATE_LIMIT_BURST", 10),

		OpenAIAPIKey:   getEnv("OPENAI_API_KEY", ""),
		OpenAIBaseURL:  getEnv("OPENAI_BASE_URL", ""),
		OpenAIModel:    getEnv("OPENAI_MODEL", "gpt-4o-mini"),
		LLMMaxTokens:   getEnvAsInt("LLM_MAX_TOKENS", 400),
		LLMTemperature: getEnvAsFloat("LLM_TEMPERATURE", 0.6),
		LLMTimeout:     getEnvAsDuration("LLM_TIMEOUT", 30*time.Second),

		GeminiAPIKey: getEnv("GEMINI_API_KEY", ""),
		GeminiModel:  getEnv("GEMINI_MODEL", "gemini-2.5-flash"),

		EmailProvider: strings.ToLower(strings.TrimSpace(getEnv("EMAIL_PROVIDER", "smtp"))),
		LeadTo:        getEnv("LEAD_TO", "info@musicmasti.com"),
		LeadFrom:      getEnv("LEAD_FROM", "leads@musicmasti.com"),
		LeadFromName:  getEnv("LEAD_FROM_NAME", "Music Masti Magic"),

		SMTPHost: getEnv("BREVO_HOST", "smtp-relay.brevo.com"),
		SMTPPort: getEnvAsInt("BREVO_PORT", 587),
		SMTPUser: getEnv("BREVO_USER", ""),
		SMTPPass: getEnv("BREVO_PASS", ""),

		SendGridAPIKey: getEnv("SENDGRID_API_KEY", ""),

		AWSRegion: getEnv("AWS_REGION", "us-east-1"),

		RedisAddr:     getEnv("REDIS_ADDR", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		LeadDedupeTTL: getEnvAsDuration("LEAD_DEDUPE_TTL", time.Hour),

		AdminJWTSecret: getEnv("ADMIN_JWT_SECRET", ""),

		SpotifyClientID:     getEnv("SPOTIFY_CLIENT_ID", ""),
		SpotifyClientSecret: getEnv("SPOTIFY_CLIENT_SECRET", ""),
		SpotifyRefreshToken: getEnv("SPOTIFY_REFRESH_TOKEN", ""),
		SpotifyUserID:       getEnv("SPOTIFY_USER_ID", ""),
	}
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt retrieves an environment variable as an integer or returns a default value
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

// getEnvAsFloat retrieves an environment variable as a float or returns a default value
func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseFloat(valueStr, 64); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	return defaultValue
}

// getEnvAsList splits a comma-separated environment variable, trimming blanks.
func getEnvAsList(key string, defaultValue []string) []string {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	parts := strings.Split(valueStr, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
