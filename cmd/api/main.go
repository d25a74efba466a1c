package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/miloshomes9-hub/masti-chat/internal/api/router"
	"github.com/miloshomes9-hub/masti-chat/internal/chat"
	appconfig "github.com/miloshomes9-hub/masti-chat/internal/config"
	"github.com/miloshomes9-hub/masti-chat/internal/http/handlers"
	"github.com/miloshomes9-hub/masti-chat/internal/leads"
	"github.com/miloshomes9-hub/masti-chat/internal/llm"
	"github.com/miloshomes9-hub/masti-chat/internal/notify"
	"github.com/miloshomes9-hub/masti-chat/internal/observability/metrics"
	"github.com/miloshomes9-hub/masti-chat/internal/playlist"
	"github.com/miloshomes9-hub/masti-chat/pkg/logging"
)

func main() {
	_ = godotenv.Load()
	cfg := appconfig.Load()

	logger := logging.New(cfg.LogLevel)
	logger.Info("starting masti-chat API server",
		"env", cfg.Env,
		"port", cfg.Port,
	)

	ctx := context.Background()

	llmClient := buildCompletionClient(ctx, cfg, logger)
	emailSender := buildEmailSender(ctx, cfg, logger)
	mailer := notify.NewService(emailSender, cfg.LeadTo, logger)

	var dedupe *leads.Deduper
	if cfg.RedisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
		})
		if err := redisClient.Ping(ctx).Err(); err != nil {
			logger.Warn("redis unreachable, lead dedupe disabled", "addr", cfg.RedisAddr, "error", err)
		} else {
			dedupe = leads.NewDeduper(redisClient, cfg.LeadDedupeTTL)
		}
	}

	leadsRepo := leads.NewInMemoryRepository()
	chatMetrics := metrics.NewChatMetrics(nil)

	chatCfg := chat.Config{
		Model:       cfg.OpenAIModel,
		MaxTokens:   int32(cfg.LLMMaxTokens),
		Temperature: float32(cfg.LLMTemperature),
	}
	chatHandler := chat.NewHandler(llmClient, chatCfg, mailer, leadsRepo, dedupe, chatMetrics, logger)
	leadsHandler := leads.NewHandler(mailer, leadsRepo, dedupe, logger)

	curator := playlist.NewCurator(llmClient, cfg.OpenAIModel, float32(cfg.LLMTemperature))
	spotify := playlist.NewSpotifyClient(playlist.SpotifyConfig{
		ClientID:     cfg.SpotifyClientID,
		ClientSecret: cfg.SpotifyClientSecret,
		RefreshToken: cfg.SpotifyRefreshToken,
		UserID:       cfg.SpotifyUserID,
		Logger:       logger,
	})
	if spotify != nil {
		logger.Info("spotify playlist export enabled", "user_id", cfg.SpotifyUserID)
	}
	playlistHandler := playlist.NewHandler(curator, spotify, logger)

	r := router.New(&router.Config{
		Logger:             logger,
		ChatHandler:        chatHandler,
		LeadsHandler:       leadsHandler,
		PlaylistHandler:    playlistHandler,
		HealthHandler:      handlers.NewHealthHandler(cfg.OpenAIAPIKey != ""),
		TestEmail:          handlers.NewTestEmailHandler(mailer, logger),
		MetricsHandler:     promhttp.Handler(),
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		RateLimitPerSecond: cfg.RateLimitPerSecond,
		RateLimitBurst:     cfg.RateLimitBurst,
		AdminAuthSecret:    cfg.AdminJWTSecret,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	logger.Info("server stopped")
}

// buildCompletionClient wires the provider chain: OpenAI primary, Gemini
// fallback. With no credentials at all the chat endpoint still answers, via
// its canned reply.
func buildCompletionClient(ctx context.Context, cfg *appconfig.Config, logger *logging.Logger) llm.Client {
	var primary, fallback llm.Client

	if cfg.OpenAIAPIKey != "" {
		client, err := llm.NewOpenAIClient(llm.OpenAIConfig{
			APIKey:  cfg.OpenAIAPIKey,
			BaseURL: cfg.OpenAIBaseURL,
			Model:   cfg.OpenAIModel,
			Timeout: cfg.LLMTimeout,
		})
		if err != nil {
			logger.Error("failed to create openai client", "error", err)
		} else {
			primary = client
		}
	}

	if cfg.GeminiAPIKey != "" {
		client, err := llm.NewGeminiClient(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			logger.Error("failed to create gemini client", "error", err)
		} else {
			fallback = client
		}
	}

	switch {
	case primary != nil && fallback != nil:
		return llm.NewFallbackClient(primary, fallback, logger)
	case primary != nil:
		return primary
	case fallback != nil:
		logger.Warn("no openai key, using gemini as the only completion provider")
		return fallback
	default:
		logger.Warn("no completion provider configured, chat will serve fallback replies")
		return llm.Disabled{}
	}
}

// buildEmailSender selects the lead delivery transport. Anything
// misconfigured falls through to the stub so the server still starts.
func buildEmailSender(ctx context.Context, cfg *appconfig.Config, logger *logging.Logger) notify.EmailSender {
	switch cfg.EmailProvider {
	case "sendgrid":
		if sender := notify.NewSendGridSender(notify.SendGridConfig{
			APIKey:    cfg.SendGridAPIKey,
			FromEmail: cfg.LeadFrom,
			FromName:  cfg.LeadFromName,
		}, logger); sender != nil {
			return sender
		}
		logger.Warn("sendgrid selected but not configured, falling back to stub")

	case "ses":
		awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.AWSRegion))
		if err != nil {
			logger.Warn("failed to load AWS config, falling back to stub", "error", err)
			break
		}
		if sender := notify.NewSESSender(sesv2.NewFromConfig(awsCfg), notify.SESConfig{
			FromEmail: cfg.LeadFrom,
			FromName:  cfg.LeadFromName,
		}, logger); sender != nil {
			return sender
		}

	case "stub":

	default: // smtp
		if sender := notify.NewSMTPSender(notify.SMTPConfig{
			Host:      cfg.SMTPHost,
			Port:      cfg.SMTPPort,
			Username:  cfg.SMTPUser,
			Password:  cfg.SMTPPass,
			FromEmail: cfg.LeadFrom,
			FromName:  cfg.LeadFromName,
		}, logger); sender != nil {
			return sender
		}
		logger.Warn("smtp credentials missing, falling back to stub")
	}

	return notify.NewStubEmailSender(logger)
}
