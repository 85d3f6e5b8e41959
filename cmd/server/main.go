package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/joho/godotenv"
	"github.com/rs/cors"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/spendora/assistant/internal/assistant"
	"github.com/spendora/assistant/internal/auth"
	"github.com/spendora/assistant/internal/config"
	"github.com/spendora/assistant/internal/llm"
	"github.com/spendora/assistant/internal/logging"
	"github.com/spendora/assistant/internal/server"
	"github.com/spendora/assistant/internal/store"
)

const insightsTTL = 5 * time.Minute

func main() {
	// Optional .env for local development; ignored when absent.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	log := logging.New(cfg.DebugLogging)
	ctx := context.Background()

	var st store.Store
	var verifier auth.Verifier

	if cfg.UseMemoryStore {
		log.Info().Msg("using in-memory store for local development")
		st = store.NewMemoryStore()
		verifier = auth.NewStaticVerifier()
	} else {
		client, err := firestore.NewClient(ctx, cfg.ProjectID)
		if err != nil {
			log.Fatal().Err(err).Msg("create firestore client")
		}
		defer client.Close()
		st = store.NewFirestoreStore(client)

		if cfg.SkipAuth {
			log.Warn().Msg("SKIP_AUTH enabled, accepting any user id")
			verifier = auth.NewStaticVerifier()
		} else {
			verifier, err = auth.NewFirebaseVerifier(ctx)
			if err != nil {
				log.Fatal().Err(err).Msg("init firebase auth")
			}
		}
	}

	var providers []llm.Provider
	if cfg.GeminiAPIKey != "" {
		gemini, err := llm.NewGeminiProvider(ctx, cfg.GeminiAPIKey, cfg.GeminiModel, cfg.ProviderMaxRetries, cfg.ProviderTimeout)
		if err != nil {
			log.Fatal().Err(err).Msg("init gemini provider")
		}
		providers = append(providers, gemini)
	}
	if cfg.OpenAIAPIKey != "" {
		oai, err := llm.NewOpenAIProvider(cfg.OpenAIAPIKey, cfg.OpenAIModel)
		if err != nil {
			log.Fatal().Err(err).Msg("init openai provider")
		}
		providers = append(providers, oai)
	}
	if len(providers) == 0 {
		log.Warn().Msg("no provider credentials configured, model questions will fail")
	}
	registry := llm.NewRegistry(providers...)

	contexts := assistant.NewContextBuilder(st, cfg.RecurringDetector)
	orchestrator := assistant.New(st, verifier, registry, contexts, assistant.Options{
		PreferredProvider: cfg.PreferredProvider,
		GeminiModel:       cfg.GeminiModel,
		OpenAIModel:       cfg.OpenAIModel,
		MaxPromptChars:    cfg.MaxPromptChars,
		FreeDailyLimit:    cfg.FreeDailyLimit,
		DefaultCurrency:   cfg.DefaultCurrency,
	})
	insights := assistant.NewInsightsService(contexts, insightsTTL)

	mux := http.NewServeMux()
	enableLimits := cfg.FreeDailyLimit > 0
	server.NewHandler(orchestrator, insights, log, enableLimits).Register(mux)

	c := cors.New(cors.Options{
		AllowedOrigins: []string{
			"http://localhost:1234",
			"http://127.0.0.1:1234",
			"https://spendora.app",
			"https://www.spendora.app",
			"https://*.vercel.app",
		},
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodOptions,
		},
		AllowedHeaders: []string{
			"Accept",
			"Authorization",
			"Content-Type",
			"User-Agent",
		},
		ExposedHeaders: []string{
			"X-Assistant-Provider",
			"X-Assistant-Model",
			"X-Request-Id",
			"X-Prompt-Version",
			"X-Assistant-Intent",
			"X-Assistant-Period",
			"X-Locale",
			"X-Currency",
			"X-Assistant-Bypass",
		},
		AllowCredentials: true,
	})

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Port),
		Handler: h2c.NewHandler(c.Handler(mux), &http2.Server{}),
	}

	log.Info().Str("port", cfg.Port).Msg("starting server")
	if err := srv.ListenAndServe(); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}
