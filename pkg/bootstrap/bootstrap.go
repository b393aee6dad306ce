// Package bootstrap assembles the consultation pipeline from configuration.
// Both the HTTP service and the event worker start from here.
package bootstrap

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/mediconsult/platform/pkg/advice"
	"github.com/mediconsult/platform/pkg/catalog"
	"github.com/mediconsult/platform/pkg/common/config"
	"github.com/mediconsult/platform/pkg/common/database"
	"github.com/mediconsult/platform/pkg/common/kafka"
	"github.com/mediconsult/platform/pkg/common/logger"
	"github.com/mediconsult/platform/pkg/consultation"
	"github.com/mediconsult/platform/pkg/diagnosis"
	"github.com/mediconsult/platform/pkg/dlp"
	"github.com/mediconsult/platform/pkg/dosing"
	"github.com/mediconsult/platform/pkg/formulary"
	"github.com/mediconsult/platform/pkg/gateway/httpclient"
	"github.com/mediconsult/platform/pkg/observability/metrics"
	"github.com/mediconsult/platform/pkg/prescription"
	"github.com/mediconsult/platform/pkg/symptom"
	"github.com/redis/go-redis/v9"
	"github.com/tmc/langchaingo/llms/googleai"
	"golang.org/x/oauth2/clientcredentials"
	"gorm.io/gorm"
)

// App holds the wired service plus the resources that need closing.
type App struct {
	Service    *consultation.Service
	Catalog    *catalog.Catalog
	Repository *consultation.Repository

	db       *gorm.DB
	redis    *redis.Client
	producer *kafka.Producer
}

// Build loads reference data and connects optional backends. Reference data
// problems fall back to built-in defaults; only invalid configuration fails.
func Build(ctx context.Context, cfg *config.Config) (*App, error) {
	log := logger.Component("bootstrap")
	app := &App{}

	app.Catalog = catalog.LoadOrDefault(cfg.MedicineCatalogPath)
	metrics.SetCatalogSize(app.Catalog.Len())

	rules := symptom.DefaultRules()
	if cfg.SymptomRulesPath != "" {
		var err error
		if rules, err = symptom.LoadRules(cfg.SymptomRulesPath); err != nil {
			log.WithError(err).Warn("Using built-in symptom rules")
		}
	}
	extractor, err := symptom.NewExtractor(rules)
	if err != nil {
		return nil, fmt.Errorf("symptom rules: %w", err)
	}

	diseases := diagnosis.DefaultCatalog()
	if cfg.DiseaseCatalogPath != "" {
		if diseases, err = diagnosis.Load(cfg.DiseaseCatalogPath); err != nil {
			log.WithError(err).Warn("Using built-in disease catalog")
		}
	}
	scorer, err := diagnosis.NewScorer(diseases, cfg.DiagnosisMinConfidence)
	if err != nil {
		return nil, fmt.Errorf("disease catalog: %w", err)
	}

	selector := formulary.NewSelector(app.Catalog, diseases.CategoryMap())

	if cfg.RedisEnabled {
		client, err := database.OpenRedis(ctx, cfg)
		if err != nil {
			log.WithError(err).Warn("Advice cache disabled")
			client.Close()
		} else {
			app.redis = client
		}
	}

	provider, err := adviceProvider(ctx, cfg, app.redis)
	if err != nil {
		app.Close()
		return nil, err
	}
	assembler := prescription.NewAssembler(dosing.NewComposer(), app.Catalog,
		prescription.WithAdvice(provider, cfg.AdviceTimeout),
		prescription.WithLetterhead(cfg.DoctorName, cfg.ClinicName),
	)

	var opts []consultation.Option
	if cfg.PersistenceEnabled {
		db, err := database.OpenPostgres(cfg)
		if err != nil {
			app.Close()
			return nil, fmt.Errorf("postgres: %w", err)
		}
		app.db = db
		app.Repository = consultation.NewRepository(db)
		if err := app.Repository.AutoMigrate(); err != nil {
			app.Close()
			return nil, fmt.Errorf("migrate consultation log: %w", err)
		}
		opts = append(opts, consultation.WithStore(app.Repository))
	}
	if cfg.EventsEnabled {
		app.producer = kafka.NewProducer(cfg.KafkaBrokers, cfg.ConsultationEventTopic)
		opts = append(opts, consultation.WithPublisher(app.producer))
	}

	app.Service = consultation.NewService(
		consultation.NewValidator(consultation.DefaultMaxTextRunes),
		extractor, scorer, selector, assembler, opts...,
	)

	log.WithFields(map[string]interface{}{
		"medicines":   app.Catalog.Len(),
		"diseases":    len(diseases.Profiles),
		"persistence": cfg.PersistenceEnabled,
		"events":      cfg.EventsEnabled,
		"advice":      cfg.LLMProvider,
	}).Info("Consultation pipeline ready")
	return app, nil
}

// adviceProvider returns nil when no model is configured; every consultation
// then uses the built-in advice text.
func adviceProvider(ctx context.Context, cfg *config.Config, cache *redis.Client) (advice.Provider, error) {
	var provider advice.Provider
	switch strings.ToLower(cfg.LLMProvider) {
	case "", "none", "disabled":
		return nil, nil
	case "gemini", "googleai":
		if cfg.LLMAPIKey == "" {
			logger.Component("bootstrap").Warn("LLM_API_KEY not set, advice generation disabled")
			return nil, nil
		}
		model, err := googleai.New(ctx,
			googleai.WithAPIKey(cfg.LLMAPIKey),
			googleai.WithDefaultModel(cfg.LLMModelName),
		)
		if err != nil {
			return nil, fmt.Errorf("googleai client: %w", err)
		}
		provider = advice.NewLangChainProvider(model)
	case "openai":
		opts := []advice.ChatOption{advice.WithHTTPClient(httpclient.New(cfg.AdviceTimeout))}
		if cfg.AdviceOAuthTokenURL != "" {
			opts = append(opts, advice.WithClientCredentials(clientcredentials.Config{
				ClientID:     cfg.AdviceOAuthClientID,
				ClientSecret: cfg.AdviceOAuthSecret,
				TokenURL:     cfg.AdviceOAuthTokenURL,
				Scopes:       cfg.AdviceOAuthScopes,
			}))
		} else if cfg.LLMAPIKey == "" {
			logger.Component("bootstrap").Warn("LLM_API_KEY not set, advice generation disabled")
			return nil, nil
		}
		provider = advice.NewChatProvider(cfg.LLMBaseURL, cfg.LLMAPIKey, cfg.LLMModelName, cfg.AdviceTimeout, opts...)
	default:
		return nil, fmt.Errorf("unknown LLM_PROVIDER %q", cfg.LLMProvider)
	}

	if cache != nil {
		provider = advice.NewCachedProvider(provider, cache, cfg.AdviceCacheTTL)
	}

	detector, err := dlp.LoadDetector(cfg.RedactionRulesPath)
	if err != nil {
		return nil, fmt.Errorf("dlp rules: %w", err)
	}
	return advice.Redacting(provider, detector), nil
}

// StartRetention deletes expired consultations every interval until ctx is
// done. It is a no-op without persistence or a retention period.
func (a *App) StartRetention(ctx context.Context, retention, interval time.Duration) {
	if a.Repository == nil || retention <= 0 {
		return
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				n, err := a.Repository.CleanupOlderThan(ctx, retention)
				if err != nil {
					logger.Component("retention").WithError(err).Error("Failed to delete expired consultations")
					continue
				}
				if n > 0 {
					logger.Component("retention").WithField("deleted", n).Info("Deleted expired consultations")
				}
			}
		}
	}()
}

// Ready reports whether the enabled backends answer.
func (a *App) Ready(ctx context.Context) error {
	if a.db != nil {
		sqlDB, err := a.db.DB()
		if err != nil {
			return err
		}
		if err := sqlDB.PingContext(ctx); err != nil {
			return fmt.Errorf("postgres: %w", err)
		}
	}
	if a.redis != nil {
		if err := a.redis.Ping(ctx).Err(); err != nil {
			return fmt.Errorf("redis: %w", err)
		}
	}
	return nil
}

func (a *App) Close() {
	if a.producer != nil {
		if err := a.producer.Close(); err != nil {
			logger.Log.WithError(err).Warn("Failed to close event producer")
		}
	}
	if a.redis != nil {
		a.redis.Close()
	}
	if a.db != nil {
		if err := database.ClosePostgres(a.db); err != nil {
			logger.Log.WithError(err).Warn("Failed to close database")
		}
	}
}
