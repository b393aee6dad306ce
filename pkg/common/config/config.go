package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// Server
	ServerPort     string
	ServerHost     string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	MaxRequestBody int64
	RateLimitRPS   int
	RateLimitBurst int

	// Database
	PersistenceEnabled bool
	PostgresHost       string
	PostgresPort       string
	PostgresUser       string
	PostgresPassword   string
	PostgresDB         string
	PostgresSSLMode    string
	RetentionPeriod    time.Duration

	// Redis
	RedisEnabled  bool
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int

	// Kafka
	EventsEnabled            bool
	KafkaBrokers             []string
	KafkaGroupID             string
	ConsultationRequestTopic string
	ConsultationEventTopic   string

	// Reference data
	MedicineCatalogPath    string
	DiseaseCatalogPath     string
	SymptomRulesPath       string
	RedactionRulesPath     string
	DiagnosisMinConfidence float64

	// Advice (LLM)
	LLMProvider         string
	LLMAPIKey           string
	LLMBaseURL          string
	LLMModelName        string
	AdviceTimeout       time.Duration
	AdviceCacheTTL      time.Duration
	AdviceOAuthTokenURL string
	AdviceOAuthClientID string
	AdviceOAuthSecret   string
	AdviceOAuthScopes   []string

	// Prescription letterhead
	DoctorName string
	ClinicName string
}

// Load reads configuration from the environment. A .env file in the working
// directory is applied first when present; real environment variables win.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		ServerPort:     getEnv("SERVER_PORT", "8080"),
		ServerHost:     getEnv("SERVER_HOST", "0.0.0.0"),
		ReadTimeout:    getDuration("READ_TIMEOUT", 30*time.Second),
		WriteTimeout:   getDuration("WRITE_TIMEOUT", 30*time.Second),
		MaxRequestBody: int64(getIntEnv("MAX_REQUEST_BODY_BYTES", 1024*1024)),
		RateLimitRPS:   getIntEnv("RATE_LIMIT_RPS", 50),
		RateLimitBurst: getIntEnv("RATE_LIMIT_BURST", 100),

		PersistenceEnabled: getBoolEnv("PERSISTENCE_ENABLED", false),
		PostgresHost:       getEnv("POSTGRES_HOST", "localhost"),
		PostgresPort:       getEnv("POSTGRES_PORT", "5432"),
		PostgresUser:       getEnv("POSTGRES_USER", "mediconsult"),
		PostgresPassword:   getEnv("POSTGRES_PASSWORD", "mediconsult"),
		PostgresDB:         getEnv("POSTGRES_DB", "mediconsult"),
		PostgresSSLMode:    getEnv("POSTGRES_SSLMODE", "disable"),
		RetentionPeriod:    getDuration("CONSULTATION_RETENTION", 0),

		RedisEnabled:  getBoolEnv("REDIS_ENABLED", false),
		RedisHost:     getEnv("REDIS_HOST", "localhost"),
		RedisPort:     getEnv("REDIS_PORT", "6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getIntEnv("REDIS_DB", 0),

		EventsEnabled:            getBoolEnv("EVENTS_ENABLED", false),
		KafkaBrokers:             getStringSliceEnv("KAFKA_BROKERS", []string{"localhost:9092"}),
		KafkaGroupID:             getEnv("KAFKA_GROUP_ID", "consult-worker"),
		ConsultationRequestTopic: getEnv("CONSULTATION_REQUEST_TOPIC", "consultation-requests"),
		ConsultationEventTopic:   getEnv("CONSULTATION_EVENT_TOPIC", "consultation-events"),

		MedicineCatalogPath:    getEnv("MEDICINE_CATALOG_PATH", "data/medicines.csv"),
		DiseaseCatalogPath:     getEnv("DISEASE_CATALOG_PATH", ""),
		SymptomRulesPath:       getEnv("SYMPTOM_RULES_PATH", ""),
		RedactionRulesPath:     getEnv("REDACTION_RULES_PATH", ""),
		DiagnosisMinConfidence: getFloatEnv("DIAGNOSIS_MIN_CONFIDENCE", 25),

		LLMProvider:         getEnv("LLM_PROVIDER", "openai"),
		LLMAPIKey:           getEnv("LLM_API_KEY", ""),
		LLMBaseURL:          getEnv("LLM_BASE_URL", "https://api.openai.com/v1"),
		LLMModelName:        getEnv("LLM_MODEL_NAME", "gpt-4o-mini"),
		AdviceTimeout:       getDuration("ADVICE_TIMEOUT", 8*time.Second),
		AdviceCacheTTL:      getDuration("ADVICE_CACHE_TTL", 6*time.Hour),
		AdviceOAuthTokenURL: getEnv("ADVICE_OAUTH_TOKEN_URL", ""),
		AdviceOAuthClientID: getEnv("ADVICE_OAUTH_CLIENT_ID", ""),
		AdviceOAuthSecret:   getEnv("ADVICE_OAUTH_CLIENT_SECRET", ""),
		AdviceOAuthScopes:   getStringSliceEnv("ADVICE_OAUTH_SCOPES", nil),

		DoctorName: getEnv("DOCTOR_NAME", "Dr. AI Physician"),
		ClinicName: getEnv("CLINIC_NAME", "MediConsult Virtual Clinic"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getFloatEnv(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

// getStringSliceEnv splits a comma separated value, dropping empty entries.
func getStringSliceEnv(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
