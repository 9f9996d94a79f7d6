package infrastructure

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds the process configuration. Values come from the environment,
// optionally seeded from a .env file.
type Config struct {
	HTTPAddr    string   `mapstructure:"http_addr"`
	CORSOrigins []string `mapstructure:"cors_origins"`

	DBDriver string `mapstructure:"db_driver"` // mysql, postgres, sqlite
	DBDSN    string `mapstructure:"db_dsn"`

	S3Endpoint   string `mapstructure:"s3_endpoint"`
	S3Region     string `mapstructure:"s3_region"`
	S3AccessKey  string `mapstructure:"s3_access_key"`
	S3SecretKey  string `mapstructure:"s3_secret_key"`
	S3PublicURL  string `mapstructure:"s3_public_url"`
	S3PathStyle  bool   `mapstructure:"s3_path_style"`
	ResumeBucket string `mapstructure:"resume_bucket"`
	JDBucket     string `mapstructure:"jd_bucket"`

	UniPDFLicense string        `mapstructure:"unipdf_license_key"`
	FetchTimeout  time.Duration `mapstructure:"fetch_timeout"`

	LLMProvider    string        `mapstructure:"llm_provider"` // groq, openai, gemini, vertexai
	LLMAPIKey      string        `mapstructure:"llm_api_key"`
	LLMModel       string        `mapstructure:"llm_model"`
	LLMBaseURL     string        `mapstructure:"llm_base_url"`
	LLMTemperature float32       `mapstructure:"llm_temperature"`
	LLMTimeout     time.Duration `mapstructure:"llm_timeout"`
	LLMPromptFile  string        `mapstructure:"llm_prompt_file"`
	VertexProject  string        `mapstructure:"vertex_project"`
	VertexLocation string        `mapstructure:"vertex_location"`

	AdminUsername   string        `mapstructure:"admin_username"`
	AdminPassword   string        `mapstructure:"admin_password"`
	AdminSessionTTL time.Duration `mapstructure:"admin_session_ttl"`

	RabbitMQURL   string `mapstructure:"rabbitmq_url"`
	RabbitMQQueue string `mapstructure:"rabbitmq_queue"`

	LogLevel  string `mapstructure:"log_level"`
	LogFormat string `mapstructure:"log_format"`
}

var configKeys = map[string]any{
	"http_addr":          ":8080",
	"cors_origins":       []string{"*"},
	"db_driver":          "mysql",
	"db_dsn":             "",
	"s3_endpoint":        "",
	"s3_region":          "auto",
	"s3_access_key":      "",
	"s3_secret_key":      "",
	"s3_public_url":      "",
	"s3_path_style":      false,
	"resume_bucket":      "resumes",
	"jd_bucket":          "job-descriptions",
	"unipdf_license_key": "",
	"fetch_timeout":      30 * time.Second,
	"llm_provider":       "groq",
	"llm_api_key":        "",
	"llm_model":          "",
	"llm_base_url":       "",
	"llm_temperature":    0.1,
	"llm_timeout":        60 * time.Second,
	"llm_prompt_file":    "",
	"vertex_project":     "",
	"vertex_location":    "us-central1",
	"admin_username":     "admin",
	"admin_password":     "admin",
	"admin_session_ttl":  12 * time.Hour,
	"rabbitmq_url":       "",
	"rabbitmq_queue":     "application_events",
	"log_level":          "info",
	"log_format":         "text",
}

var providerKeyEnv = map[string]string{
	"":       "GROQ_API_KEY",
	"groq":   "GROQ_API_KEY",
	"openai": "OPENAI_API_KEY",
	"gemini": "GEMINI_API_KEY",
}

// LoadConfig reads .env (when present) and the environment.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for key, def := range configKeys {
		v.SetDefault(key, def)
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	cfg.LLMProvider = strings.ToLower(strings.TrimSpace(cfg.LLMProvider))
	cfg.DBDriver = strings.ToLower(strings.TrimSpace(cfg.DBDriver))

	// Fall back to the key name the selected provider's own SDK reads.
	if cfg.LLMAPIKey == "" {
		if env, ok := providerKeyEnv[cfg.LLMProvider]; ok {
			cfg.LLMAPIKey = v.GetString(env)
		}
	}
	return cfg, nil
}
