package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config carries every dependency setting the service needs. It is built
// once in main and injected into constructors; nothing reads the
// environment after startup.
type Config struct {
	HTTPAddr        string
	DatabaseDSN     string
	RedisAddr       string
	InferenceAddr   string
	HeatmapDir      string
	ShutdownTimeout time.Duration

	Blockfrost BlockfrostConfig
	Anchor     AnchorConfig
	Groq       GroqConfig
	JWT        JWTConfig
}

// BlockfrostConfig addresses the hosted Cardano/IPFS gateway.
type BlockfrostConfig struct {
	ProjectID   string
	APIBaseURL  string
	IPFSBaseURL string
}

// AnchorConfig tunes the anchoring workflow.
type AnchorConfig struct {
	MaxAttempts int
	BackoffUnit time.Duration
	Network     string
	Version     string
	// AllowSimulatedFallback substitutes a locally derived reference when
	// the gateway is unreachable or rejects the project key. Demo posture;
	// production deployments set this to false and fail hard.
	AllowSimulatedFallback bool
}

// GroqConfig addresses the OpenAI-compatible chat backend.
type GroqConfig struct {
	APIKey  string
	BaseURL string
	Model   string
}

// JWTConfig guards the admin routes.
type JWTConfig struct {
	Secret   string
	Audience string
}

// Load resolves configuration from defaults, an optional config file, and
// RETINA_* environment variables (highest priority).
func Load() (*Config, error) {
	v := viper.New()

	v.SetDefault("http.addr", ":8080")
	v.SetDefault("database.dsn", "host=postgres user=postgres password=postgres dbname=screenings port=5432 sslmode=disable")
	v.SetDefault("redis.addr", "redis:6379")
	v.SetDefault("inference.addr", "model-server:50051")
	v.SetDefault("heatmap.dir", "heatmaps")
	v.SetDefault("shutdown.timeout", "15s")

	v.SetDefault("blockfrost.project_id", "")
	v.SetDefault("blockfrost.api_base_url", "https://cardano-preprod.blockfrost.io/api/v0")
	v.SetDefault("blockfrost.ipfs_base_url", "https://ipfs.blockfrost.io/api/v0")

	v.SetDefault("anchor.max_attempts", 3)
	v.SetDefault("anchor.backoff_unit", "1s")
	v.SetDefault("anchor.network", "cardano-preprod")
	v.SetDefault("anchor.version", "1.0")
	v.SetDefault("anchor.allow_simulated_fallback", true)

	v.SetDefault("groq.api_key", "")
	v.SetDefault("groq.base_url", "https://api.groq.com/openai/v1")
	v.SetDefault("groq.model", "llama-3.3-70b-versatile")

	v.SetDefault("jwt.secret", "")
	v.SetDefault("jwt.audience", "")

	v.SetEnvPrefix("RETINA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("/etc/retina")
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	cfg := &Config{
		HTTPAddr:        v.GetString("http.addr"),
		DatabaseDSN:     v.GetString("database.dsn"),
		RedisAddr:       v.GetString("redis.addr"),
		InferenceAddr:   v.GetString("inference.addr"),
		HeatmapDir:      v.GetString("heatmap.dir"),
		ShutdownTimeout: v.GetDuration("shutdown.timeout"),
		Blockfrost: BlockfrostConfig{
			ProjectID:   v.GetString("blockfrost.project_id"),
			APIBaseURL:  v.GetString("blockfrost.api_base_url"),
			IPFSBaseURL: v.GetString("blockfrost.ipfs_base_url"),
		},
		Anchor: AnchorConfig{
			MaxAttempts:            v.GetInt("anchor.max_attempts"),
			BackoffUnit:            v.GetDuration("anchor.backoff_unit"),
			Network:                v.GetString("anchor.network"),
			Version:                v.GetString("anchor.version"),
			AllowSimulatedFallback: v.GetBool("anchor.allow_simulated_fallback"),
		},
		Groq: GroqConfig{
			APIKey:  v.GetString("groq.api_key"),
			BaseURL: v.GetString("groq.base_url"),
			Model:   v.GetString("groq.model"),
		},
		JWT: JWTConfig{
			Secret:   v.GetString("jwt.secret"),
			Audience: v.GetString("jwt.audience"),
		},
	}
	return cfg, nil
}
