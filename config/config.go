package config

import (
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

type Config struct {
	Server        Server
	Database      Database
	Vapi          Vapi
	GeminiApiKey  string
	SessionSecret string
	AITimeout     time.Duration
}

type Server struct {
	Port string
	Env  string
}

type Database struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
}

// Vapi holds the credentials for the voice call transport.
type Vapi struct {
	BaseURL       string
	APIKey        string
	AssistantID   string
	WorkflowID    string
	WebhookSecret string
}

func NewConfig() (*Config, error) {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")

	viper.AutomaticEnv()

	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("SERVER_ENV", "development")
	viper.SetDefault("VAPI_BASE_URL", "https://api.vapi.ai")
	viper.SetDefault("AI_TIMEOUT_SECONDS", 30)

	if err := viper.ReadInConfig(); err != nil {
		log.Warn().Err(err).Msg("Error reading config file")
	}

	var config Config

	config.Server.Port = viper.GetString("SERVER_PORT")
	config.Server.Env = viper.GetString("SERVER_ENV")
	config.Database.Host = viper.GetString("DATABASE_HOST")
	config.Database.Port = viper.GetString("DATABASE_PORT")
	config.Database.User = viper.GetString("DATABASE_USER")
	config.Database.Password = viper.GetString("DATABASE_PASSWORD")
	config.Database.Name = viper.GetString("DATABASE_NAME")

	config.Vapi.BaseURL = viper.GetString("VAPI_BASE_URL")
	config.Vapi.APIKey = viper.GetString("VAPI_API_KEY")
	config.Vapi.AssistantID = viper.GetString("VAPI_ASSISTANT_ID")
	config.Vapi.WorkflowID = viper.GetString("VAPI_WORKFLOW_ID")
	config.Vapi.WebhookSecret = viper.GetString("VAPI_WEBHOOK_SECRET")

	config.GeminiApiKey = viper.GetString("GEMINI_API_KEY")
	config.SessionSecret = viper.GetString("SESSION_SECRET")
	config.AITimeout = time.Duration(viper.GetInt("AI_TIMEOUT_SECONDS")) * time.Second

	log.Info().Str("port", config.Server.Port).Str("env", config.Server.Env).Msg("Config loaded")
	return &config, nil
}

func (c *Config) IsProduction() bool {
	return c.Server.Env == "production"
}
