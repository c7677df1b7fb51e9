package config

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Database  DatabaseConfig  `mapstructure:"database"`
	OpenAI    OpenAIConfig    `mapstructure:"openai"`
	Chapters  ChaptersConfig  `mapstructure:"chapters"`
	Sentiment SentimentConfig `mapstructure:"sentiment"`
	Worker    WorkerConfig    `mapstructure:"worker"`
}

type DatabaseConfig struct {
	Host        string `mapstructure:"host"`
	Port        int    `mapstructure:"port"`
	User        string `mapstructure:"user"`
	Password    string `mapstructure:"password"`
	DBName      string `mapstructure:"dbname"`
	SSLMode     string `mapstructure:"sslmode"`
	UseInMemory bool   `mapstructure:"use_in_memory"`
}

type OpenAIConfig struct {
	APIKey      string  `mapstructure:"api_key"`
	Model       string  `mapstructure:"model"`
	MaxTokens   int     `mapstructure:"max_tokens"`
	Temperature float64 `mapstructure:"temperature"`
}

type ChaptersConfig struct {
	MinEventsPerChapter    int  `mapstructure:"min_events_per_chapter"`
	MaxEventsPerChapter    int  `mapstructure:"max_events_per_chapter"`
	MinChapterDurationDays int  `mapstructure:"min_chapter_duration_days"`
	MaxChapterDurationDays int  `mapstructure:"max_chapter_duration_days"`
	UseAI                  bool `mapstructure:"use_ai"`
}

type SentimentConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Period  string `mapstructure:"period"`
}

type WorkerConfig struct {
	Concurrency   int    `mapstructure:"concurrency"`
	JobsPerMinute int    `mapstructure:"jobs_per_minute"`
	Style         string `mapstructure:"style"`
}

func parseDatabaseURL(dbURL string) (DatabaseConfig, error) {
	u, err := url.Parse(dbURL)
	if err != nil {
		return DatabaseConfig{}, err
	}

	password, _ := u.User.Password()
	port := 5432 // default PostgreSQL port
	if u.Port() != "" {
		fmt.Sscanf(u.Port(), "%d", &port)
	}

	// Remove leading slash from path to get database name
	dbName := strings.TrimPrefix(u.Path, "/")

	return DatabaseConfig{
		Host:     u.Hostname(),
		Port:     port,
		User:     u.User.Username(),
		Password: password,
		DBName:   dbName,
		SSLMode:  "disable",
	}, nil
}

func LoadConfig(path string) (*Config, error) {
	v := viper.New()

	// Set default values
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.use_in_memory", false)
	v.SetDefault("openai.model", "gpt-3.5-turbo")
	v.SetDefault("openai.max_tokens", 800)
	v.SetDefault("openai.temperature", 0.3)
	v.SetDefault("chapters.min_events_per_chapter", 5)
	v.SetDefault("chapters.max_events_per_chapter", 50)
	v.SetDefault("chapters.min_chapter_duration_days", 7)
	v.SetDefault("chapters.max_chapter_duration_days", 365)
	v.SetDefault("chapters.use_ai", true)
	v.SetDefault("sentiment.enabled", true)
	v.SetDefault("sentiment.period", "weekly")
	v.SetDefault("worker.concurrency", 2)
	v.SetDefault("worker.jobs_per_minute", 10)
	v.SetDefault("worker.style", "chronological")

	// Enable environment variable support
	v.AutomaticEnv()

	// Read the config file
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	// Check for DATABASE_URL environment variable
	if dbURL := v.GetString("DATABASE_URL"); dbURL != "" {
		dbConfig, err := parseDatabaseURL(dbURL)
		if err != nil {
			return nil, fmt.Errorf("failed to parse DATABASE_URL: %v", err)
		}
		config.Database = dbConfig
	}

	if apiKey := v.GetString("OPENAI_API_KEY"); apiKey != "" {
		config.OpenAI.APIKey = apiKey
	}

	return &config, nil
}
