package utils

import (
	"errors"
	"io/fs"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	AI        AIConfig
	Lock      LockConfig
	Telegram  TelegramConfig
	Tracker   TrackerConfig
	Storage   StorageConfig
	Market    MarketConfig
	Scheduler SchedulerConfig
	Session   SessionConfig
}

type AppConfig struct {
	Name    string
	Port    string
	Debug   bool
	LogPath string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	SSLMode  string
	MaxConns int32
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	PoolSize int
}

// AIConfig configures the text-generation provider used for listing optimization.
type AIConfig struct {
	APIKey    string
	Model     string
	MaxTokens int64
}

// LockConfig holds Tuya cloud credentials. Empty credentials switch to the simulated vendor.
type LockConfig struct {
	BaseURL      string
	ClientID     string
	ClientSecret string
}

type TelegramConfig struct {
	BotToken string
}

type TrackerConfig struct {
	CredentialsFile string
	SpreadsheetID   string
	Sheet           string
}

type StorageConfig struct {
	Endpoint     string
	Region       string
	Bucket       string
	AccessKey    string
	SecretKey    string
	UsePathStyle bool
	PublicURL    string
}

type MarketConfig struct {
	ScraperEnabled   bool
	SearchURL        string
	ScrapeIntervalMs int
	PricingMin       int
	PricingSpread    int
}

type SchedulerConfig struct {
	Enabled           bool
	OptimizeHour      int
	OptimizeMinute    int
	CalendarSyncEvery time.Duration
	CheckInterval     time.Duration
	JobLockTTL        time.Duration
}

type SessionConfig struct {
	CookieName string
	CheckInTTL time.Duration
}

// LoadConfig reads .env from the working directory; environment variables win.
func LoadConfig() (*Config, error) {
	return LoadConfigFrom(".env")
}

func LoadConfigFrom(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("env")

	// Set defaults
	v.SetDefault("APP_NAME", "azhaboost")
	v.SetDefault("PORT", "8080")
	v.SetDefault("DEBUG", false)
	v.SetDefault("LOG_PATH", "logs/")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("DB_MAX_CONNS", 10)
	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("REDIS_POOL_SIZE", 10)
	v.SetDefault("ANTHROPIC_MODEL", "claude-3-sonnet-20240229")
	v.SetDefault("ANTHROPIC_MAX_TOKENS", 1000)
	v.SetDefault("TUYA_BASE_URL", "https://openapi.tuyaeu.com")
	v.SetDefault("TRACKER_SHEET", "Tasks")
	v.SetDefault("S3_REGION", "us-east-1")
	v.SetDefault("MARKET_SCRAPER_ENABLED", false)
	v.SetDefault("AIRBNB_SEARCH_URL", "https://www.airbnb.com/s/Azha--Egypt/homes")
	v.SetDefault("MARKET_SCRAPE_INTERVAL_MS", 3000)
	v.SetDefault("PRICING_MIN", 180)
	v.SetDefault("PRICING_SPREAD", 50)
	v.SetDefault("SCHEDULER_ENABLED", true)
	v.SetDefault("OPTIMIZE_HOUR", 9)
	v.SetDefault("OPTIMIZE_MINUTE", 0)
	v.SetDefault("CALENDAR_SYNC_INTERVAL", "1h")
	v.SetDefault("SCHEDULER_CHECK_INTERVAL", "1m")
	v.SetDefault("JOB_LOCK_TTL", "30m")
	v.SetDefault("SESSION_COOKIE", "azhaboost_session")
	v.SetDefault("CHECKIN_TTL", "30m")

	if err := v.ReadInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}

	v.AutomaticEnv()

	config := &Config{
		App: AppConfig{
			Name:    v.GetString("APP_NAME"),
			Port:    v.GetString("PORT"),
			Debug:   v.GetBool("DEBUG"),
			LogPath: v.GetString("LOG_PATH"),
		},
		Database: DatabaseConfig{
			Host:     v.GetString("DB_HOST"),
			Port:     v.GetString("DB_PORT"),
			Name:     v.GetString("DB_NAME"),
			User:     v.GetString("DB_USER"),
			Password: v.GetString("DB_PASS"),
			SSLMode:  v.GetString("DB_SSLMODE"),
			MaxConns: v.GetInt32("DB_MAX_CONNS"),
		},
		Redis: RedisConfig{
			Addr:     v.GetString("REDIS_ADDR"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
			PoolSize: v.GetInt("REDIS_POOL_SIZE"),
		},
		AI: AIConfig{
			APIKey:    v.GetString("ANTHROPIC_API_KEY"),
			Model:     v.GetString("ANTHROPIC_MODEL"),
			MaxTokens: v.GetInt64("ANTHROPIC_MAX_TOKENS"),
		},
		Lock: LockConfig{
			BaseURL:      v.GetString("TUYA_BASE_URL"),
			ClientID:     v.GetString("TUYA_CLIENT_ID"),
			ClientSecret: v.GetString("TUYA_CLIENT_SECRET"),
		},
		Telegram: TelegramConfig{
			BotToken: v.GetString("TELEGRAM_BOT_TOKEN"),
		},
		Tracker: TrackerConfig{
			CredentialsFile: v.GetString("GOOGLE_CREDENTIALS_FILE"),
			SpreadsheetID:   v.GetString("TRACKER_SPREADSHEET_ID"),
			Sheet:           v.GetString("TRACKER_SHEET"),
		},
		Storage: StorageConfig{
			Endpoint:     v.GetString("S3_ENDPOINT"),
			Region:       v.GetString("S3_REGION"),
			Bucket:       v.GetString("S3_BUCKET"),
			AccessKey:    v.GetString("S3_ACCESS_KEY"),
			SecretKey:    v.GetString("S3_SECRET_KEY"),
			UsePathStyle: v.GetBool("S3_USE_PATH_STYLE"),
			PublicURL:    v.GetString("S3_PUBLIC_URL"),
		},
		Market: MarketConfig{
			ScraperEnabled:   v.GetBool("MARKET_SCRAPER_ENABLED"),
			SearchURL:        v.GetString("AIRBNB_SEARCH_URL"),
			ScrapeIntervalMs: v.GetInt("MARKET_SCRAPE_INTERVAL_MS"),
			PricingMin:       v.GetInt("PRICING_MIN"),
			PricingSpread:    v.GetInt("PRICING_SPREAD"),
		},
		Scheduler: SchedulerConfig{
			Enabled:           v.GetBool("SCHEDULER_ENABLED"),
			OptimizeHour:      v.GetInt("OPTIMIZE_HOUR"),
			OptimizeMinute:    v.GetInt("OPTIMIZE_MINUTE"),
			CalendarSyncEvery: v.GetDuration("CALENDAR_SYNC_INTERVAL"),
			CheckInterval:     v.GetDuration("SCHEDULER_CHECK_INTERVAL"),
			JobLockTTL:        v.GetDuration("JOB_LOCK_TTL"),
		},
		Session: SessionConfig{
			CookieName: v.GetString("SESSION_COOKIE"),
			CheckInTTL: v.GetDuration("CHECKIN_TTL"),
		},
	}

	return config, nil
}
