package config

import (
	"errors"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// Record store backends.
const (
	StoreSheets   = "sheets"
	StorePostgres = "postgres"
	StoreMemory   = "memory"
)

type Config struct {
	Env       string
	Port      int
	APIPrefix string

	Store      StoreConfig
	Database   DatabaseConfig
	Redis      RedisConfig
	Session    SessionConfig
	JWT        JWTConfig
	CORS       CORSConfig
	Log        LogConfig
	Community  CommunityConfig
	Admin      AdminConfig
	Reflection ReflectionConfig
	Speech     SpeechConfig
	Poster     PosterConfig
	Metrics    MetricsConfig
}

// StoreConfig selects and addresses the tabular record store.
type StoreConfig struct {
	Backend              string
	AutoMigrate          bool
	SpreadsheetID        string
	CredentialsFile      string
	SubmissionsWorksheet string
	PromptsWorksheet     string
}

type DatabaseConfig struct {
	Host         string
	Port         int
	User         string
	Password     string
	Name         string
	SSLMode      string
	MaxOpenConns int
	MaxIdleConns int
}

type RedisConfig struct {
	Enabled  bool
	Host     string
	Port     int
	Password string
	DB       int
}

// SessionConfig controls visitor session retention.
type SessionConfig struct {
	CookieName string
	TTL        time.Duration
}

type JWTConfig struct {
	Secret     string
	Expiration time.Duration
}

type CORSConfig struct {
	AllowedOrigins []string
}

type LogConfig struct {
	Level  string
	Format string
}

// CommunityConfig holds the submission form rules.
type CommunityConfig struct {
	Passphrase    string
	RequireAuthor bool
}

// AdminConfig holds the shared admin secret. PasswordHash, when set, wins over Password.
type AdminConfig struct {
	Password     string
	PasswordHash string
}

// ReflectionConfig configures the generative reflection collaborator.
type ReflectionConfig struct {
	Enabled     bool
	APIKey      string
	Model       string
	Instruction string
}

// SpeechConfig configures the text-to-speech collaborator.
type SpeechConfig struct {
	Enabled bool
	Model   string
	Voice   string
}

// PosterConfig fixes the poster canvas text layout.
type PosterConfig struct {
	LineCapacity int
	WrapWidth    int
	TitleWidth   int
}

type MetricsConfig struct {
	Enabled bool
}

const defaultReflectionInstruction = "You are a gentle poetry mentor for a community reading room. " +
	"Write a short reflection on the poem: what it evokes, one image that stands out, and one suggestion. " +
	"End with a final line in the form 'Rating: N/10'."

func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	cfg := &Config{}

	cfg.Env = v.GetString("ENV")
	cfg.Port = v.GetInt("PORT")
	cfg.APIPrefix = v.GetString("API_PREFIX")

	cfg.Store = StoreConfig{
		Backend:              strings.ToLower(v.GetString("STORE_BACKEND")),
		AutoMigrate:          v.GetBool("STORE_AUTO_MIGRATE"),
		SpreadsheetID:        v.GetString("SHEETS_SPREADSHEET_ID"),
		CredentialsFile:      v.GetString("SHEETS_CREDENTIALS_FILE"),
		SubmissionsWorksheet: v.GetString("SHEETS_SUBMISSIONS_WORKSHEET"),
		PromptsWorksheet:     v.GetString("SHEETS_PROMPTS_WORKSHEET"),
	}

	cfg.Database = DatabaseConfig{
		Host:         v.GetString("DB_HOST"),
		Port:         v.GetInt("DB_PORT"),
		User:         v.GetString("DB_USER"),
		Password:     v.GetString("DB_PASSWORD"),
		Name:         v.GetString("DB_NAME"),
		SSLMode:      v.GetString("DB_SSL_MODE"),
		MaxOpenConns: v.GetInt("DB_MAX_OPEN_CONNS"),
		MaxIdleConns: v.GetInt("DB_MAX_IDLE_CONNS"),
	}

	cfg.Redis = RedisConfig{
		Enabled:  v.GetBool("ENABLE_REDIS"),
		Host:     v.GetString("REDIS_HOST"),
		Port:     v.GetInt("REDIS_PORT"),
		Password: v.GetString("REDIS_PASSWORD"),
		DB:       v.GetInt("REDIS_DB"),
	}

	cfg.Session = SessionConfig{
		CookieName: v.GetString("SESSION_COOKIE"),
		TTL:        parseDuration(v.GetString("SESSION_TTL"), 12*time.Hour),
	}

	cfg.JWT = JWTConfig{
		Secret:     v.GetString("JWT_SECRET"),
		Expiration: parseDuration(v.GetString("JWT_EXPIRATION"), 2*time.Hour),
	}

	cfg.CORS = CORSConfig{AllowedOrigins: splitAndTrim(v.GetString("ALLOWED_ORIGINS"))}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	cfg.Community = CommunityConfig{
		Passphrase:    v.GetString("COMMUNITY_PASSPHRASE"),
		RequireAuthor: v.GetBool("COMMUNITY_REQUIRE_AUTHOR"),
	}

	cfg.Admin = AdminConfig{
		Password:     v.GetString("ADMIN_PASSWORD"),
		PasswordHash: v.GetString("ADMIN_PASSWORD_HASH"),
	}

	cfg.Reflection = ReflectionConfig{
		Enabled:     v.GetBool("ENABLE_REFLECTION"),
		APIKey:      v.GetString("GEMINI_API_KEY"),
		Model:       v.GetString("REFLECTION_MODEL"),
		Instruction: v.GetString("REFLECTION_INSTRUCTION"),
	}

	cfg.Speech = SpeechConfig{
		Enabled: v.GetBool("ENABLE_SPEECH"),
		Model:   v.GetString("SPEECH_MODEL"),
		Voice:   v.GetString("SPEECH_VOICE"),
	}

	cfg.Poster = PosterConfig{
		LineCapacity: positiveOr(v.GetInt("POSTER_LINE_CAPACITY"), 11),
		WrapWidth:    positiveOr(v.GetInt("POSTER_WRAP_WIDTH"), 30),
		TitleWidth:   positiveOr(v.GetInt("POSTER_TITLE_WIDTH"), 40),
	}

	cfg.Metrics = MetricsConfig{Enabled: v.GetBool("ENABLE_METRICS")}

	if cfg.Env == EnvProduction && len(cfg.CORS.AllowedOrigins) == 0 {
		return nil, errors.New("ALLOWED_ORIGINS must list the site origins in production")
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("PORT", 8080)
	v.SetDefault("API_PREFIX", "/api/v1")

	v.SetDefault("STORE_BACKEND", StoreMemory)
	v.SetDefault("STORE_AUTO_MIGRATE", true)
	v.SetDefault("SHEETS_SPREADSHEET_ID", "")
	v.SetDefault("SHEETS_CREDENTIALS_FILE", "reflective-room-service-account.json")
	v.SetDefault("SHEETS_SUBMISSIONS_WORKSHEET", "Submissions")
	v.SetDefault("SHEETS_PROMPTS_WORKSHEET", "WeeklyPrompt")

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "reflective_room")
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_MAX_OPEN_CONNS", 10)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)

	v.SetDefault("ENABLE_REDIS", false)
	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("SESSION_COOKIE", "rr_session")
	v.SetDefault("SESSION_TTL", "12h")

	v.SetDefault("JWT_SECRET", "dev_secret")
	v.SetDefault("JWT_EXPIRATION", "2h")

	v.SetDefault("ALLOWED_ORIGINS", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	v.SetDefault("COMMUNITY_PASSPHRASE", "")
	v.SetDefault("COMMUNITY_REQUIRE_AUTHOR", false)
	v.SetDefault("ADMIN_PASSWORD", "")
	v.SetDefault("ADMIN_PASSWORD_HASH", "")

	v.SetDefault("ENABLE_REFLECTION", false)
	v.SetDefault("GEMINI_API_KEY", "")
	v.SetDefault("REFLECTION_MODEL", "gemini-2.5-flash")
	v.SetDefault("REFLECTION_INSTRUCTION", defaultReflectionInstruction)
	v.SetDefault("ENABLE_SPEECH", false)
	v.SetDefault("SPEECH_MODEL", "gemini-2.5-flash-preview-tts")
	v.SetDefault("SPEECH_VOICE", "Kore")

	v.SetDefault("POSTER_LINE_CAPACITY", 11)
	v.SetDefault("POSTER_WRAP_WIDTH", 30)
	v.SetDefault("POSTER_TITLE_WIDTH", 40)

	v.SetDefault("ENABLE_METRICS", true)
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}

	return d
}

func positiveOr(value, fallback int) int {
	if value <= 0 {
		return fallback
	}
	return value
}

func splitAndTrim(raw string) []string {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}
