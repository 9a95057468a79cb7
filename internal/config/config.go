package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"github.com/at-ishikawa/wordbank/internal/review"
)

const (
	StorageDriverYAML   = "yaml"
	StorageDriverMySQL  = "mysql"
	StorageDriverSQLite = "sqlite"

	DictionaryRapidAPI       = "rapidapi"
	DictionaryFreeDictionary = "free_dictionary"
)

type Config struct {
	Storage      StorageConfig          `mapstructure:"storage"`
	Dictionaries DictionariesConfig     `mapstructure:"dictionaries"`
	Scheduler    review.SchedulerConfig `mapstructure:"scheduler"`
	Server       ServerConfig           `mapstructure:"server"`
	Templates    TemplatesConfig        `mapstructure:"templates"`
	Outputs      OutputsConfig          `mapstructure:"outputs"`
}

type StorageConfig struct {
	Driver     string         `mapstructure:"driver" validate:"oneof=yaml mysql sqlite"`
	YAMLPath   string         `mapstructure:"yaml_path" validate:"required_if=Driver yaml"`
	SQLitePath string         `mapstructure:"sqlite_path" validate:"required_if=Driver sqlite"`
	MySQL      DatabaseConfig `mapstructure:"mysql"`
}

type DatabaseConfig struct {
	Host            string            `mapstructure:"host"`
	Port            int               `mapstructure:"port" validate:"gte=0,lte=65535"`
	Database        string            `mapstructure:"database"`
	Username        string            `mapstructure:"username"`
	Password        string            `mapstructure:"password"`
	TLS             bool              `mapstructure:"tls"`
	Params          map[string]string `mapstructure:"params"`
	MaxOpenConns    int               `mapstructure:"max_open_conns" validate:"gte=0"`
	MaxIdleConns    int               `mapstructure:"max_idle_conns" validate:"gte=0"`
	ConnMaxLifetime int               `mapstructure:"conn_max_lifetime_seconds" validate:"gte=0"`
}

type DictionariesConfig struct {
	API            string               `mapstructure:"api" validate:"oneof=rapidapi free_dictionary"`
	RetryAttempts  uint                 `mapstructure:"retry_attempts" validate:"gte=1,lte=10"`
	RapidAPI       RapidAPIConfig       `mapstructure:"rapidapi"`
	FreeDictionary FreeDictionaryConfig `mapstructure:"free_dictionary"`
}

type RapidAPIConfig struct {
	CacheDirectory string `mapstructure:"cache_directory"`
	Host           string `mapstructure:"host"`
	Key            string `mapstructure:"key"`
}

type FreeDictionaryConfig struct {
	BaseURL string `mapstructure:"base_url" validate:"url"`
}

type ServerConfig struct {
	Port int        `mapstructure:"port" validate:"gte=1,lte=65535"`
	CORS CORSConfig `mapstructure:"cors"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

type TemplatesConfig struct {
	ReviewSheetTemplate string `mapstructure:"review_sheet_template" validate:"omitempty,file"`
}

type OutputsConfig struct {
	ReviewSheetDirectory string `mapstructure:"review_sheet_directory"`
}

type ConfigLoader struct {
	viper      *viper.Viper
	validator  *validator.Validate
	translator ut.Translator
}

func NewConfigLoader(configFile string) (*ConfigLoader, error) {
	validate, trans, err := newValidator()
	if err != nil {
		return nil, fmt.Errorf("failed to create new validator: %w", err)
	}

	v := viper.New()
	v.SetConfigType("yaml")
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/wordbank")
	}

	return &ConfigLoader{
		viper:      v,
		validator:  validate,
		translator: trans,
	}, nil
}

// Load is a shortcut of NewConfigLoader(configFile).Load().
func Load(configFile string) (*Config, error) {
	loader, err := NewConfigLoader(configFile)
	if err != nil {
		return nil, err
	}
	return loader.Load()
}

func (loader *ConfigLoader) Load() (*Config, error) {
	v := loader.viper

	v.SetDefault("storage.driver", StorageDriverYAML)
	v.SetDefault("storage.yaml_path", filepath.Join("data", "wordbank.yml"))
	v.SetDefault("storage.sqlite_path", filepath.Join("data", "wordbank.db"))
	v.SetDefault("storage.mysql.host", "localhost")
	v.SetDefault("storage.mysql.port", 3306)
	v.SetDefault("storage.mysql.database", "wordbank")
	v.SetDefault("storage.mysql.username", "user")
	v.SetDefault("dictionaries.api", DictionaryRapidAPI)
	v.SetDefault("dictionaries.retry_attempts", 3)
	v.SetDefault("dictionaries.rapidapi.cache_directory", filepath.Join("dictionaries", "rapidapi"))
	v.SetDefault("dictionaries.free_dictionary.base_url", "https://api.dictionaryapi.dev/api/v2/entries/en")
	// Template is optional - if not specified, will use embedded fallback template
	v.SetDefault("templates.review_sheet_template", "")
	v.SetDefault("outputs.review_sheet_directory", filepath.Join("outputs", "review_sheet"))
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.cors.allowed_origins", []string{"http://localhost:3000"})
	setSchedulerDefaults(v, review.DefaultSchedulerConfig())

	v.SetEnvPrefix("WORDBANK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Bind RapidAPI config to environment variables only (not from config file)
	if err := v.BindEnv("dictionaries.rapidapi.host", "RAPID_API_HOST"); err != nil {
		return nil, fmt.Errorf("failed to bind RAPID_API_HOST environment variable: %w", err)
	}
	if err := v.BindEnv("dictionaries.rapidapi.key", "RAPID_API_KEY"); err != nil {
		return nil, fmt.Errorf("failed to bind RAPID_API_KEY environment variable: %w", err)
	}
	if err := v.BindEnv("storage.mysql.password", "DB_PASSWORD"); err != nil {
		return nil, fmt.Errorf("failed to bind DB_PASSWORD environment variable: %w", err)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("configuration file found but could not be read: %w. Please check the file format and permissions", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration format: %w", err)
	}

	if err := loader.validate(cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (loader *ConfigLoader) validate(cfg Config) error {
	err := loader.validator.Struct(cfg)
	if err == nil {
		return nil
	}
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return fmt.Errorf("validator.Struct() > %w", err)
	}
	errorMsgs := make([]string, 0, len(validationErrors))
	for _, e := range validationErrors {
		errorMsgs = append(errorMsgs, e.Translate(loader.translator))
	}
	return fmt.Errorf("invalid configuration: %s", strings.Join(errorMsgs, ", "))
}

func setSchedulerDefaults(v *viper.Viper, defaults review.SchedulerConfig) {
	v.SetDefault("scheduler.min_interval_days", defaults.MinIntervalDays)
	v.SetDefault("scheduler.max_interval_days", defaults.MaxIntervalDays)
	v.SetDefault("scheduler.min_stability", defaults.MinStability)
	v.SetDefault("scheduler.hard_interval_factor", defaults.HardIntervalFactor)
	v.SetDefault("scheduler.good_interval_factor", defaults.GoodIntervalFactor)
	v.SetDefault("scheduler.easy_interval_factor", defaults.EasyIntervalFactor)
	v.SetDefault("scheduler.lapse_penalty", defaults.LapsePenalty)
	v.SetDefault("scheduler.hard_difficulty_delta", defaults.HardDifficultyDelta)
	v.SetDefault("scheduler.good_difficulty_delta", defaults.GoodDifficultyDelta)
	v.SetDefault("scheduler.easy_difficulty_delta", defaults.EasyDifficultyDelta)
	v.SetDefault("scheduler.lapse_difficulty_delta", defaults.LapseDifficultyDelta)
	v.SetDefault("scheduler.initial_stability", defaults.InitialStability)
	v.SetDefault("scheduler.initial_difficulty", defaults.InitialDifficulty)
}
