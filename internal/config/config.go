// Package config loads the application configuration from a YAML file and
// the environment, and validates it before anything connects to a database.
package config

import (
	"fmt"
	"path/filepath"
	"strings"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

type Config struct {
	User       string           `mapstructure:"user" validate:"required"`
	Language   string           `mapstructure:"language" validate:"required"`
	Database   DatabaseConfig   `mapstructure:"database"`
	Wordlists  WordlistsConfig  `mapstructure:"wordlists"`
	Dictionary DictionaryConfig `mapstructure:"dictionary"`
	Lesson     LessonConfig     `mapstructure:"lesson"`
	Review     ReviewConfig     `mapstructure:"review"`
}

type DatabaseConfig struct {
	Driver          string `mapstructure:"driver" validate:"omitempty,oneof=sqlite3 mysql"`
	Path            string `mapstructure:"path"`
	Host            string `mapstructure:"host"`
	Port            int    `mapstructure:"port" validate:"gte=0,lte=65535"`
	Database        string `mapstructure:"database"`
	Username        string `mapstructure:"username"`
	Password        string `mapstructure:"password"`
	MaxOpenConns    int    `mapstructure:"max_open_conns"`
	MaxIdleConns    int    `mapstructure:"max_idle_conns"`
	ConnMaxLifetime int    `mapstructure:"conn_max_lifetime_seconds"`
}

type WordlistsConfig struct {
	Directory string `mapstructure:"directory" validate:"omitempty,dir"`
}

type DictionaryConfig struct {
	BaseURL        string `mapstructure:"base_url"`
	CacheDirectory string `mapstructure:"cache_directory"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds" validate:"gte=0"`
}

type LessonConfig struct {
	BatchSize int `mapstructure:"batch_size" validate:"gt=0"`
}

type ReviewConfig struct {
	Limit int `mapstructure:"limit" validate:"gt=0"`
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
		v.AddConfigPath("$HOME/.config/gloser")
	}

	return &ConfigLoader{
		viper:      v,
		validator:  validate,
		translator: trans,
	}, nil
}

func (loader *ConfigLoader) Load() (*Config, error) {
	v := loader.viper

	v.SetDefault("user", "local")
	v.SetDefault("language", "no")
	v.SetDefault("database.driver", "sqlite3")
	v.SetDefault("database.path", filepath.Join(".", "gloser.db"))
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 3306)
	v.SetDefault("database.database", "gloser")
	v.SetDefault("database.username", "gloser")
	v.SetDefault("dictionary.base_url", "https://ord.uib.no")
	v.SetDefault("dictionary.cache_directory", filepath.Join("dictionaries", "ordbokene"))
	v.SetDefault("dictionary.timeout_seconds", 10)
	v.SetDefault("lesson.batch_size", 5)
	v.SetDefault("review.limit", 50)

	// Bind the database password to an environment variable only, never the
	// config file.
	if err := v.BindEnv("database.password", "GLOSER_DB_PASSWORD"); err != nil {
		return nil, fmt.Errorf("failed to bind GLOSER_DB_PASSWORD environment variable: %w", err)
	}
	if err := v.BindEnv("user", "GLOSER_USER"); err != nil {
		return nil, fmt.Errorf("failed to bind GLOSER_USER environment variable: %w", err)
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("configuration file found but could not be read: %w. Please check the file format and permissions", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration format: %w", err)
	}

	if err := loader.validator.Struct(cfg); err != nil {
		validationErrors := err.(validator.ValidationErrors)
		var errorMsgs []string
		for _, e := range validationErrors {
			errorMsgs = append(errorMsgs, e.Translate(loader.translator))
		}
		return nil, fmt.Errorf("invalid configuration: %s", strings.Join(errorMsgs, ", "))
	}

	return &cfg, nil
}
