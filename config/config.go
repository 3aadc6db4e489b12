package config

import (
	"os"
	"strconv"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

type SysConfig struct {
	Name     string `yaml:"name" json:"name"`
	Location string `yaml:"location" json:"location"`
	Listen   string `yaml:"listen" json:"listen"`
	Debug    bool   `yaml:"debug" json:"debug"`
}

type DBConfig struct {
	Type     string `yaml:"type" json:"type"`
	Host     string `yaml:"host" json:"host"`
	Port     int    `yaml:"port" json:"port"`
	Name     string `yaml:"name" json:"name"`
	User     string `yaml:"user" json:"user"`
	Password string `yaml:"password" json:"password"`
	SSLMode  string `yaml:"sslmode" json:"sslmode"`
}

type LogConfig struct {
	Mode       string `yaml:"mode" json:"mode"`
	FileEnable bool   `yaml:"file_enable" json:"file_enable"`
	Filename   string `yaml:"filename" json:"filename"`
}

type SessionConfig struct {
	Secret string `yaml:"secret" json:"secret"`
	MaxAge int    `yaml:"max_age" json:"max_age"`
}

// AdminConfig is the bootstrap identity provisioned at startup. Credentials
// are environment-only and never written back to the config file.
type AdminConfig struct {
	Username string `yaml:"-" json:"-"`
	Password string `yaml:"-" json:"-"`
	Email    string `yaml:"-" json:"-"`
}

type AppConfig struct {
	System   SysConfig     `yaml:"system" json:"system"`
	Database DBConfig      `yaml:"database" json:"database"`
	Logger   LogConfig     `yaml:"logger" json:"logger"`
	Session  SessionConfig `yaml:"session" json:"session"`
	Admin    AdminConfig   `yaml:"-" json:"-"`
}

var DefaultAppConfig = AppConfig{
	System: SysConfig{
		Name:     "greenbasket",
		Location: "Asia/Manila",
		Listen:   ":8000",
		Debug:    true,
	},
	Database: DBConfig{
		Type:     "postgres",
		Host:     "127.0.0.1",
		Port:     5432,
		Name:     "greenbasket",
		User:     "postgres",
		Password: "postgres",
		SSLMode:  "disable",
	},
	Logger: LogConfig{
		Mode:       "development",
		FileEnable: false,
		Filename:   "/var/greenbasket/greenbasket.log",
	},
	Session: SessionConfig{
		Secret: "greenbasket-secret",
		MaxAge: 86400 * 7,
	},
}

// LoadConfig reads the YAML config file if it exists and applies environment
// overrides on top. A missing file is not an error; the defaults apply.
func LoadConfig(cfile string) (*AppConfig, error) {
	cfg := DefaultAppConfig
	if cfile != "" {
		data, err := os.ReadFile(cfile)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, errors.Wrap(err, "parse config file")
			}
		case !os.IsNotExist(err):
			return nil, errors.Wrap(err, "read config file")
		}
	}

	setEnvString(&cfg.System.Listen, "GREENBASKET_LISTEN")
	setEnvString(&cfg.System.Location, "GREENBASKET_LOCATION")
	setEnvBool(&cfg.System.Debug, "GREENBASKET_DEBUG")

	setEnvString(&cfg.Database.Type, "GREENBASKET_DB_TYPE")
	setEnvString(&cfg.Database.Host, "GREENBASKET_DB_HOST")
	setEnvInt(&cfg.Database.Port, "GREENBASKET_DB_PORT")
	setEnvString(&cfg.Database.Name, "GREENBASKET_DB_NAME")
	setEnvString(&cfg.Database.User, "GREENBASKET_DB_USER")
	setEnvString(&cfg.Database.Password, "GREENBASKET_DB_PASSWORD")
	setEnvString(&cfg.Database.SSLMode, "GREENBASKET_DB_SSLMODE")

	setEnvString(&cfg.Logger.Mode, "GREENBASKET_LOG_MODE")
	setEnvBool(&cfg.Logger.FileEnable, "GREENBASKET_LOG_FILE_ENABLE")
	setEnvString(&cfg.Logger.Filename, "GREENBASKET_LOG_FILENAME")

	setEnvString(&cfg.Session.Secret, "GREENBASKET_SESSION_SECRET")
	setEnvInt(&cfg.Session.MaxAge, "GREENBASKET_SESSION_MAX_AGE")

	cfg.Admin.Username = getEnv("GREENBASKET_ADMIN_USERNAME", "admin")
	cfg.Admin.Password = os.Getenv("GREENBASKET_ADMIN_PASSWORD")
	cfg.Admin.Email = getEnv("GREENBASKET_ADMIN_EMAIL", "admin@example.com")

	return &cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func setEnvString(dst *string, key string) {
	if value := os.Getenv(key); value != "" {
		*dst = value
	}
}

func setEnvInt(dst *int, key string) {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			*dst = i
		}
	}
}

func setEnvBool(dst *bool, key string) {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			*dst = b
		}
	}
}
