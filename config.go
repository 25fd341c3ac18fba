package gtfsrtsink

import (
	"os"
	"strconv"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/theoremus-urban-solutions/gtfsrt-location-sink/store"
)

type ServerConfig struct {
	Route string `yaml:"route"`
	Port  int    `yaml:"port" validate:"gte=0"`

	// Mode "production" selects the TLS-terminated listener; anything else
	// listens plain. Mirrors the NODE_ENV convention of the feed publisher
	// deployments this sink replaces.
	Mode string `yaml:"mode"`

	TLSKeyFile  string `yaml:"tlsKeyFile"`
	TLSCertFile string `yaml:"tlsCertFile"`
	Passphrase  string `yaml:"passphrase"`
}

type LogConfig struct {
	Level      string `yaml:"level" validate:"omitempty,oneof=debug info warn error"`
	FilePath   string `yaml:"filePath"`
	MaxAgeDays int    `yaml:"maxAgeDays" validate:"gte=0"`
}

type AppConfig struct {
	Server ServerConfig `yaml:"server"`
	Store  store.Config `yaml:"store"`
	Log    LogConfig    `yaml:"log"`
}

var Config AppConfig

// LoadAppConfig reads config.yml when present, applies environment
// overrides, validates and fills defaults. A missing config file is fine;
// the sink runs on env vars and defaults alone.
func LoadAppConfig() error {
	var cfg AppConfig

	data, err := os.ReadFile("config.yml")
	if err == nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return err
		}
	} else if !os.IsNotExist(err) {
		return err
	}

	applyEnvOverrides(&cfg)

	v := validator.New()
	if err := v.Struct(cfg); err != nil {
		return err
	}

	if cfg.Server.Route == "" {
		cfg.Server.Route = "/post"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 55555
	}
	if cfg.Server.TLSKeyFile == "" {
		cfg.Server.TLSKeyFile = "./p"
	}
	if cfg.Server.TLSCertFile == "" {
		cfg.Server.TLSCertFile = "./f"
	}
	if cfg.Server.Passphrase == "" {
		cfg.Server.Passphrase = "phrase"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}

	Config = cfg
	return nil
}

// Env names keep the contract of the original deployment (ROUTE, PORT,
// NODE_ENV, PHRASE); the rest follow the same flat style.
func applyEnvOverrides(cfg *AppConfig) {
	setString(&cfg.Server.Route, "ROUTE")
	setInt(&cfg.Server.Port, "PORT")
	setString(&cfg.Server.Mode, "NODE_ENV")
	setString(&cfg.Server.Passphrase, "PHRASE")
	setString(&cfg.Server.TLSKeyFile, "TLS_KEY_FILE")
	setString(&cfg.Server.TLSCertFile, "TLS_CERT_FILE")

	setString(&cfg.Store.Backend, "STORE_BACKEND")
	setString(&cfg.Store.URI, "MONGODB_URI")
	setString(&cfg.Store.Database, "MONGODB_DATABASE")
	setString(&cfg.Store.Collection, "MONGODB_COLLECTION")
	setString(&cfg.Store.Addr, "REDIS_ADDR")
	setString(&cfg.Store.Password, "REDIS_PASSWORD")
	setInt(&cfg.Store.DB, "REDIS_DB")

	setString(&cfg.Log.Level, "LOG_LEVEL")
	setString(&cfg.Log.FilePath, "LOG_FILE_PATH")
	setInt(&cfg.Log.MaxAgeDays, "LOG_MAX_AGE_DAYS")
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			*dst = i
		}
	}
}
