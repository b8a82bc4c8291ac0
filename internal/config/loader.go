package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"

	"github.com/rpattn/portfolio/internal/db"
)

// Config is the full server configuration.
type Config struct {
	Database db.Config
	Server   Server
	Auth     Auth
	CORS     CORS
}

// Server holds the HTTP listener settings.
type Server struct {
	Addr         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// Auth holds the bearer token settings.
type Auth struct {
	Secret string
}

// CORS holds the allowed browser origins.
type CORS struct {
	AllowedOrigins []string
}

// Default returns the configuration used when no config file or environment
// overrides are present.
func Default() Config {
	return Config{
		Database: db.DefaultConfig(),
		Server: Server{
			Addr:         ":8080",
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		CORS: CORS{AllowedOrigins: []string{"http://localhost:3000"}},
	}
}

// Load reads config.yaml from configPath with environment overrides
// (PORTFOLIO_DATABASE_HOST and friends). A missing file is fine: defaults
// plus environment apply.
func Load(configPath string) (Config, error) {
	cfg := Default()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(configPath)
	v.AutomaticEnv()
	v.SetEnvPrefix("PORTFOLIO")

	for _, key := range []string{
		"database.host", "database.port", "database.user",
		"database.password", "database.dbname", "database.sslmode",
		"server.addr", "auth.secret", "cors.allowed_origins",
	} {
		_ = v.BindEnv(key)
	}

	if err := v.ReadInConfig(); err != nil {
		fmt.Println("No config.yaml found, using defaults and env vars")
	} else {
		fmt.Println("Loaded config.yaml")
	}

	if v.IsSet("database.host") {
		cfg.Database.Host = v.GetString("database.host")
	}
	if v.IsSet("database.port") {
		cfg.Database.Port = v.GetInt("database.port")
	}
	if v.IsSet("database.user") {
		cfg.Database.User = v.GetString("database.user")
	}
	if v.IsSet("database.password") {
		cfg.Database.Password = v.GetString("database.password")
	}
	if v.IsSet("database.dbname") {
		cfg.Database.DBName = v.GetString("database.dbname")
	}
	if v.IsSet("database.sslmode") {
		cfg.Database.SSLMode = v.GetString("database.sslmode")
	}
	if v.IsSet("server.addr") {
		cfg.Server.Addr = v.GetString("server.addr")
	}
	if v.IsSet("server.read_timeout") {
		cfg.Server.ReadTimeout = v.GetDuration("server.read_timeout")
	}
	if v.IsSet("server.write_timeout") {
		cfg.Server.WriteTimeout = v.GetDuration("server.write_timeout")
	}
	if v.IsSet("server.idle_timeout") {
		cfg.Server.IdleTimeout = v.GetDuration("server.idle_timeout")
	}
	if v.IsSet("auth.secret") {
		cfg.Auth.Secret = v.GetString("auth.secret")
	}
	if v.IsSet("cors.allowed_origins") {
		cfg.CORS.AllowedOrigins = v.GetStringSlice("cors.allowed_origins")
	}

	return cfg, nil
}
