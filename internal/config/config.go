package config

import (
	"github.com/Jnpaul1984/Cricksy-Scorer-sub001/internal/logger"
)

type Config struct {
	Logger   logger.LoggerConfig `mapstructure:"logger"`
	Server   ServerConfig        `mapstructure:"server"`
	Postgres PostgresConfig      `mapstructure:"postgres"`
}

// ServerConfig drives the HTTP listener. Timeouts are seconds.
type ServerConfig struct {
	Host            string `mapstructure:"host"`
	Port            int    `mapstructure:"port"`
	ReadTimeout     int    `mapstructure:"readTimeout"`
	WriteTimeout    int    `mapstructure:"writeTimeout"`
	ShutdownTimeout int    `mapstructure:"shutdownTimeout"`
}

// PostgresConfig mirrors pgxpool tuning knobs; lifetimes are seconds.
// MaxConns/MinConns are int32 because pgxpool takes them verbatim.
type PostgresConfig struct {
	Host              string `mapstructure:"host"`
	Port              int    `mapstructure:"port"`
	User              string `mapstructure:"user"`
	Password          string `mapstructure:"password"`
	DBName            string `mapstructure:"dbname"`
	SSLMode           string `mapstructure:"sslmode"`
	MaxConns          int32  `mapstructure:"maxConns"`
	MinConns          int32  `mapstructure:"minConns"`
	MaxConnLifetime   int    `mapstructure:"maxConnLifetime"`
	MaxConnIdleTime   int    `mapstructure:"maxConnIdleTime"`
	HealthCheckPeriod int    `mapstructure:"healthCheckPeriod"`
}
