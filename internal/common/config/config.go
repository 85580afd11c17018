// internal/common/config/config.go
package config

import "fmt"

// Config is the main application configuration struct.
type Config struct {
	App      AppConfig                `mapstructure:"app"`
	Camunda  CamundaConfig            `mapstructure:"camunda"`
	Database DatabaseConfig           `mapstructure:"database"`
	Quoting  QuotingConfig            `mapstructure:"quoting"`
	Carriers map[string]CarrierConfig `mapstructure:"carriers"`
	Logging  LoggingConfig            `mapstructure:"logging"`
}

// --- Core App/Infrastructure Config ---
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

type CamundaConfig struct {
	BrokerAddress  string `mapstructure:"broker_address"`
	MaxJobsActive  int    `mapstructure:"max_jobs_active"`
	Timeout        int    `mapstructure:"timeout"`         // milliseconds
	RequestTimeout int    `mapstructure:"request_timeout"` // milliseconds
}

type DatabaseConfig struct {
	Postgres      PostgresConfig      `mapstructure:"postgres"`
	Elasticsearch ElasticsearchConfig `mapstructure:"elasticsearch"`
	Redis         RedisConfig         `mapstructure:"redis"`
}

type PostgresConfig struct {
	Host           string `mapstructure:"host"`
	Port           int    `mapstructure:"port"`
	Database       string `mapstructure:"database"`
	User           string `mapstructure:"user"`
	Password       string `mapstructure:"password"`
	MaxConnections int    `mapstructure:"max_connections"`
	MaxIdle        int    `mapstructure:"max_idle"`
	SSLMode        string `mapstructure:"sslmode"`
}

// GetDSN returns the PostgreSQL connection string.
func (p PostgresConfig) GetDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		p.Host, p.Port, p.User, p.Password, p.Database, p.SSLMode,
	)
}

type ElasticsearchConfig struct {
	Addresses []string `mapstructure:"addresses"`
	Username  string   `mapstructure:"username"`
	Password  string   `mapstructure:"password"`
	// OutcomeIndex is where quote outcomes are written for agency search.
	OutcomeIndex string `mapstructure:"outcome_index"`
}

type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// QuotingConfig holds settings shared by every carrier adapter run.
type QuotingConfig struct {
	// RegistryPath points at the carrier-profile registry JSON.
	RegistryPath string `mapstructure:"registry_path"`
	// CallTimeout bounds every carrier HTTP call, milliseconds. Several
	// carriers document "this can take up to 30 seconds".
	CallTimeout int `mapstructure:"call_timeout"`
	// ClaimsHorizonYears is the default loss-history horizon when a
	// carrier profile does not set its own.
	ClaimsHorizonYears int `mapstructure:"claims_horizon_years"`
}

// CarrierConfig holds per-carrier connection settings. Appetite data
// (limit lists, question maps) lives in the profile registry, not here.
type CarrierConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Host     string `mapstructure:"host"`
	Sandbox  bool   `mapstructure:"sandbox"`
	Scheme   string `mapstructure:"scheme"` // basic | bearer | api_key
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	APIKey   string `mapstructure:"api_key"`
	ClientID string `mapstructure:"client_id"`
	Secret   string `mapstructure:"secret"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}
