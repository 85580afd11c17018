// internal/workers/quoting/get-carrier-quotes/config.go
package getcarrierquotes

import "time"

type Config struct {
	// Timeout bounds one whole quoting run, all carriers included. Keep it
	// above the per-carrier transport timeout or slow carriers can never
	// finish.
	Timeout time.Duration
	// RequestTimeout bounds one engine command, complete retries included.
	RequestTimeout time.Duration
	MaxJobsActive  int
}

func LoadConfig() *Config {
	return &Config{
		Timeout:        120 * time.Second,
		RequestTimeout: 30 * time.Second,
		MaxJobsActive:  5,
	}
}
