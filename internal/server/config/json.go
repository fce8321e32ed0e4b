package config

import (
	"encoding/json"
	"os"

	"github.com/s-r-jones/deep-dive-air/internal/flagx"
	"github.com/s-r-jones/deep-dive-air/internal/timex"
)

// JsonConfig is the on-disk shape of the configuration file. Durations use
// timex.Duration so both "15m" and integer nanoseconds are accepted.
type JsonConfig struct {
	EndpointAddrGRPC            string         `json:"endpoint_addr_grpc"`
	MetricsAddr                 string         `json:"metrics_addr"`
	DatabaseDriver              string         `json:"database_driver"`
	DatabaseDSN                 string         `json:"database_dsn"`
	SecretKey                   string         `json:"secret_key"`
	AccessTokenValidityDuration timex.Duration `json:"access_token_validity_duration"`
	MinPasswordLength           int            `json:"min_password_length"`
	RedisAddr                   string         `json:"redis_addr"`
	LoginAttemptsLimit          int            `json:"login_attempts_limit"`
	LoginAttemptsWindow         timex.Duration `json:"login_attempts_window"`
	LogBackend                  string         `json:"log_backend"`
	LogLevel                    string         `json:"log_level"`
}

// parseJson loads the file named by -c or -config, if any, and copies every
// field it sets into config. Unreadable or malformed files panic.
func parseJson(config *Config) {

	// try flags
	jsonConfigFile := flagx.JsonConfigFlags()

	// nothing to load
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	err = json.Unmarshal(file, c)
	if err != nil {
		panic(err)
	}

	setString(&config.EndpointAddrGRPC, c.EndpointAddrGRPC)
	setString(&config.MetricsAddr, c.MetricsAddr)
	setString(&config.DatabaseDriver, c.DatabaseDriver)
	setString(&config.DatabaseDSN, c.DatabaseDSN)
	setString(&config.SecretKey, c.SecretKey)
	if c.AccessTokenValidityDuration.Duration != 0 {
		config.AccessTokenValidityDuration = c.AccessTokenValidityDuration.Duration
	}
	setInt(&config.MinPasswordLength, c.MinPasswordLength)
	setString(&config.RedisAddr, c.RedisAddr)
	setInt(&config.LoginAttemptsLimit, c.LoginAttemptsLimit)
	if c.LoginAttemptsWindow.Duration != 0 {
		config.LoginAttemptsWindow = c.LoginAttemptsWindow.Duration
	}
	setString(&config.LogBackend, c.LogBackend)
	setString(&config.LogLevel, c.LogLevel)
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func setInt(dst *int, v int) {
	if v != 0 {
		*dst = v
	}
}
