package config

import (
	"strconv"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix namespaces the environment variables read by parseEnv, e.g.
// AIR_GRPC_ADDR or AIR_DATABASE_DSN.
const EnvPrefix = "AIR"

// parseEnv overlays every AIR_* variable present in the environment.
// Malformed numbers or durations panic, like malformed flags do.
func parseEnv(config *Config) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	texts := map[string]*string{
		"grpc_addr":       &config.EndpointAddrGRPC,
		"metrics_addr":    &config.MetricsAddr,
		"database_driver": &config.DatabaseDriver,
		"database_dsn":    &config.DatabaseDSN,
		"secret_key":      &config.SecretKey,
		"redis_addr":      &config.RedisAddr,
		"log_backend":     &config.LogBackend,
		"log_level":       &config.LogLevel,
	}
	for key, dst := range texts {
		if v.IsSet(key) {
			*dst = v.GetString(key)
		}
	}

	ints := map[string]*int{
		"min_password_length":  &config.MinPasswordLength,
		"login_attempts_limit": &config.LoginAttemptsLimit,
	}
	for key, dst := range ints {
		if v.IsSet(key) {
			n, err := strconv.Atoi(v.GetString(key))
			if err != nil {
				panic(err)
			}
			*dst = n
		}
	}

	durations := map[string]*time.Duration{
		"access_token_ttl":      &config.AccessTokenValidityDuration,
		"login_attempts_window": &config.LoginAttemptsWindow,
	}
	for key, dst := range durations {
		if v.IsSet(key) {
			d, err := time.ParseDuration(v.GetString(key))
			if err != nil {
				panic(err)
			}
			*dst = d
		}
	}
}
