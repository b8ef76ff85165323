// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package config

import (
	"net/url"
	"time"
)

const (
	ProfileCacheKratos = "kratos"
	ProfileCacheRedis  = "redis"

	redacted = "[redacted]"
)

// EnvSpec is the basic environment configuration setup needed for the app to start
type EnvSpec struct {
	OtelGRPCEndpoint string `envconfig:"otel_grpc_endpoint"`
	OtelHTTPEndpoint string `envconfig:"otel_http_endpoint"`
	TracingEnabled   bool   `envconfig:"tracing_enabled" default:"true"`

	KratosAdminURL     string `envconfig:"kratos_admin_url" required:"true"`
	InvitationLifetime string `envconfig:"invitation_lifetime" default:"24h"`

	ProfileCacheBackend string `envconfig:"profile_cache_backend" default:"kratos"`
	RedisURL            string `envconfig:"redis_url"`

	LogLevel string `envconfig:"log_level" default:"error"`
	Debug    bool   `envconfig:"debug" default:"false"`

	Port int `envconfig:"port" default:"8080"`

	DSN string `envconfig:"DSN" required:"true"`

	DBMaxConns        int32         `envconfig:"db_max_conns" default:"25"`
	DBMinConns        int32         `envconfig:"db_min_conns" default:"2"`
	DBMaxConnLifetime time.Duration `envconfig:"db_max_conn_lifetime" default:"1h"`
	DBMaxConnIdleTime time.Duration `envconfig:"db_max_conn_idle_time" default:"30m"`

	AuthenticationEnabled bool     `envconfig:"authentication_enabled" default:"false"`
	JWTIssuer             string   `envconfig:"jwt_issuer"`
	JWKSURL               string   `envconfig:"jwks_url"`
	AllowedSubjects       []string `envconfig:"allowed_subjects"`
	RequiredScope         string   `envconfig:"required_scope"`

	AuthorizationEnabled bool   `envconfig:"authorization_enabled" default:"false"`
	OpenfgaApiScheme     string `envconfig:"openfga_api_scheme" default:""`
	OpenfgaApiHost       string `envconfig:"openfga_api_host"`
	OpenfgaApiToken      string `envconfig:"openfga_api_token"`
	OpenfgaStoreId       string `envconfig:"openfga_store_id"`
	OpenfgaModelId       string `envconfig:"openfga_authorization_model_id" default:""`

	DefaultPlan string        `envconfig:"default_plan" default:"starter"`
	TrialPeriod time.Duration `envconfig:"trial_period" default:"336h"`

	SyncInitialDelay time.Duration `envconfig:"sync_initial_delay" default:"1s"`
	SyncRetryDelay   time.Duration `envconfig:"sync_retry_delay" default:"500ms"`
	SyncMaxAttempts  int           `envconfig:"sync_max_attempts" default:"3"`
}

// Redacted returns a copy safe to log: connection string passwords and API tokens are masked.
func (e EnvSpec) Redacted() EnvSpec {
	e.DSN = redactURL(e.DSN)
	e.RedisURL = redactURL(e.RedisURL)

	if e.OpenfgaApiToken != "" {
		e.OpenfgaApiToken = redacted
	}

	return e
}

// redactURL masks the password of URL shaped values, anything else is masked whole.
func redactURL(v string) string {
	if v == "" {
		return ""
	}

	u, err := url.Parse(v)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return redacted
	}

	return u.Redacted()
}
