package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/photojournal/internal/flagx"
	"github.com/dmitrijs2005/photojournal/internal/timex"
)

// JsonConfig is the on-disk shape of the optional configuration file.
// Durations accept both "15m"-style strings and integer nanoseconds.
type JsonConfig struct {
	EndpointAddrHTTP       string          `json:"endpoint_addr_http"`
	DatabaseDSN            string          `json:"database_dsn"`
	SecretKey              string          `json:"secret_key"`
	TokenValidityDuration  *timex.Duration `json:"token_validity_duration"`
	LogLevel               string          `json:"log_level"`
	AllowedOrigins         []string        `json:"allowed_origins"`
	AuthRateLimit          float64         `json:"auth_rate_limit"`
	AuthRateBurst          int             `json:"auth_rate_burst"`
	DBMaxOpenConns         int             `json:"db_max_open_conns"`
	DBMaxIdleConns         int             `json:"db_max_idle_conns"`
	DBConnMaxLifetime      *timex.Duration `json:"db_conn_max_lifetime"`
	S3AccessKey            string          `json:"s3_access_key"`
	S3SecretKey            string          `json:"s3_secret_key"`
	S3Bucket               string          `json:"s3_bucket"`
	S3Region               string          `json:"s3_region"`
	S3BaseEndpoint         string          `json:"s3_base_endpoint"`
	S3PublicBaseURL        string          `json:"s3_public_base_url"`
	PhotoUploadURLValidity *timex.Duration `json:"photo_upload_url_validity"`
}

// parseJson overlays values from the file named by -c/-config. Keys absent
// from the file keep their current value. An unreadable or invalid file
// panics: the process must not start half-configured.
func parseJson(config *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()

	// nothing to load
	if jsonConfigFile == "" {
		return
	}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	setString(&config.EndpointAddrHTTP, c.EndpointAddrHTTP)
	setString(&config.DatabaseDSN, c.DatabaseDSN)
	setString(&config.SecretKey, c.SecretKey)
	setString(&config.LogLevel, c.LogLevel)
	setString(&config.S3AccessKey, c.S3AccessKey)
	setString(&config.S3SecretKey, c.S3SecretKey)
	setString(&config.S3Bucket, c.S3Bucket)
	setString(&config.S3Region, c.S3Region)
	setString(&config.S3BaseEndpoint, c.S3BaseEndpoint)
	setString(&config.S3PublicBaseURL, c.S3PublicBaseURL)

	if c.TokenValidityDuration != nil {
		config.TokenValidityDuration = c.TokenValidityDuration.Duration
	}
	if c.DBConnMaxLifetime != nil {
		config.DBConnMaxLifetime = c.DBConnMaxLifetime.Duration
	}
	if c.PhotoUploadURLValidity != nil {
		config.PhotoUploadURLValidity = c.PhotoUploadURLValidity.Duration
	}
	if len(c.AllowedOrigins) > 0 {
		config.AllowedOrigins = c.AllowedOrigins
	}
	if c.AuthRateLimit > 0 {
		config.AuthRateLimit = c.AuthRateLimit
	}
	if c.AuthRateBurst > 0 {
		config.AuthRateBurst = c.AuthRateBurst
	}
	if c.DBMaxOpenConns > 0 {
		config.DBMaxOpenConns = c.DBMaxOpenConns
	}
	if c.DBMaxIdleConns > 0 {
		config.DBMaxIdleConns = c.DBMaxIdleConns
	}
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
