package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// envFile is loaded before the environment is read; a missing file is fine.
var envFile = ".env"

// parseEnv overlays values from the process environment. Variables already
// set in the environment win over the .env file.
//
//	DATABASE_URL     PostgreSQL DSN
//	PORT             listen port (binds ":PORT")
//	TOKEN_SECRET     JWT HMAC secret
//	TOKEN_TTL        token validity, Go duration ("24h"; "0" disables expiry)
//	LOG_LEVEL        debug | info | warn | error
//	ALLOWED_ORIGINS  comma-separated CORS origins
//	S3_ACCESS_KEY, S3_SECRET_KEY, S3_BUCKET, S3_REGION, S3_ENDPOINT, S3_PUBLIC_URL
func parseEnv(config *Config) {
	if _, err := os.Stat(envFile); err == nil {
		if err := godotenv.Load(envFile); err != nil {
			panic(fmt.Errorf("loading %s: %w", envFile, err))
		}
	}

	setString(&config.DatabaseDSN, os.Getenv("DATABASE_URL"))
	setString(&config.SecretKey, os.Getenv("TOKEN_SECRET"))
	setString(&config.LogLevel, os.Getenv("LOG_LEVEL"))
	setString(&config.S3AccessKey, os.Getenv("S3_ACCESS_KEY"))
	setString(&config.S3SecretKey, os.Getenv("S3_SECRET_KEY"))
	setString(&config.S3Bucket, os.Getenv("S3_BUCKET"))
	setString(&config.S3Region, os.Getenv("S3_REGION"))
	setString(&config.S3BaseEndpoint, os.Getenv("S3_ENDPOINT"))
	setString(&config.S3PublicBaseURL, os.Getenv("S3_PUBLIC_URL"))

	if port := strings.TrimSpace(os.Getenv("PORT")); port != "" {
		config.EndpointAddrHTTP = ":" + port
	}

	if ttl := strings.TrimSpace(os.Getenv("TOKEN_TTL")); ttl != "" {
		d, err := time.ParseDuration(ttl)
		if err != nil {
			panic(fmt.Errorf("TOKEN_TTL: %w", err))
		}
		config.TokenValidityDuration = d
	}

	if origins := splitList(os.Getenv("ALLOWED_ORIGINS")); len(origins) > 0 {
		config.AllowedOrigins = origins
	}
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
