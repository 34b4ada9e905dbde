// Package config handles configuration loading for calibra-api.
//
// # Overview
//
// Configuration is loaded from YAML files with environment variable expansion.
// The package provides validation and sensible defaults.
//
// # Environment Variable Expansion
//
// Configuration values can reference environment variables:
//
//	auth:
//	  jwt_secret: "${CALIBRA_JWT_SECRET}"
//
// Syntax: ${VAR_NAME}
//
// # Configuration Sections
//
// Server settings:
//
//	server:
//	  http_addr: "0.0.0.0:8080"
//
// Database:
//
//	database:
//	  path: "/var/lib/calibra/calibra.db"
//
// Authentication:
//
//	auth:
//	  jwt_secret: "${CALIBRA_JWT_SECRET}"  # required, min 32 bytes
//	  cookie_name: "session"
//	  token_ttl: "24h"
//	  environment: "production"            # development or production
//
// Object storage for product attachments:
//
//	storage:
//	  endpoint: "http://localhost:9000"
//	  region: "us-east-1"
//	  bucket: "calibra-attachments"
//	  access_key: "${CALIBRA_S3_ACCESS_KEY}"
//	  secret_key: "${CALIBRA_S3_SECRET_KEY}"
//
// Logging:
//
//	logging:
//	  level: "info"   # debug, info, warn, error
//	  format: "text"  # text, json
//
// # Usage
//
//	cfg, err := config.Load("/etc/calibra/config.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
package config
