package variables

import (
	"log/slog"
	"os"
	"strings"
)

const (
	HTTP_PORT_DEFAULT = "3001"
	HTTP_PORT_NAME    = "HTTP_PORT"

	FUNCTIONS_PORT_DEFAULT = "8080"
	FUNCTIONS_PORT_NAME    = "PORT"

	LIVEKIT_URL_NAME        = "LIVEKIT_URL"
	LIVEKIT_API_KEY_NAME    = "LIVEKIT_API_KEY"
	LIVEKIT_API_SECRET_NAME = "LIVEKIT_API_SECRET"

	REDIS_URL_NAME     = "REDIS_URL"
	OTEL_ENDPOINT_NAME = "OTEL_EXPORTER_OTLP_ENDPOINT"

	// Legacy hosted-function runtime config, read after the environment.
	RUNTIME_CONFIG_FILE_DEFAULT = ".runtimeconfig.json"
	RUNTIME_CONFIG_FILE_NAME    = "RUNTIME_CONFIG_FILE"
)

// Variables never echoed into logs.
var secretNames = map[string]struct{}{
	LIVEKIT_API_SECRET_NAME: {},
}

func Env(variableName, defaultValue string) string {
	if variable := os.Getenv(variableName); variable != "" {
		slog.Debug("env", slog.String(variableName, redact(variableName, variable)))
		return variable
	}
	slog.Debug("env default", slog.String(variableName, defaultValue))
	return defaultValue
}

func redact(name, value string) string {
	if _, secret := secretNames[name]; secret {
		return strings.Repeat("*", 8)
	}
	return value
}
