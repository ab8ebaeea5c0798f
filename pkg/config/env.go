package config

const EnvPrefix = "PACKFINDERZ"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

const (
	EnvAppEnv             = "PACKFINDERZ_APP_ENV"
	EnvPort               = "PACKFINDERZ_APP_PORT"
	EnvLogLevel           = "PACKFINDERZ_LOG_LEVEL"
	EnvSeedPath           = "PACKFINDERZ_SEED_PATH"
	EnvRedisURL           = "PACKFINDERZ_REDIS_URL"
	EnvGeminiAPIKey       = "PACKFINDERZ_GEMINI_API_KEY"
	EnvGeminiModel        = "PACKFINDERZ_GEMINI_MODEL"
	EnvAnalyticsToday     = "PACKFINDERZ_ANALYTICS_TODAY"
	EnvCORSAllowedOrigins = "PACKFINDERZ_CORS_ALLOWED_ORIGINS"
)
