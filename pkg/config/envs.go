package config

const (
	EnvPrefix = "storefront"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	StorageBackendFile   = "file"
	StorageBackendSQLite = "sqlite"
	StorageBackendRedis  = "redis"

	EnvAppEnv     = "STOREFRONT_APP_ENV"
	EnvLogLevel   = "STOREFRONT_LOG_LEVEL"
	EnvAPIBaseURL = "STOREFRONT_API_BASE_URL"
	EnvAPITimeout = "STOREFRONT_API_TIMEOUT"
	EnvStorageDir = "STOREFRONT_STORAGE_DIR"
	EnvBackend    = "STOREFRONT_STORAGE_BACKEND"
	EnvRedisURL   = "STOREFRONT_REDIS_URL"
)
