package config

// EnvPrefix is the envconfig prefix for every variable this service reads.
const EnvPrefix = "STOREFRONT"

const (
	AppEnvDev  = "development"
	AppEnvProd = "production"
)

// EnvDBSSLMode backs the DSN assembly fallback when the config struct left
// the ssl mode empty.
const EnvDBSSLMode = "STOREFRONT_DB_SSLMODE"
