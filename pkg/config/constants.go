package config

const (
	EnvPrefix = "MEDICORE"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	EnvDBDSN  = "MEDICORE_DB_DSN"
	EnvDBHost = "MEDICORE_DB_HOST"
	EnvDBUser = "MEDICORE_DB_USER"
	EnvDBName = "MEDICORE_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
