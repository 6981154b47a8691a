package config

const (
	EnvPrefix = "FOODCOURT"

	AppEnvDev  = "development"
	AppEnvProd = "production"

	EnvAppEnv  = "FOODCOURT_APP_ENV"
	EnvAppPort = "FOODCOURT_APP_PORT"

	EnvDBDSN  = "FOODCOURT_DB_DSN"
	EnvDBHost = "FOODCOURT_DB_HOST"
	EnvDBUser = "FOODCOURT_DB_USER"
	EnvDBName = "FOODCOURT_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
