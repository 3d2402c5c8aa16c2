package config

// EnvPrefix is passed to envconfig; individual fields carry fully qualified
// names so the prefix mainly documents intent.
const EnvPrefix = "STOCKMASTER"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

const (
	EnvDBDSN  = "STOCKMASTER_DB_DSN"
	EnvDBHost = "STOCKMASTER_DB_HOST"
	EnvDBUser = "STOCKMASTER_DB_USER"
	EnvDBName = "STOCKMASTER_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
