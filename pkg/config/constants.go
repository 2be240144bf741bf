package config

const (
	// EnvPrefix namespaces every environment variable the service reads.
	EnvPrefix = "INSTITUTE"

	AppEnvDev  = "development"
	AppEnvProd = "production"
)

const (
	EnvAppEnv     = "INSTITUTE_APP_ENV"
	EnvPort       = "INSTITUTE_APP_PORT"
	EnvDBDSN      = "INSTITUTE_DB_DSN"
	EnvDBHost     = "INSTITUTE_DB_HOST"
	EnvDBUser     = "INSTITUTE_DB_USER"
	EnvDBName     = "INSTITUTE_DB_NAME"
	EnvRedisURL   = "INSTITUTE_REDIS_URL"
	EnvJWTSecret  = "INSTITUTE_JWT_SECRET"
	EnvJWTIssuer  = "INSTITUTE_JWT_ISSUER"
	EnvJWTExpMins = "INSTITUTE_JWT_EXPIRATION_MINUTES"

	EnvGCPProjectID      = "INSTITUTE_GCP_PROJECT_ID"
	EnvGCSBucket         = "INSTITUTE_GCS_BUCKET_NAME"
	EnvGCSUploadExpiry   = "INSTITUTE_GCS_UPLOAD_URL_EXPIRY"
	EnvGCSDownloadExpiry = "INSTITUTE_GCS_DOWNLOAD_URL_EXPIRY"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
