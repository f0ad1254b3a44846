package profile

import "github.com/eugenenazirov/layered-settings/internal/settings"

// AppSchemaName is the catalog name of AppSchema.
const AppSchemaName = "app"

// Log levels accepted by the log_level field.
const (
	LogLevelDebug    = "DEBUG"
	LogLevelInfo     = "INFO"
	LogLevelWarning  = "WARNING"
	LogLevelError    = "ERROR"
	LogLevelCritical = "CRITICAL"
)

// LogLevels lists the log_level members in severity order.
var LogLevels = []string{LogLevelDebug, LogLevelInfo, LogLevelWarning, LogLevelError, LogLevelCritical}

// Field names of AppSchema.
const (
	FieldDatabaseURL   = "database_url"
	FieldDatabaseToken = "database_token"
	FieldAPIKey        = "api_key"
	FieldDebugMode     = "debug_mode"
	FieldLogLevel      = "log_level"
	FieldPort          = "port"
)

const defaultPort = 8000

// AppSchema is the application settings schema.
func AppSchema() settings.Schema {
	return settings.Schema{
		settings.String(FieldDatabaseURL),
		settings.SecretString(FieldDatabaseToken),
		settings.SecretString(FieldAPIKey),
		settings.Bool(FieldDebugMode),
		settings.Enum(FieldLogLevel, LogLevels...).WithDefault(LogLevelInfo),
		settings.Int(FieldPort, 1, 65535).WithDefault(defaultPort),
	}
}

// Schemas is the name→schema table consulted by LoadCatalog.
func Schemas() map[string]settings.Schema {
	return map[string]settings.Schema{AppSchemaName: AppSchema()}
}

// Defaults returns the built-in profiles: default, dev, prod, and custom.
func Defaults() []Profile {
	return []Profile{
		{Name: "default", Prefix: "MYAPP_", Files: []string{".env"}, Schema: AppSchema(), AllowExtra: true},
		{Name: "dev", Prefix: "MYAPP_", Files: []string{".env", ".env.dev"}, Schema: AppSchema(), AllowExtra: true},
		{Name: "prod", Prefix: "MYAPP_", Files: []string{".env", ".env.prod"}, Schema: AppSchema(), AllowExtra: true},
		{Name: "custom", Prefix: "MYCUSTOMAPP_", Files: []string{".env"}, Schema: AppSchema(), AllowExtra: true},
	}
}
