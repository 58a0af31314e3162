package commands

// Error messages
const (
	ErrConfigLoaderUnavailable  = "config loader unavailable"
	ErrDoctorServiceUnavailable = "doctor service unavailable"
	ErrRepositoryUnavailable    = "service store unavailable"
	ErrCatalogUnavailable       = "catalog source unavailable"
	ErrKeyRequired              = "--key is required"
	ErrInvalidRetainDays        = "--days must be > 0"
)

// Success messages
const (
	MsgConfigurationValid       = "Configuration valid"
	MsgNoDifferencesFromDefault = "No differences from default configuration."
	MsgNoServicesStored         = "No scan results stored yet. Run `ecoscan scan` first."
)
