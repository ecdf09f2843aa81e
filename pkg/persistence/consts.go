package persistence

// Default paths used when neither the config file nor flags name one.
const (
	DefaultRecordPath = "./manuscripts.json"
	DefaultSQLitePath = "./manuscripts.db"
	DefaultConfigPath = "./config.yaml"
	DefaultDumpPath   = "./manuscripts.md"
)
