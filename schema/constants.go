package schema

// Custom string types for type safety.
type (
	// OutputMode represents the format of the output.
	OutputMode string

	// DatabaseBackend represents the database backend for snapshot storage.
	DatabaseBackend string

	// ModelProvider represents the completion backend for doc generation.
	ModelProvider string

	// ManifestKind tags one dependency-ecosystem manifest family.
	ManifestKind string
)

// All output modes supported.
const (
	TextOut    OutputMode = "text" // default
	JSONOut    OutputMode = "json"
	ParquetOut OutputMode = "parquet"
)

// All snapshot store backends supported.
const (
	SQLiteBackend     DatabaseBackend = "sqlite" // default
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	NoneBackend       DatabaseBackend = "none"
)

// All model providers supported.
const (
	OllamaProvider ModelProvider = "ollama" // default
	GeminiProvider ModelProvider = "gemini"
	NoneProvider   ModelProvider = "none" // analysis only, no doc generation
)

// All manifest families supported.
const (
	NodeManifest   ManifestKind = "node"
	CargoManifest  ManifestKind = "cargo"
	GoModManifest  ManifestKind = "gomod"
	PythonManifest ManifestKind = "python"
	RubyManifest   ManifestKind = "ruby"
	JVMManifest    ManifestKind = "jvm"
	SwiftManifest  ManifestKind = "swift"
	PHPManifest    ManifestKind = "php"
)

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	TextOut:    {},
	JSONOut:    {},
	ParquetOut: {},
}

// ValidDatabaseBackends lists all valid snapshot store backends.
var ValidDatabaseBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	NoneBackend:       {},
}

// ValidModelProviders lists all valid model providers.
var ValidModelProviders = map[ModelProvider]struct{}{
	OllamaProvider: {},
	GeminiProvider: {},
	NoneProvider:   {},
}
