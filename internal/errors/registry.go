package errors

// ErrorTemplate defines a registered error type.
type ErrorTemplate struct {
	Category Category
	Message  string
	DocURL   string
}

// registry maps error codes to their templates.
var registry = map[string]ErrorTemplate{
	// Runtime (E001-E019)
	"E001": {
		Category: CategoryRuntime,
		Message:  "Page used outside the app component",
		DocURL:   "https://vango.dev/docs/inertia/errors/E001",
	},
	"E002": {
		Category: CategoryRuntime,
		Message:  "Component not found",
		DocURL:   "https://vango.dev/docs/inertia/errors/E002",
	},
	"E003": {
		Category: CategoryRuntime,
		Message:  "Resolver returned an unsupported value",
		DocURL:   "https://vango.dev/docs/inertia/errors/E003",
	},

	// Bootstrap (E020-E039)
	"E020": {
		Category: CategoryBootstrap,
		Message:  "Invalid app options",
		DocURL:   "https://vango.dev/docs/inertia/errors/E020",
	},
	"E021": {
		Category: CategoryBootstrap,
		Message:  "Setup failed",
		DocURL:   "https://vango.dev/docs/inertia/errors/E021",
	},
	"E022": {
		Category: CategoryBootstrap,
		Message:  "Server render failed",
		DocURL:   "https://vango.dev/docs/inertia/errors/E022",
	},

	// Payload (E040-E059)
	"E040": {
		Category: CategoryPayload,
		Message:  "Malformed page payload",
		DocURL:   "https://vango.dev/docs/inertia/errors/E040",
	},
	"E041": {
		Category: CategoryPayload,
		Message:  "Embedded page payload missing",
		DocURL:   "https://vango.dev/docs/inertia/errors/E041",
	},

	// Protocol (E060-E079)
	"E060": {
		Category: CategoryProtocol,
		Message:  "Live session handshake failed",
		DocURL:   "https://vango.dev/docs/inertia/errors/E060",
	},
	"E061": {
		Category: CategoryProtocol,
		Message:  "Visit failed",
		DocURL:   "https://vango.dev/docs/inertia/errors/E061",
	},

	// Config (E080-E099)
	"E080": {
		Category: CategoryConfig,
		Message:  "Invalid configuration",
		DocURL:   "https://vango.dev/docs/inertia/errors/E080",
	},
	"E081": {
		Category: CategoryConfig,
		Message:  "Asset manifest unavailable",
		DocURL:   "https://vango.dev/docs/inertia/errors/E081",
	},
}

// Lookup returns the template registered for code.
func Lookup(code string) (ErrorTemplate, bool) {
	t, ok := registry[code]
	return t, ok
}
