package errors

import "sort"

// ErrorTemplate defines a registered error type.
type ErrorTemplate struct {
	Category Category
	Message  string
	Detail   string
}

// registry maps error codes to their templates.
var registry = map[string]ErrorTemplate{
	// Configuration (E100-E199)

	"E100": {
		Category: CategoryConfig,
		Message:  "Config file not found",
		Detail:   "The configuration file passed on the command line does not exist.",
	},
	"E101": {
		Category: CategoryConfig,
		Message:  "Config parse error",
		Detail:   "The configuration file is not valid YAML or JSON.",
	},
	"E102": {
		Category: CategoryConfig,
		Message:  "Invalid preview port",
		Detail:   "The preview port must be between 1 and 65535.",
	},
	"E103": {
		Category: CategoryConfig,
		Message:  "Invalid log level",
		Detail:   "Log level must be one of debug, info, warn or error.",
	},
	"E104": {
		Category: CategoryConfig,
		Message:  "Invalid log format",
		Detail:   "Log format must be text or json.",
	},

	// CLI (E200-E299)

	"E200": {
		Category: CategoryCLI,
		Message:  "Invalid flag value",
		Detail:   "A command-line flag has a value that cannot be used.",
	},
	"E201": {
		Category: CategoryCLI,
		Message:  "Click target not found",
		Detail:   "No element with the given id exists in the rendered tree.",
	},

	// Preview server (E300-E399)

	"E300": {
		Category: CategoryPreview,
		Message:  "Preview server failed to listen",
		Detail:   "The preview server could not bind its address. Another process may be using the port.",
	},
	"E301": {
		Category: CategoryPreview,
		Message:  "Invalid preview message",
		Detail:   "A websocket message could not be decoded.",
	},
	"E302": {
		Category: CategoryPreview,
		Message:  "Event target not found",
		Detail:   "The node addressed by a remote event is no longer in the tree.",
	},
}

// GetAllCodes returns all registered error codes in sorted order.
func GetAllCodes() []string {
	codes := make([]string, 0, len(registry))
	for code := range registry {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// GetTemplate returns the template for an error code.
func GetTemplate(code string) (ErrorTemplate, bool) {
	t, ok := registry[code]
	return t, ok
}

// Register adds a new error template to the registry.
func Register(code string, template ErrorTemplate) {
	registry[code] = template
}
