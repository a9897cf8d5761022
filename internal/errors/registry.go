package errors

// ErrorTemplate defines a registered error type.
type ErrorTemplate struct {
	Category Category
	Message  string
	Detail   string
}

// registry maps error codes to their templates.
var registry = map[string]ErrorTemplate{
	// ============================================
	// Path parameter definitions (E100-E119)
	// ============================================

	"E101": {
		Category: CategoryConfig,
		Message:  "Duplicate path parameter name",
		Detail:   "Every path parameter registered in a parameter map needs a unique name.",
	},
	"E102": {
		Category: CategoryConfig,
		Message:  "Malformed wildcard pattern",
		Detail:   "A segment pattern must contain exactly one '*' wildcard and no '/'.",
	},
	"E103": {
		Category: CategoryConfig,
		Message:  "Invalid regex path parameter",
		Detail:   "The regular expression must compile and contain exactly one capture group.",
	},
	"E104": {
		Category: CategoryRoute,
		Message:  "Path parameter reused in route",
		Detail:   "A path parameter may appear at most once between a resource and the root.",
	},
	"E105": {
		Category: CategoryRoute,
		Message:  "Duplicate handler mapping",
		Detail:   "Two declarations attach different handlers to the same resource.",
	},
	"E106": {
		Category: CategoryRoute,
		Message:  "Unknown path parameter",
		Detail:   "The declaration names a path parameter that is not registered in the parameter map.",
	},
	"E107": {
		Category: CategoryRoute,
		Message:  "Invalid segment",
		Detail:   "Literal segments must be non-empty and may not contain '/', '{' or '}'.",
	},
	"E108": {
		Category: CategoryRoute,
		Message:  "Invalid declaration",
		Detail:   "A resource extension needs exactly one of a literal segment or a path parameter.",
	},
	"E109": {
		Category: CategoryRoute,
		Message:  "Builder already used",
		Detail:   "The resource tree was already built; create a new builder to build another tree.",
	},
	"E110": {
		Category: CategoryConfig,
		Message:  "Invalid multi-segment minimum",
		Detail:   "The minimum number of segments of a multi-segment parameter cannot be negative.",
	},
	"E111": {
		Category: CategoryConfig,
		Message:  "Unsupported converter",
		Detail:   "The named value converter does not exist.",
	},
	"E112": {
		Category: CategoryConfig,
		Message:  "Path parameter cannot be converted",
		Detail:   "Only string-valued path parameters can be wrapped by a converter.",
	},

	// ============================================
	// Configuration files (E120-E129)
	// ============================================

	"E120": {
		Category: CategoryConfig,
		Message:  "Failed to read route table",
		Detail:   "The route table file could not be read or decoded.",
	},
	"E121": {
		Category: CategoryConfig,
		Message:  "Unsupported route table format",
		Detail:   "Route tables can be written in JSON, YAML or TOML.",
	},
	"E122": {
		Category: CategoryConfig,
		Message:  "Invalid route table",
		Detail:   "The route table contains an invalid entry.",
	},
	"E123": {
		Category: CategoryConfig,
		Message:  "Route table not found",
		Detail:   "No route table file was found in the directory.",
	},

	// ============================================
	// Route building (E130-E139)
	// ============================================

	"E130": {
		Category: CategoryBuild,
		Message:  "Missing path parameter value",
		Detail:   "Every path parameter of a route needs a value before the route can be built.",
	},
	"E131": {
		Category: CategoryBuild,
		Message:  "Path parameter value has wrong type",
		Detail:   "The value cannot be formatted by the path parameter.",
	},
	"E132": {
		Category: CategoryBuild,
		Message:  "Path parameter not part of route",
		Detail:   "The route does not contain the given path parameter.",
	},
	"E133": {
		Category: CategoryBuild,
		Message:  "Unknown handler",
		Detail:   "No resource is mapped to the handler id.",
	},

	// ============================================
	// Request paths (E140-E149)
	// ============================================

	"E140": {
		Category: CategoryPath,
		Message:  "Invalid request path",
		Detail:   "The path could not be canonicalized.",
	},

	// ============================================
	// CLI (E160-E169)
	// ============================================

	"E160": {
		Category: CategoryCLI,
		Message:  "Invalid argument",
		Detail:   "A command line argument is malformed.",
	},
}

// GetAllCodes returns all registered error codes.
func GetAllCodes() []string {
	codes := make([]string, 0, len(registry))
	for code := range registry {
		codes = append(codes, code)
	}
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
