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
	// ============================================
	// Parse Errors (E001-E019)
	// ============================================

	"E001": {
		Category: CategoryParse,
		Message:  "invalid tag name",
		Detail:   "A tag spec must start with a tag name made of non-whitespace characters.",
	},
	"E002": {
		Category: CategoryParse,
		Message:  "invalid tag spec",
		Detail:   "After the tag name only #id, .class and [name]value tokens are allowed.",
	},
	"E003": {
		Category: CategoryParse,
		Message:  "[class]... syntax not allowed",
		Detail:   "Classes are set with .class tokens or the class entry of the attribute override.",
	},
	"E004": {
		Category: CategoryParse,
		Message:  "tag array without tag spec",
		Detail:   "The first element of a tag array must be a tag spec string.",
	},

	// ============================================
	// Node Errors (E020-E039)
	// ============================================

	"E020": {
		Category: CategoryNode,
		Message:  "element is not renderable",
		Detail:   "Nodes are nil, scalars, fmt.Stringer, Raw, Tag, Renderable or sequences of nodes.",
	},
	"E021": {
		Category: CategoryNode,
		Message:  "children found for void tag",
		Detail:   "Void elements such as br, img and input cannot have children or a closing tag.",
	},
	"E022": {
		Category: CategoryNode,
		Message:  "invalid type of 'class' attribute",
		Detail:   "The class override must be a string, []string, []any, map[string]bool or Classes.",
	},
	"E023": {
		Category: CategoryNode,
		Message:  "invalid attribute value",
		Detail:   "Attribute values are strings, numbers, booleans, nil, fmt.Stringer or Value.",
	},
	"E024": {
		Category: CategoryNode,
		Message:  "render depth exceeded",
		Detail:   "The node tree nests deeper than the configured maximum; a Renderable may return itself.",
	},

	// ============================================
	// Document Errors (E040-E059)
	// ============================================

	"E040": {
		Category: CategoryDocument,
		Message:  "malformed document",
		Detail:   "The document could not be decoded.",
	},
	"E041": {
		Category: CategoryDocument,
		Message:  "unknown directive",
		Detail:   "Objects in child position must be one of raw, each, lines or join.",
	},
	"E042": {
		Category: CategoryDocument,
		Message:  "unsupported document format",
		Detail:   "Documents are .json, .msgpack or .mp files.",
	},

	// ============================================
	// Config Errors (E060-E079)
	// ============================================

	"E060": {
		Category: CategoryConfig,
		Message:  "invalid configuration file",
		Detail:   "hiccup.toml could not be parsed.",
	},
	"E061": {
		Category: CategoryConfig,
		Message:  "configuration not found",
		Detail:   "No hiccup.toml was found.",
	},
	"E062": {
		Category: CategoryConfig,
		Message:  "invalid configuration value",
	},

	// ============================================
	// Publish Errors (E080-E099)
	// ============================================

	"E080": {
		Category: CategoryPublish,
		Message:  "upload failed",
		Detail:   "Storing a rendered page failed.",
	},
	"E081": {
		Category: CategoryPublish,
		Message:  "missing bucket",
		Detail:   "Publishing to S3 requires a bucket name.",
	},

	// ============================================
	// CLI Errors (E100-E119)
	// ============================================

	"E100": {
		Category: CategoryCLI,
		Message:  "cannot read input",
	},
	"E101": {
		Category: CategoryCLI,
		Message:  "cannot write output",
	},
	"E102": {
		Category: CategoryCLI,
		Message:  "unknown site template",
	},
	"E103": {
		Category: CategoryCLI,
		Message:  "file already exists",
		Detail:   "Scaffolding never overwrites existing files.",
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
