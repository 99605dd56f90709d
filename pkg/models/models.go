package models

import "github.com/Sriram-PR/country-outline/pkg/outline"

// OutlineResult is the successful result of an outline request
type OutlineResult struct {
	Country string `json:"country"` // Country name as requested
	URL     string `json:"url"`     // Article URL that was fetched
	Outline string `json:"outline"` // Markdown outline
	HTML    string `json:"html,omitempty"`

	Document outline.Document `json:"-"`
}

// ErrorResponse is returned in place of a result on any failure.
// The transport status stays 200.
type ErrorResponse struct {
	Error string `json:"error"`
}

// ServiceInfo describes the service at GET /
type ServiceInfo struct {
	Message string `json:"message"`
	Usage   string `json:"usage"`
	Example string `json:"example"`
}

// ToolResult is the MCP tool payload: the outline result plus the parsed
// heading list.
type ToolResult struct {
	Country  string            `json:"country"`
	URL      string            `json:"url"`
	Outline  string            `json:"outline"`
	Headings []outline.Heading `json:"headings"`
}

// DefaultServiceInfo returns the informational payload for the root endpoint.
func DefaultServiceInfo() ServiceInfo {
	return ServiceInfo{
		Message: "Country Wikipedia Outline API",
		Usage:   "GET /api/outline?country=<country_name>",
		Example: "/api/outline?country=Vanuatu",
	}
}
