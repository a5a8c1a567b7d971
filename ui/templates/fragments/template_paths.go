// Package fragments provides template name constants for the dashboard templates
package fragments

// Template names as registered by the server
const (
	// Full page layout
	Index = "index.html"

	// Fragments swapped in by the search trigger
	Results      = "fragments/results.html"
	DistrictInfo = "fragments/district_info.html"
	ErrorNotice  = "fragments/error.html"
)

// GetAllTemplatePaths returns all template paths for registration
func GetAllTemplatePaths() []string {
	return []string{
		Index,
		Results,
		DistrictInfo,
		ErrorNotice,
	}
}
