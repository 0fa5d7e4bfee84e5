package api

// ErrorResponse is the body of every error reply. Internal detail
// never travels in it; that goes to the server log.
type ErrorResponse struct {
	Error string `json:"error"`
}

// Categories is the fixed catalog taxonomy, "All" being the filter
// sentinel that disables category filtering.
var Categories = []string{
	"All",
	"Photography",
	"Sports",
	"Tools",
	"Outdoor",
	"Water Sports",
	"Electronics",
	"Camping",
	"Music",
	"Gaming",
}
