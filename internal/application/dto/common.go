package dto

// ErrorResponse is the HTTP error body.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// LoadWarnings summarizes rows the store load had to skip or coerce, so bad
// spreadsheet rows are visible to the caller instead of silently discarded.
type LoadWarnings struct {
	SkippedRows int `json:"skipped_rows"`
	CoercedRows int `json:"coerced_rows"`
}
