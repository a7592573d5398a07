// Package httputil provides the JSON plumbing shared by HTTP handlers.
//
// Handlers return coded errors from [github.com/matzehuels/sightline/pkg/errors]
// and let [WriteError] map them to a status and a JSON body:
//
//	{"code": "INVALID_ROW", "error": "row 3: ear height must be between 30 and 60"}
//
// Status mapping:
//
//   - INVALID_* codes: 422 Unprocessable Entity
//   - NOT_FOUND, FILE_NOT_FOUND, SESSION_NOT_FOUND: 404 Not Found
//   - anything else: 500 Internal Server Error, with the message hidden
//
// Request bodies are decoded with [DecodeJSON], which rejects unknown fields
// and oversized bodies.
package httputil
