// Package api exposes the steganography operations over HTTP.
//
// # Endpoints
//
//	POST /api/v1/inject   multipart form: "file" (image), "message" (text)
//	                      -> stego PNG as an attachment; X-Stego-Truncated
//	                         header set to "true" when the message did not
//	                         fully fit the cover image
//	POST /api/v1/detect   multipart form: "file" (image)
//	                      -> JSON with the extracted message (if any) and
//	                         a local steganalysis report
//	GET  /api/v1/history  ?limit=n -> recent operations, newest first
//	GET  /health          liveness probe
//	GET  /metrics         Prometheus metrics
//
// Responses other than the raw PNG use a JSON envelope:
//
//	{"success": true, "data": {...}}
//	{"success": false, "error": "..."}
//
// # Authentication and CORS
//
// When an API key is configured, /api/v1 routes require it in the
// X-API-Key header. CORS origins come from the configuration; the
// default allows the bundled frontend at http://localhost:3000.
//
// # Error Mapping
//
// Undecodable uploads are 400s, messages with characters that cannot be
// encoded in one byte are 422s, and an image without a hidden message is
// a successful 200 with found=false; absence of a payload is an expected
// outcome, not an error.
package api
