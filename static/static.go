// Package static embeds the API documentation assets served under /static
// and /docs.
package static

import "embed"

// OpenAPIPage is the documentation UI served at /docs.
const OpenAPIPage = "openapi.html"

//go:embed openapi.html openapi.json
var FS embed.FS
