//go:build go1.16
// +build go1.16

package datafiles

import (
	"embed" // at least "import _ "embed"" is required
	"html/template"
)

//go:embed index.html
var htmlTemplatesEmbed embed.FS

// IndexTemplate parses the embedded sprite index page template served
// by the web package.
func IndexTemplate() (*template.Template, error) {
	return template.ParseFS(htmlTemplatesEmbed, "index.html")
}
