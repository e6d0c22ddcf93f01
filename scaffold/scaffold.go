// Package scaffold provides the embedded template for the post scaffolding
// command.
package scaffold

import "embed"

// Templates contains the post scaffold files.
// Files use Go text/template syntax and have a .tmpl suffix.
//
//go:embed templates
var Templates embed.FS
