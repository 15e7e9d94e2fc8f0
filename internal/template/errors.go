// Package template embeds the documentation boilerplate and deploys it
// into a target docs directory, rendering .tmpl files along the way and
// tracking every written file in the manifest.
package template

import "errors"

// Sentinel errors for template operations.
var (
	// ErrTemplateNotFound indicates the named asset does not exist in the
	// embedded filesystem.
	ErrTemplateNotFound = errors.New("template: not found")

	// ErrPathTraversal indicates an asset path would escape the docs root.
	ErrPathTraversal = errors.New("template: path escapes docs root")

	// ErrMissingTemplateKey indicates a .tmpl file referenced a context
	// field that was not provided.
	ErrMissingTemplateKey = errors.New("template: missing template key")

	// ErrUnexpandedToken indicates a render-time variable survived into
	// the rendered output.
	ErrUnexpandedToken = errors.New("template: unexpanded token in rendered output")
)
