package template

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io/fs"
	"regexp"
	"text/template"
)

// templateFuncMap provides custom functions available in all .tmpl assets.
var templateFuncMap = template.FuncMap{
	// jsonEscape escapes a string for safe embedding in JSON values by
	// leveraging encoding/json.Marshal, then stripping the surrounding quotes.
	"jsonEscape": func(s string) string {
		b, err := json.Marshal(s)
		if err != nil {
			return s
		}
		return string(b[1 : len(b)-1])
	},
	// titleCase converts a kebab/snake-case name to a display title.
	"titleCase": TitleCase,
}

// unexpandedTokenPattern detects leftover render-time tokens in output.
// Matches ${VAR} and {{.Field}} forms.
var unexpandedTokenPattern = regexp.MustCompile(`\$\{[A-Za-z_][A-Za-z0-9_]*\}|\{\{\.[A-Za-z_][A-Za-z0-9_.]*\}\}`)

// placeholderTokenPattern matches manual-substitution markers such as
// {{PROJECT_NAME}}. The consuming project's maintainers fill these in
// by hand, so they must survive rendering untouched and are masked
// before token validation.
var placeholderTokenPattern = regexp.MustCompile(`\{\{[A-Z][A-Z0-9_]*\}\}`)

// Renderer renders Go text/template assets with strict mode enabled.
type Renderer interface {
	// Render parses the named .tmpl asset from the filesystem and
	// executes it with the given data. Returns ErrMissingTemplateKey if
	// a key is missing and ErrUnexpandedToken if render-time tokens
	// remain after rendering.
	Render(templateName string, data any) ([]byte, error)
}

type renderer struct {
	fsys fs.FS
}

// NewRenderer creates a Renderer backed by the given filesystem.
func NewRenderer(fsys fs.FS) Renderer {
	return &renderer{fsys: fsys}
}

// Render parses and executes a template with missingkey=error.
func (r *renderer) Render(templateName string, data any) ([]byte, error) {
	content, err := fs.ReadFile(r.fsys, templateName)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrTemplateNotFound, templateName)
	}

	tmpl, err := template.New(templateName).
		Funcs(templateFuncMap).
		Option("missingkey=error").
		Parse(string(content))
	if err != nil {
		return nil, fmt.Errorf("template parse %q: %w", templateName, err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMissingTemplateKey, err)
	}

	result := buf.Bytes()

	// Mask manual-substitution placeholders, then verify nothing
	// render-time survived.
	masked := placeholderTokenPattern.ReplaceAll(result, nil)
	if loc := unexpandedTokenPattern.Find(masked); loc != nil {
		return nil, fmt.Errorf("%w: found %q", ErrUnexpandedToken, string(loc))
	}

	return result, nil
}
