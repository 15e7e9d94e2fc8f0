package template

import (
	"runtime"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Context provides data for rendering .tmpl assets during installation.
// All fields are exported for use with Go's text/template package.
type Context struct {
	// Project
	ProjectName        string
	ProjectTitle       string // Display form of ProjectName, e.g. "my-app" -> "My App"
	ProjectDescription string

	// Maintainer
	Owner string

	// Layout
	DocsDir string // Documentation directory name, default "docs"

	// Meta
	Version     string // docstack version that performed the install
	Platform    string // "darwin", "linux", "windows"
	InstalledAt string // RFC 3339 timestamp of the install
}

// ContextOption configures a Context.
type ContextOption func(*Context)

// NewContext creates a Context with defaults, then applies options.
func NewContext(opts ...ContextOption) *Context {
	ctx := &Context{
		DocsDir:  "docs",
		Platform: runtime.GOOS,
	}

	for _, opt := range opts {
		opt(ctx)
	}

	if ctx.ProjectTitle == "" {
		ctx.ProjectTitle = TitleCase(ctx.ProjectName)
	}

	return ctx
}

// WithProject sets the project name and description.
func WithProject(name, description string) ContextOption {
	return func(c *Context) {
		c.ProjectName = name
		c.ProjectDescription = description
	}
}

// WithOwner sets the maintainer name.
func WithOwner(owner string) ContextOption {
	return func(c *Context) {
		c.Owner = owner
	}
}

// WithDocsDir sets the documentation directory name.
func WithDocsDir(dir string) ContextOption {
	return func(c *Context) {
		if dir != "" {
			c.DocsDir = dir
		}
	}
}

// WithVersion sets the docstack version.
func WithVersion(version string) ContextOption {
	return func(c *Context) {
		c.Version = version
	}
}

// WithPlatform sets the target platform.
func WithPlatform(platform string) ContextOption {
	return func(c *Context) {
		if platform != "" {
			c.Platform = platform
		}
	}
}

// WithInstalledAt sets the install timestamp.
func WithInstalledAt(timestamp string) ContextOption {
	return func(c *Context) {
		c.InstalledAt = timestamp
	}
}

var englishTitle = cases.Title(language.English)

// TitleCase converts a kebab- or snake-case project name into a display
// title: "my-next-app" becomes "My Next App".
func TitleCase(name string) string {
	cleaned := strings.NewReplacer("-", " ", "_", " ").Replace(name)
	cleaned = strings.Join(strings.Fields(cleaned), " ")
	return englishTitle.String(cleaned)
}
