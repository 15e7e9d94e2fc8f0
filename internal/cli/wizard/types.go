// Package wizard provides the interactive huh-based form shown by
// docstack init when running on a terminal.
package wizard

import "errors"

// Result holds the user's answers from the init wizard.
type Result struct {
	ProjectName string // Project name (defaults to the target directory name)
	Description string // One-line project description
	Owner       string // Maintainer or team name
}

// ErrCancelled is returned when the user aborts the wizard.
var ErrCancelled = errors.New("wizard: cancelled by user")
