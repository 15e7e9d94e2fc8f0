package wizard

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"
)

// Run executes the init wizard and returns the collected answers.
// defaultName seeds the project-name field, usually the target
// directory's base name.
func Run(defaultName string) (*Result, error) {
	result := &Result{ProjectName: defaultName}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Project name").
				Description("Used in the docs README and configuration").
				Value(&result.ProjectName).
				Validate(validateName),
			huh.NewInput().
				Title("Description").
				Description("One line about what the project does").
				Placeholder("A web application for ...").
				Value(&result.Description),
			huh.NewInput().
				Title("Owner").
				Description("Maintainer or team responsible for the docs").
				Placeholder("Platform Team").
				Value(&result.Owner),
		),
	)

	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return nil, ErrCancelled
		}
		return nil, fmt.Errorf("wizard error: %w", err)
	}

	result.ProjectName = strings.TrimSpace(result.ProjectName)
	result.Description = strings.TrimSpace(result.Description)
	result.Owner = strings.TrimSpace(result.Owner)
	return result, nil
}

// validateName rejects empty and whitespace-only project names.
func validateName(s string) error {
	if strings.TrimSpace(s) == "" {
		return errors.New("project name is required")
	}
	return nil
}
