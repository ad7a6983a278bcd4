package agents

import (
	"fmt"

	"github.com/redlinehq/redline/pkg/validation"
)

// Field length limits for agent text values.
const (
	NameLimit   = 50
	PromptLimit = 50000
)

func validateText(field, value string, limit int) error {
	if err := validation.Text(field, value, limit); err != nil {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}
	return nil
}

func validateCreate(cmd CreateCommand) error {
	if err := validateText("name", cmd.Name, NameLimit); err != nil {
		return err
	}
	if err := validateText("type", cmd.Type, NameLimit); err != nil {
		return err
	}
	return validateText("guideline_prompt", cmd.GuidelinePrompt, PromptLimit)
}

func validateUpdate(cmd UpdateCommand) error {
	if cmd.Empty() {
		return fmt.Errorf("%w: no fields to update", ErrValidation)
	}
	if cmd.Name != nil {
		if err := validateText("name", *cmd.Name, NameLimit); err != nil {
			return err
		}
	}
	if cmd.Type != nil {
		if err := validateText("type", *cmd.Type, NameLimit); err != nil {
			return err
		}
	}
	if cmd.GuidelinePrompt != nil {
		if err := validateText("guideline_prompt", *cmd.GuidelinePrompt, PromptLimit); err != nil {
			return err
		}
	}
	return nil
}
