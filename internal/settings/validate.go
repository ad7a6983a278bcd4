package settings

import (
	"fmt"

	"github.com/redlinehq/redline/pkg/validation"
)

// Field length limits for setting text values.
const (
	NameLimit  = 50
	ValueLimit = 5000
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
	return validateText("value", cmd.Value, ValueLimit)
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
	if cmd.Value != nil {
		if err := validateText("value", *cmd.Value, ValueLimit); err != nil {
			return err
		}
	}
	return nil
}
