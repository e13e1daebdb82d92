package cli

import "github.com/charmbracelet/huh"

// dateInput returns a huh.Input for an optional date field with YYYY-MM-DD validation.
func dateInput(title, placeholder string, value *string) *huh.Input {
	if placeholder == "" {
		placeholder = "2025-06-30"
	}
	return huh.NewInput().
		Title(title).
		Placeholder(placeholder).
		Value(value).
		Validate(validateOptionalDate)
}

// hoursInput returns a huh.Input for a required hours field.
func hoursInput(title, placeholder string, value *string) *huh.Input {
	if placeholder == "" {
		placeholder = "8"
	}
	return huh.NewInput().
		Title(title).
		Placeholder(placeholder).
		Value(value).
		Validate(validateHours)
}

// textInput returns a huh.Input, required when field is non-empty.
func textInput(title, field string, value *string) *huh.Input {
	in := huh.NewInput().Title(title).Value(value)
	if field != "" {
		in = in.Validate(validateRequired(field))
	}
	return in
}
