package cmd

import (
	"fmt"

	"github.com/erikgeiser/promptkit/confirmation"
)

// Confirm asks a yes/no question on the terminal. Replaced in tests.
var Confirm = func(prompt string) (bool, error) {
	input := confirmation.New(prompt, confirmation.No)
	ok, err := input.RunPrompt()
	if err != nil {
		return false, fmt.Errorf("confirmation failed: %w", err)
	}
	return ok, nil
}
