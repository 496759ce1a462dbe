package ui

import (
	"errors"
	"fmt"

	"github.com/manifoldco/promptui"
)

// ConfirmCreate shows the plan and asks whether to open the pull requests
func ConfirmCreate(plan string) (bool, error) {
	fmt.Println(plan)

	prompt := promptui.Prompt{
		Label:     "Create these pull requests",
		IsConfirm: true,
	}

	if _, err := prompt.Run(); err != nil {
		if errors.Is(err, promptui.ErrAbort) {
			return false, nil
		}
		return false, fmt.Errorf("confirmation failed: %w", err)
	}
	return true, nil
}
