package validation

import (
	"fmt"
	"regexp"
	"strings"

	"stickermissions/internal/models"
)

var (
	emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	pinRegex   = regexp.MustCompile(`^[0-9]{4}$`)
)

// ValidationError represents a validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateEmail checks if an email address is valid
func ValidateEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return ValidationError{Field: "email", Message: "email is required"}
	}
	if !emailRegex.MatchString(email) {
		return ValidationError{Field: "email", Message: "invalid email format"}
	}
	return nil
}

// ValidateName checks the child's profile name
func ValidateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return ValidationError{Field: "name", Message: "name is required"}
	}
	return nil
}

// ValidateMission checks the parent-entered fields of a new mission
func ValidateMission(title string, durationMinutes int) error {
	if strings.TrimSpace(title) == "" {
		return ValidationError{Field: "title", Message: "title is required"}
	}
	if durationMinutes <= 0 {
		return ValidationError{Field: "durationMinutes", Message: "duration must be a positive number of minutes"}
	}
	return nil
}

// ValidatePIN checks that pin is exactly four digits
func ValidatePIN(pin string) error {
	if !pinRegex.MatchString(pin) {
		return ValidationError{Field: "pin", Message: "pin must be exactly 4 digits"}
	}
	return nil
}

// ValidatePresetName checks a preset name
func ValidatePresetName(name string) error {
	if strings.TrimSpace(name) == "" {
		return ValidationError{Field: "name", Message: "preset name is required"}
	}
	return nil
}

// ValidateRewardConfig checks the tier table a parent submits
func ValidateRewardConfig(config models.RewardConfig) error {
	if config.Type != models.RewardCurrency && config.Type != models.RewardText {
		return ValidationError{Field: "type", Message: "reward type must be currency or text"}
	}
	if len(config.Steps) > models.MaxRewardSteps {
		return ValidationError{Field: "steps", Message: fmt.Sprintf("at most %d reward steps are allowed", models.MaxRewardSteps)}
	}
	for i, step := range config.Steps {
		if step.StickersThreshold < 0 {
			return ValidationError{Field: fmt.Sprintf("steps[%d].stickersThreshold", i), Message: "threshold cannot be negative"}
		}
		if strings.TrimSpace(step.RewardText) == "" {
			return ValidationError{Field: fmt.Sprintf("steps[%d].rewardText", i), Message: "reward text is required"}
		}
	}
	return nil
}
