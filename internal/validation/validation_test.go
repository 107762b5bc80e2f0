package validation

import (
	"errors"
	"testing"

	"stickermissions/internal/models"
)

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		name    string
		email   string
		wantErr bool
	}{
		{
			name:    "valid email",
			email:   "test@example.com",
			wantErr: false,
		},
		{
			name:    "valid email with subdomain",
			email:   "user@mail.example.com",
			wantErr: false,
		},
		{
			name:    "valid email with plus",
			email:   "user+tag@example.com",
			wantErr: false,
		},
		{
			name:    "missing @",
			email:   "testexample.com",
			wantErr: true,
		},
		{
			name:    "missing domain",
			email:   "test@",
			wantErr: true,
		},
		{
			name:    "missing local part",
			email:   "@example.com",
			wantErr: true,
		},
		{
			name:    "empty string",
			email:   "",
			wantErr: true,
		},
		{
			name:    "spaces in email",
			email:   "test @example.com",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateEmail(tt.email)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateEmail(%q) error = %v, wantErr %v", tt.email, err, tt.wantErr)
			}
		})
	}
}

func TestValidateName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{name: "valid name", input: "Mina", wantErr: false},
		{name: "single letter", input: "J", wantErr: false},
		{name: "empty", input: "", wantErr: true},
		{name: "whitespace only", input: "   ", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateMission(t *testing.T) {
	tests := []struct {
		name      string
		title     string
		duration  int
		wantField string
	}{
		{name: "valid", title: "Read", duration: 10},
		{name: "empty title", title: " ", duration: 10, wantField: "title"},
		{name: "zero duration", title: "Read", duration: 0, wantField: "durationMinutes"},
		{name: "negative duration", title: "Read", duration: -5, wantField: "durationMinutes"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateMission(tt.title, tt.duration)
			if tt.wantField == "" {
				if err != nil {
					t.Fatalf("ValidateMission() error = %v, want nil", err)
				}
				return
			}
			var verr ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("ValidateMission() error = %v, want ValidationError", err)
			}
			if verr.Field != tt.wantField {
				t.Errorf("ValidationError.Field = %v, want %v", verr.Field, tt.wantField)
			}
		})
	}
}

func TestValidatePIN(t *testing.T) {
	tests := []struct {
		pin     string
		wantErr bool
	}{
		{pin: "0000", wantErr: false},
		{pin: "1234", wantErr: false},
		{pin: "123", wantErr: true},
		{pin: "12345", wantErr: true},
		{pin: "12a4", wantErr: true},
		{pin: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.pin, func(t *testing.T) {
			err := ValidatePIN(tt.pin)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePIN(%q) error = %v, wantErr %v", tt.pin, err, tt.wantErr)
			}
		})
	}
}

func TestValidateRewardConfig(t *testing.T) {
	step := models.RewardStep{StickersThreshold: 0, RewardText: "Ice cream"}
	tests := []struct {
		name    string
		config  models.RewardConfig
		wantErr bool
	}{
		{
			name:    "empty steps allowed",
			config:  models.RewardConfig{Type: models.RewardText},
			wantErr: false,
		},
		{
			name:    "five steps",
			config:  models.RewardConfig{Type: models.RewardCurrency, Steps: []models.RewardStep{step, step, step, step, step}},
			wantErr: false,
		},
		{
			name:    "six steps",
			config:  models.RewardConfig{Type: models.RewardText, Steps: []models.RewardStep{step, step, step, step, step, step}},
			wantErr: true,
		},
		{
			name:    "unknown type",
			config:  models.RewardConfig{Type: "points"},
			wantErr: true,
		},
		{
			name:    "negative threshold",
			config:  models.RewardConfig{Type: models.RewardText, Steps: []models.RewardStep{{StickersThreshold: -1, RewardText: "x"}}},
			wantErr: true,
		},
		{
			name:    "blank text",
			config:  models.RewardConfig{Type: models.RewardText, Steps: []models.RewardStep{{StickersThreshold: 3}}},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRewardConfig(tt.config)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateRewardConfig() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidatePresetName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{name: "valid", input: "School days", wantErr: false},
		{name: "padded", input: "  Weekend  ", wantErr: false},
		{name: "blank", input: "   ", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePresetName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePresetName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}
