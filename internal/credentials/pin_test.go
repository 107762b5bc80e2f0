package credentials

import "testing"

func TestCheckPINFactoryDefault(t *testing.T) {
	tests := []struct {
		name string
		pin  string
		want bool
	}{
		{name: "factory pin", pin: DefaultPIN, want: true},
		{name: "other pin", pin: "0000", want: false},
		{name: "empty", pin: "", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CheckPIN(tt.pin, ""); got != tt.want {
				t.Errorf("CheckPIN(%q, \"\") = %v, want %v", tt.pin, got, tt.want)
			}
		})
	}
}

func TestHashPIN(t *testing.T) {
	hash, err := HashPIN("5678")
	if err != nil {
		t.Fatalf("HashPIN() error = %v", err)
	}
	if hash == "" || hash == "5678" {
		t.Fatalf("HashPIN() = %q, want a bcrypt hash", hash)
	}

	if !CheckPIN("5678", hash) {
		t.Error("CheckPIN(5678) = false, want true")
	}
	if CheckPIN("1234", hash) {
		t.Error("CheckPIN(1234) = true after change, want false")
	}
}

func TestHashPINRejectsMalformed(t *testing.T) {
	for _, pin := range []string{"", "123", "abcd", "12345"} {
		if _, err := HashPIN(pin); err == nil {
			t.Errorf("HashPIN(%q) error = nil, want validation error", pin)
		}
	}
}
