package auth

import (
	"testing"
)

func TestPasswordHasher_HashAndVerify(t *testing.T) {
	hasher := NewPasswordHasher(DefaultBcryptCost)

	tests := []struct {
		name     string
		password string
	}{
		{name: "simple password", password: "password123"},
		{name: "complex password", password: "P@ssw0rd!#$%^&*()"},
		{name: "unicode password", password: "密码123"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hash, err := hasher.Hash(tt.password)
			if err != nil {
				t.Fatalf("Hash() error = %v", err)
			}
			if hash == "" || hash == tt.password {
				t.Errorf("Hash() = %q, want a non-empty hash distinct from the password", hash)
			}

			if !hasher.Verify(tt.password, hash) {
				t.Error("Verify() = false for correct password")
			}
			if hasher.Verify("wrong-password", hash) {
				t.Error("Verify() = true for wrong password")
			}
		})
	}
}

func TestNewPasswordHasher_CostFallback(t *testing.T) {
	tests := []struct {
		name string
		cost int
		want int
	}{
		{name: "valid cost", cost: 10, want: 10},
		{name: "below minimum", cost: 1, want: DefaultBcryptCost},
		{name: "above maximum", cost: 99, want: DefaultBcryptCost},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewPasswordHasher(tt.cost)
			if h.cost != tt.want {
				t.Errorf("NewPasswordHasher(%d).cost = %d, want %d", tt.cost, h.cost, tt.want)
			}
		})
	}
}
