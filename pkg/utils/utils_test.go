package utils

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestWhatsAppLink(t *testing.T) {
	tests := []struct {
		name  string
		phone string
		want  string
	}{
		{"local number gets country code", "300 123-4567", "https://wa.me/573001234567?text=Hola%20Ana%21"},
		{"international number kept", "+57 300 123 4567", "https://wa.me/573001234567?text=Hola%20Ana%21"},
		{"no digits", "n/a", ""},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := WhatsAppLink(tt.phone, "+57", "Hola Ana!"); got != tt.want {
				t.Errorf("WhatsAppLink() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFormatPrice(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"0", "$0"},
		{"950", "$950"},
		{"37000", "$37.000"},
		{"1234567.6", "$1.234.568"},
		{"-4500", "-$4.500"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := FormatPrice(decimal.RequireFromString(tt.in)); got != tt.want {
				t.Errorf("FormatPrice(%s) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseDate(t *testing.T) {
	got, err := ParseDate("2026-10-14", time.UTC)
	if err != nil {
		t.Fatalf("ParseDate() error = %v", err)
	}
	if !got.Equal(time.Date(2026, time.October, 14, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("ParseDate() = %v", got)
	}
	if _, err := ParseDate("14/10/2026", time.UTC); err == nil {
		t.Error("ParseDate() accepted a non ISO date")
	}
}

func TestJWTManager(t *testing.T) {
	if _, err := NewJWTManager("", time.Hour); err == nil {
		t.Fatal("NewJWTManager() accepted an empty secret")
	}

	m, err := NewJWTManager("secret", time.Hour)
	if err != nil {
		t.Fatalf("NewJWTManager() error = %v", err)
	}
	token, err := m.GenerateAccessToken("u1", "maria", "waiter")
	if err != nil {
		t.Fatalf("GenerateAccessToken() error = %v", err)
	}
	claims, err := m.ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken() error = %v", err)
	}
	if claims.UserID != "u1" || claims.Username != "maria" || claims.Role != "waiter" {
		t.Errorf("claims = %+v", claims)
	}

	other, _ := NewJWTManager("other-secret", time.Hour)
	if _, err := other.ValidateToken(token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("wrong secret error = %v, want ErrInvalidToken", err)
	}

	m.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	if _, err := m.ValidateToken(token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expired token error = %v, want ErrInvalidToken", err)
	}
}

func TestGetenv(t *testing.T) {
	t.Setenv("LA_STRING", "value")
	t.Setenv("LA_INT", "42")
	t.Setenv("LA_BAD_INT", "forty")
	t.Setenv("LA_BOOL", "yes")
	t.Setenv("LA_DURATION", "15s")
	t.Setenv("LA_LIST", " a, ,b ,c")

	if got := Getenv("LA_STRING", "x"); got != "value" {
		t.Errorf("Getenv() = %q", got)
	}
	if got := Getenv("LA_MISSING", "x"); got != "x" {
		t.Errorf("Getenv(missing) = %q", got)
	}
	if got := GetenvInt("LA_INT", 1); got != 42 {
		t.Errorf("GetenvInt() = %d", got)
	}
	if got := GetenvInt("LA_BAD_INT", 7); got != 7 {
		t.Errorf("GetenvInt(bad) = %d, want fallback", got)
	}
	if !GetenvBool("LA_BOOL", false) {
		t.Error("GetenvBool() = false, want true")
	}
	if got := GetenvDuration("LA_DURATION", time.Minute); got != 15*time.Second {
		t.Errorf("GetenvDuration() = %v", got)
	}
	list := GetenvList("LA_LIST", nil)
	if len(list) != 3 || list[0] != "a" || list[1] != "b" || list[2] != "c" {
		t.Errorf("GetenvList() = %v", list)
	}
}
