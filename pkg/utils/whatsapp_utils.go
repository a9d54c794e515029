package utils

import (
	"fmt"
	"net/url"
	"strings"
)

// WhatsAppLink builds a wa.me deep link for phone with a prefilled message.
// Numbers with ten digits or fewer are treated as local and get countryCode prepended.
// It returns "" when phone has no digits.
func WhatsAppLink(phone, countryCode, message string) string {
	digits := DigitsOnly(phone)
	if digits == "" {
		return ""
	}
	if len(digits) <= 10 {
		digits = DigitsOnly(countryCode) + digits
	}
	return fmt.Sprintf("https://wa.me/%s?text=%s", digits, strings.ReplaceAll(url.QueryEscape(message), "+", "%20"))
}
