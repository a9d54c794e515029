package utils

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Getenv retrieves the value of the environment variable named by the key.
// If the variable is not present or its value is empty, Getenv returns the fallback string.
func Getenv(key, fallback string) string {
	value := os.Getenv(key)
	if len(value) == 0 {
		return fallback
	}
	return value
}

// GetenvInt is Getenv for integers. Unparseable values fall back as well.
func GetenvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		LogWarn("Invalid integer in environment, using default", map[string]interface{}{"key": key, "value": value})
		return fallback
	}
	return n
}

// GetenvBool is Getenv for booleans ("1", "true", "yes" and friends).
func GetenvBool(key string, fallback bool) bool {
	value := strings.ToLower(strings.TrimSpace(os.Getenv(key)))
	switch value {
	case "":
		return fallback
	case "1", "t", "true", "y", "yes", "on":
		return true
	case "0", "f", "false", "n", "no", "off":
		return false
	default:
		LogWarn("Invalid boolean in environment, using default", map[string]interface{}{"key": key, "value": value})
		return fallback
	}
}

// GetenvDuration is Getenv for time.Duration values such as "15m" or "4s".
func GetenvDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	d, err := time.ParseDuration(strings.TrimSpace(value))
	if err != nil {
		LogWarn("Invalid duration in environment, using default", map[string]interface{}{"key": key, "value": value})
		return fallback
	}
	return d
}

// GetenvList splits a comma separated variable, dropping blanks.
func GetenvList(key string, fallback []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}
