package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/partialepoch/epochdb/pkg/models"
)

// ValidateOutputFormat validates the output format flag
func ValidateOutputFormat(format string) error {
	validFormats := []string{"text", "json", "yaml"}
	if Contains(validFormats, format) {
		return nil
	}
	return fmt.Errorf("invalid output format: %s (must be: text, json, or yaml)", format)
}

// ValidateEngine validates the search engine flag
func ValidateEngine(engine string) error {
	if Contains([]string{models.EngineBleve, models.EngineLite}, engine) {
		return nil
	}
	return fmt.Errorf("invalid search engine: %s (must be: %s or %s)", engine, models.EngineBleve, models.EngineLite)
}

// ValidateLogLevel validates a log level name
func ValidateLogLevel(level string) error {
	if _, err := ParseLogLevel(level); err != nil {
		return err
	}
	return nil
}

// ValidateLevelRange checks that level bounds are not negative. An
// inverted range is allowed; it simply matches nothing.
func ValidateLevelRange(lo, hi *int) error {
	if lo != nil && *lo < 0 {
		return fmt.Errorf("minimum level cannot be negative: %d", *lo)
	}
	if hi != nil && *hi < 0 {
		return fmt.Errorf("maximum level cannot be negative: %d", *hi)
	}
	return nil
}

// ParseItemID parses an item id argument
func ParseItemID(arg string) (int, error) {
	id, err := strconv.Atoi(strings.TrimSpace(arg))
	if err != nil {
		return 0, fmt.Errorf("invalid item id: %q (must be a number)", arg)
	}
	return id, nil
}

// Contains checks if a string is in a slice
func Contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}
