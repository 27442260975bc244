package validation

import (
	"fmt"
	"net/url"
)

const (
	MinThreads = 1
	MaxThreads = 20
)

func ValidateThreadCount(threads int) error {
	if threads < MinThreads || threads > MaxThreads {
		return fmt.Errorf("thread count must be between %d and %d, got %d", MinThreads, MaxThreads, threads)
	}
	return nil
}

func ValidateNonEmptyString(fieldName, value string) error {
	if value == "" {
		return fmt.Errorf("%s cannot be empty", fieldName)
	}
	return nil
}

func ValidateURL(fieldName, value string) error {
	if value == "" {
		return fmt.Errorf("%s cannot be empty", fieldName)
	}
	u, err := url.Parse(value)
	if err != nil {
		return fmt.Errorf("%s is not a valid URL: %w", fieldName, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%s must use http or https, got %q", fieldName, value)
	}
	if u.Host == "" {
		return fmt.Errorf("%s is missing a host: %q", fieldName, value)
	}
	return nil
}

func ValidateTokenPair(accessToken, refreshToken string) error {
	if err := ValidateNonEmptyString("access token", accessToken); err != nil {
		return err
	}
	return ValidateNonEmptyString("refresh token", refreshToken)
}
