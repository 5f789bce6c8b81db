package config

import (
	"fmt"
	"strings"

	"dcragent/internal/match"
	"dcragent/internal/report"
)

type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error for field '%s': %s", e.Field, e.Message)
}

// KeywordError is one configured filter keyword with no counterpart in the
// category's legal vocabulary.
type KeywordError struct {
	Category string
	Option   string
	Keyword  string
	Legal    []string
}

// KeywordValidationError accumulates every keyword failure so the operator
// sees the full damage in one run instead of fixing entries one by one.
type KeywordValidationError struct {
	Errors []KeywordError
}

func (e *KeywordValidationError) Error() string {
	seen := make(map[string]bool, len(e.Errors))
	var categories []string
	for _, ke := range e.Errors {
		if !seen[ke.Category] {
			seen[ke.Category] = true
			categories = append(categories, ke.Category)
		}
	}
	return fmt.Sprintf("invalid filter keywords for: %s", strings.Join(categories, ", "))
}

// ValidateStatic checks structural sanity of the snapshot. It collects all
// failures before reporting.
func ValidateStatic(cfg *Config) error {
	var errs []error

	if err := validateSource(cfg.Source); err != nil {
		errs = append(errs, err)
	}

	if err := validateCache(cfg.Cache); err != nil {
		errs = append(errs, err)
	}

	if err := validateReport(cfg.Report); err != nil {
		errs = append(errs, err)
	}

	if err := validateMail(cfg.Mail); err != nil {
		errs = append(errs, err)
	}

	if err := validateServer(cfg.Server); err != nil {
		errs = append(errs, err)
	}

	if err := validateCircuitBreaker(cfg.CircuitBreaker); err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed: %v", errs)
	}

	return nil
}

func validateSource(cfg SourceConfig) error {
	if len(cfg.Argv()) == 0 {
		return &ValidationError{
			Field:   "Source.Command",
			Message: "source command is required",
		}
	}

	switch cfg.Format {
	case "gpsmon", "jsonl":
	default:
		return &ValidationError{
			Field:   "Source.Format",
			Message: fmt.Sprintf("unknown source format: %s (supported: gpsmon, jsonl)", cfg.Format),
		}
	}

	return nil
}

func validateCache(cfg CacheConfig) error {
	if cfg.ValidPeriodHours <= 0 {
		return &ValidationError{
			Field:   "Cache.CacheValidPeriodHours",
			Message: fmt.Sprintf("validity period must be positive, got %d", cfg.ValidPeriodHours),
		}
	}

	if cfg.Path == "" {
		return &ValidationError{
			Field:   "Cache.Path",
			Message: "cache snapshot path is required",
		}
	}

	return nil
}

func validateReport(cfg FileSinkConfig) error {
	if !cfg.Use {
		return nil
	}

	if cfg.Path == "" {
		return &ValidationError{
			Field:   "Report.Path",
			Message: "report file path is required when the report channel is in use",
		}
	}

	if cfg.RotateDays <= 0 {
		return &ValidationError{
			Field:   "Report.RotateDays",
			Message: fmt.Sprintf("rotation period must be positive, got %d", cfg.RotateDays),
		}
	}

	if cfg.MaxBackups < 0 {
		return &ValidationError{
			Field:   "Report.MaxBackups",
			Message: "backup count must be non-negative",
		}
	}

	return nil
}

func validateMail(cfg MailSinkConfig) error {
	if !cfg.Use {
		return nil
	}

	if cfg.Host == "" {
		return &ValidationError{
			Field:   "Mail.Host",
			Message: "mail host is required when the mail channel is in use",
		}
	}

	if cfg.Port < 1 || cfg.Port > 65535 {
		return &ValidationError{
			Field:   "Mail.Port",
			Message: fmt.Sprintf("port must be between 1 and 65535, got %d", cfg.Port),
		}
	}

	if cfg.Address == "" {
		return &ValidationError{
			Field:   "Mail.Address",
			Message: "mail address is required when the mail channel is in use",
		}
	}

	if cfg.TimeoutSeconds <= 0 {
		return &ValidationError{
			Field:   "Mail.TimeoutSeconds",
			Message: "send timeout must be positive",
		}
	}

	return nil
}

func validateServer(cfg ServerConfig) error {
	if !cfg.Use {
		return nil
	}

	if cfg.Port < 1 || cfg.Port > 65535 {
		return &ValidationError{
			Field:   "Server.Port",
			Message: fmt.Sprintf("port must be between 1 and 65535, got %d", cfg.Port),
		}
	}

	return nil
}

func validateCircuitBreaker(cfg CircuitBreakerConfig) error {
	if !cfg.Enabled {
		return nil
	}

	if cfg.FailureRatio <= 0 || cfg.FailureRatio > 1 {
		return &ValidationError{
			Field:   "CircuitBreaker.FailureRatio",
			Message: fmt.Sprintf("failure ratio must be in (0, 1], got %g", cfg.FailureRatio),
		}
	}

	if cfg.Timeout <= 0 {
		return &ValidationError{
			Field:   "CircuitBreaker.Timeout",
			Message: "open-state timeout must be positive",
		}
	}

	return nil
}

// ValidateKeywords checks every configured filter keyword against the
// category's closed vocabulary, disabled categories included: a typo in a
// keyword silently suppresses warnings at runtime, so it is fatal here.
func ValidateKeywords(cfg *Config) error {
	var failures []KeywordError

	for _, cat := range report.Categories() {
		d := cat.Descriptor()
		if d.Vocabulary == report.VocabularyNone {
			continue
		}

		cc := cfg.Category(cat)
		if match.Blank(cc.Keywords) {
			continue
		}

		legal := d.Vocabulary.Values()
		for _, kw := range cc.Keywords {
			if match.All([]string{kw}, legal) {
				continue
			}
			failures = append(failures, KeywordError{
				Category: d.Name,
				Option:   d.KeywordKey,
				Keyword:  strings.TrimSpace(kw),
				Legal:    legal,
			})
		}
	}

	if len(failures) > 0 {
		return &KeywordValidationError{Errors: failures}
	}

	return nil
}
