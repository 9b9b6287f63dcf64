package config

import (
	"errors"
	"strings"

	"github.com/Masterminds/semver/v3"

	"mcpup/internal/clients"
	"mcpup/internal/plan"
)

// Validation errors for configuration fields.
var (
	// ErrVersionTooLow indicates the version field is below the minimum.
	ErrVersionTooLow = errors.New("version must be >= 1")

	// ErrInvalidMode indicates an unrecognized install mode.
	ErrInvalidMode = errors.New("invalid install mode")

	// ErrInvalidClient indicates an unrecognized client name.
	ErrInvalidClient = errors.New("invalid client")

	// ErrInvalidVersionConstraint indicates an unparseable version value.
	ErrInvalidVersionConstraint = errors.New("invalid version")

	// ErrInvalidTimeout indicates a non-positive timeout.
	ErrInvalidTimeout = errors.New("timeout must be positive")

	// ErrEmptyName indicates a required name field is blank.
	ErrEmptyName = errors.New("name must not be empty")
)

// Validate checks a Config for validity.
// Returns nil if valid, or a slice of validation errors.
func Validate(cfg *Config) []error {
	if cfg == nil {
		return []error{errors.New("config is nil")}
	}

	var errs []error

	if cfg.Version < 1 {
		errs = append(errs, ErrVersionTooLow)
	}

	if strings.TrimSpace(cfg.Server.Name) == "" {
		errs = append(errs, &FieldError{Field: "server.name", Err: ErrEmptyName})
	}
	if strings.TrimSpace(cfg.Server.Command) == "" {
		errs = append(errs, &FieldError{Field: "server.command", Err: ErrEmptyName})
	}

	if !plan.ValidMode(plan.Mode(cfg.Install.Mode)) {
		errs = append(errs, &FieldError{Field: "install.mode", Value: cfg.Install.Mode, Err: ErrInvalidMode})
	}
	if cfg.Install.TimeoutSeconds <= 0 {
		errs = append(errs, &FieldError{Field: "install.timeout_seconds", Err: ErrInvalidTimeout})
	}
	if cfg.Launch.GraceSeconds <= 0 {
		errs = append(errs, &FieldError{Field: "launch.grace_seconds", Err: ErrInvalidTimeout})
	}

	if cfg.Launch.MinNodeVersion != "" {
		if _, err := semver.NewVersion(cfg.Launch.MinNodeVersion); err != nil {
			errs = append(errs, &FieldError{
				Field: "launch.min_node_version",
				Value: cfg.Launch.MinNodeVersion,
				Err:   ErrInvalidVersionConstraint,
			})
		}
	}

	for _, name := range cfg.Clients.Only {
		if !clients.Valid(clients.Kind(name)) {
			errs = append(errs, &FieldError{Field: "clients.only", Value: name, Err: ErrInvalidClient})
		}
	}

	return errs
}

// FieldError represents a validation error for a specific field.
type FieldError struct {
	Field string
	Value string
	Err   error
}

func (e *FieldError) Error() string {
	if e.Value == "" {
		return e.Field + ": " + e.Err.Error()
	}
	return e.Field + ": " + e.Err.Error() + ": " + e.Value
}

func (e *FieldError) Unwrap() error {
	return e.Err
}
