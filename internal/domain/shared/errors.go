package shared

import "fmt"

// DomainError is the base error type for all domain errors
type DomainError struct {
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

func NewDomainError(message string) *DomainError {
	return &DomainError{Message: message}
}

// Configuration errors

// ConfigError reports a network configuration the planner refuses to search.
// Field names the offending input, e.g. "city_count" or "roads[3]".
type ConfigError struct {
	*DomainError
	Field  string
	Reason string
}

func NewConfigError(field, reason string) *ConfigError {
	return &ConfigError{
		DomainError: &DomainError{Message: fmt.Sprintf("invalid configuration: %s: %s", field, reason)},
		Field:       field,
		Reason:      reason,
	}
}

// Fuel errors

type InsufficientFuelError struct {
	*DomainError
	Required  int
	Available int
}

func NewInsufficientFuelError(required, available int) *InsufficientFuelError {
	return &InsufficientFuelError{
		DomainError: NewDomainError(fmt.Sprintf("insufficient fuel: need %d, have %d", required, available)),
		Required:    required,
		Available:   available,
	}
}

// Validation error

type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// Repository errors

type NotFoundError struct {
	*DomainError
	Entity string
	Key    string
}

func NewNotFoundError(entity, key string) *NotFoundError {
	return &NotFoundError{
		DomainError: NewDomainError(fmt.Sprintf("%s not found: %s", entity, key)),
		Entity:      entity,
		Key:         key,
	}
}
