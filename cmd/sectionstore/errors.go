package main

import (
	"fmt"
	"strings"
)

// CLIError represents a user-friendly CLI error with context and suggestions
type CLIError struct {
	Operation   string   // The operation that failed (e.g., "replay", "validate")
	Cause       string   // The underlying cause (e.g., "script file not found")
	Details     string   // Additional technical details
	Suggestions []string // Helpful suggestions for the user
	Underlying  error    // Original error for debugging
}

// Error implements the error interface
func (e *CLIError) Error() string {
	var msg strings.Builder

	if e.Operation != "" {
		msg.WriteString(fmt.Sprintf("Failed to %s", e.Operation))
	} else {
		msg.WriteString("Operation failed")
	}

	if e.Cause != "" {
		msg.WriteString(fmt.Sprintf(": %s", e.Cause))
	}

	if e.Details != "" {
		msg.WriteString(fmt.Sprintf(" (%s)", e.Details))
	}

	if len(e.Suggestions) > 0 {
		msg.WriteString("\n\nSuggestions:")
		for i, suggestion := range e.Suggestions {
			msg.WriteString(fmt.Sprintf("\n  %d. %s", i+1, suggestion))
		}
	}

	return msg.String()
}

// Unwrap returns the underlying error for error chain compatibility
func (e *CLIError) Unwrap() error {
	return e.Underlying
}

// NewScriptError creates an error for script loading and parsing failures
func NewScriptError(operation, path string, underlying error) *CLIError {
	cause := "script could not be processed"
	suggestions := []string{
		"Check that the file exists and is readable",
		"Run 'sectionstore validate <file>' for a detailed check",
	}

	if underlying != nil {
		errStr := strings.ToLower(underlying.Error())
		switch {
		case strings.Contains(errStr, "no such file"):
			cause = fmt.Sprintf("script file %q not found", path)
		case strings.Contains(errStr, "yaml"):
			cause = fmt.Sprintf("script file %q is not valid YAML", path)
			suggestions = []string{
				"Check indentation; YAML is whitespace sensitive",
				"Quote item values containing ':' or '#'",
			}
		case strings.Contains(errStr, "unknown action"):
			cause = fmt.Sprintf("script file %q uses an unknown action", path)
		}
	}

	return &CLIError{
		Operation:   operation,
		Cause:       cause,
		Details:     errString(underlying),
		Suggestions: suggestions,
		Underlying:  underlying,
	}
}

// NewOutputError creates an error for output formatting failures
func NewOutputError(operation string, underlying error) *CLIError {
	return &CLIError{
		Operation:  operation,
		Cause:      "could not render output",
		Details:    errString(underlying),
		Underlying: underlying,
	}
}

func errString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
