// Package errors provides sentinel errors and custom error types for the shipit application.
// Use errors.Is() and errors.As() to check for specific error types.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for common conditions
var (
	// ErrUnknownAdapter indicates that a registry handle does not resolve
	// to an instantiable adapter implementation
	ErrUnknownAdapter = errors.New("unknown adapter")

	// ErrInvalidAdapter indicates that a registry handle does not satisfy
	// the adapter contract
	ErrInvalidAdapter = errors.New("invalid adapter")

	// ErrDetectionFailed indicates that the provider could not be detected
	// from the repository remote
	ErrDetectionFailed = errors.New("provider detection failed")

	// ErrAdapterBuild indicates that an adapter could not be constructed
	// for the selected provider
	ErrAdapterBuild = errors.New("adapter build failed")

	// ErrAuth indicates that the provider rejected the configured credentials
	ErrAuth = errors.New("authentication failed")

	// ErrConfigParse indicates that a configuration file could not be parsed
	ErrConfigParse = errors.New("configuration parse error")

	// ErrNotSupported indicates that the provider does not implement a capability
	ErrNotSupported = errors.New("operation not supported")
)

// ConfigParseError represents a malformed or unreadable configuration file
type ConfigParseError struct {
	Path string
	Err  error
}

func (e *ConfigParseError) Error() string {
	return fmt.Sprintf("failed to parse configuration file %s: %v", e.Path, e.Err)
}

func (e *ConfigParseError) Unwrap() error {
	return e.Err
}

// Is returns true if the target error is ErrConfigParse
func (e *ConfigParseError) Is(target error) bool {
	return target == ErrConfigParse
}

// NewConfigParseError creates a new ConfigParseError
func NewConfigParseError(path string, err error) *ConfigParseError {
	return &ConfigParseError{Path: path, Err: err}
}

// DetectionError represents a failed provider detection attempt
type DetectionError struct {
	Dir string
	Err error
}

func (e *DetectionError) Error() string {
	msg := "could not detect a hosting provider from the repository remote"
	if e.Dir != "" {
		msg += fmt.Sprintf(" in %s", e.Dir)
	}
	if e.Err != nil {
		msg += fmt.Sprintf(": %v", e.Err)
	}
	return msg + "\nRun 'shipit configure' to select a provider explicitly"
}

func (e *DetectionError) Unwrap() error {
	return e.Err
}

// Is returns true if the target error is ErrDetectionFailed
func (e *DetectionError) Is(target error) bool {
	return target == ErrDetectionFailed
}

// NewDetectionError creates a new DetectionError
func NewDetectionError(dir string, err error) *DetectionError {
	return &DetectionError{Dir: dir, Err: err}
}

// AdapterBuildError represents a failure to construct an adapter for a provider
type AdapterBuildError struct {
	Identifier string
	Reason     string
	Err        error
}

func (e *AdapterBuildError) Error() string {
	msg := fmt.Sprintf("failed to build adapter %q", e.Identifier)
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	if e.Err != nil {
		msg += fmt.Sprintf(": %v", e.Err)
	}
	return msg
}

func (e *AdapterBuildError) Unwrap() error {
	return e.Err
}

// Is returns true if the target error is ErrAdapterBuild
func (e *AdapterBuildError) Is(target error) bool {
	return target == ErrAdapterBuild
}

// NewAdapterBuildError creates a new AdapterBuildError
func NewAdapterBuildError(identifier, reason string, err error) *AdapterBuildError {
	return &AdapterBuildError{Identifier: identifier, Reason: reason, Err: err}
}

// AuthError represents rejected credentials, surfaced verbatim from the provider
type AuthError struct {
	Provider string
	Err      error
}

func (e *AuthError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("authentication against %s failed: %v", e.Provider, e.Err)
	}
	return fmt.Sprintf("authentication against %s failed", e.Provider)
}

func (e *AuthError) Unwrap() error {
	return e.Err
}

// Is returns true if the target error is ErrAuth
func (e *AuthError) Is(target error) bool {
	return target == ErrAuth
}

// NewAuthError creates a new AuthError
func NewAuthError(provider string, err error) *AuthError {
	return &AuthError{Provider: provider, Err: err}
}

// NotSupportedError indicates a capability the provider does not implement
type NotSupportedError struct {
	Provider   string
	Capability string
}

func (e *NotSupportedError) Error() string {
	return fmt.Sprintf("%s does not support %s", e.Provider, e.Capability)
}

// Is returns true if the target error is ErrNotSupported
func (e *NotSupportedError) Is(target error) bool {
	return target == ErrNotSupported
}

// NewNotSupportedError creates a new NotSupportedError
func NewNotSupportedError(provider, capability string) *NotSupportedError {
	return &NotSupportedError{Provider: provider, Capability: capability}
}

// GitCommandError represents an error from a git command execution
type GitCommandError struct {
	Command string
	Args    []string
	Stdout  string
	Stderr  string
	Err     error
}

func (e *GitCommandError) Error() string {
	msg := fmt.Sprintf("%s command failed", e.Command)
	if len(e.Args) > 0 {
		msg += fmt.Sprintf(": %s %s", e.Command, strings.Join(e.Args, " "))
	}
	if e.Stderr != "" {
		msg += fmt.Sprintf("\nstderr: %s", e.Stderr)
	}
	if e.Stdout != "" {
		msg += fmt.Sprintf("\nstdout: %s", e.Stdout)
	}
	if e.Err != nil {
		msg += fmt.Sprintf("\n%v", e.Err)
	}
	return msg
}

func (e *GitCommandError) Unwrap() error {
	return e.Err
}

// NewGitCommandError creates a new GitCommandError
func NewGitCommandError(command string, args []string, stdout, stderr string, err error) *GitCommandError {
	return &GitCommandError{
		Command: command,
		Args:    args,
		Stdout:  stdout,
		Stderr:  stderr,
		Err:     err,
	}
}
