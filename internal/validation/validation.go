// Package validation holds the precondition checks run before any
// configuration change is attempted.
package validation

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/giantswarm/serverconf/internal/document"
)

const maxServerNameLength = 256

// ValidationError represents a rejected input with context.
type ValidationError struct {
	Field   string
	Value   interface{}
	Message string
}

// Error implements the error interface
func (ve ValidationError) Error() string {
	if ve.Field == "" {
		return ve.Message
	}
	return fmt.Sprintf("field '%s': %s", ve.Field, ve.Message)
}

// ValidationErrors is a collection of validation errors
type ValidationErrors []ValidationError

// Error implements the error interface for multiple validation errors
func (ve ValidationErrors) Error() string {
	if len(ve) == 0 {
		return "no validation errors"
	}
	if len(ve) == 1 {
		return ve[0].Error()
	}

	var messages []string
	for _, err := range ve {
		messages = append(messages, err.Error())
	}
	return fmt.Sprintf("validation failed: %s", strings.Join(messages, "; "))
}

// Add appends a validation error.
func (ve *ValidationErrors) Add(field, message string, value ...interface{}) {
	var val interface{}
	if len(value) > 0 {
		val = value[0]
	}
	*ve = append(*ve, ValidationError{Field: field, Value: val, Message: message})
}

// Err returns nil for an empty collection and the collection otherwise.
func (ve ValidationErrors) Err() error {
	if len(ve) == 0 {
		return nil
	}
	return ve
}

// ValidateRequired checks that a required string field is not blank.
func ValidateRequired(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return ValidationError{Field: field, Value: value, Message: "must not be blank"}
	}
	return nil
}

// ValidateServerName checks the document key.
func ValidateServerName(serverName string) error {
	if err := ValidateRequired("serverName", serverName); err != nil {
		return err
	}
	if len(serverName) > maxServerNameLength {
		return ValidationError{Field: "serverName", Value: serverName, Message: fmt.Sprintf("must not exceed %d characters", maxServerNameLength)}
	}
	return nil
}

// ValidateUserID checks an acting or delegating user identifier.
func ValidateUserID(field, userID string) error {
	return ValidateRequired(field, userID)
}

// ValidateRootURL checks that a platform root URL is an absolute http(s) URL.
func ValidateRootURL(field, rootURL string) error {
	if err := ValidateRequired(field, rootURL); err != nil {
		return err
	}
	u, err := url.Parse(rootURL)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return ValidationError{Field: field, Value: rootURL, Message: "must be an absolute http or https URL"}
	}
	return nil
}

// ValidateEngine checks an engine before it is added.
func ValidateEngine(engine document.EngineConfig) error {
	return ValidateRequired("engineQualifiedName", engine.EngineQualifiedName)
}

// ValidateConnection checks that a connection descriptor is structurally usable.
func ValidateConnection(conn document.Connection) error {
	var errs ValidationErrors
	if conn.ConnectorType == nil {
		errs.Add("connectorType", "must be supplied")
	} else if strings.TrimSpace(conn.ConnectorType.ConnectorProviderClassName) == "" {
		errs.Add("connectorType.connectorProviderClassName", "must not be blank")
	}
	if conn.Endpoint != nil && strings.TrimSpace(conn.Endpoint.Address) == "" {
		errs.Add("endpoint.address", "must not be blank when an endpoint is supplied")
	}
	return errs.Err()
}

// ValidateRepositoryWorkbench checks a repository conformance workbench.
func ValidateRepositoryWorkbench(wb document.RepositoryConformanceWorkbenchConfig) error {
	var errs ValidationErrors
	if strings.TrimSpace(wb.TutRepositoryServerName) == "" {
		errs.Add("tutRepositoryServerName", "must not be blank")
	}
	if wb.MaxSearchResults < 0 {
		errs.Add("maxSearchResults", "must not be negative", wb.MaxSearchResults)
	}
	return errs.Err()
}

// ValidatePerformanceWorkbench checks a repository performance workbench.
func ValidatePerformanceWorkbench(wb document.RepositoryPerformanceWorkbenchConfig) error {
	var errs ValidationErrors
	if strings.TrimSpace(wb.TutRepositoryServerName) == "" {
		errs.Add("tutRepositoryServerName", "must not be blank")
	}
	if wb.InstancesPerType < 0 {
		errs.Add("instancesPerType", "must not be negative", wb.InstancesPerType)
	}
	if wb.MaxSearchResults < 0 {
		errs.Add("maxSearchResults", "must not be negative", wb.MaxSearchResults)
	}
	if wb.WaitBetweenScenarios < 0 {
		errs.Add("waitBetweenScenarios", "must not be negative", wb.WaitBetweenScenarios)
	}
	return errs.Err()
}

// ValidateAccessService checks an access service entry.
func ValidateAccessService(svc document.AccessServiceConfig) error {
	return ValidateRequired("accessServiceName", svc.AccessServiceName)
}

// ValidateViewService checks a view service entry.
func ValidateViewService(svc document.ViewServiceConfig) error {
	if err := ValidateRequired("viewServiceName", svc.ViewServiceName); err != nil {
		return err
	}
	if svc.OMAGServerPlatformRootURL != "" {
		return ValidateRootURL("omagServerPlatformRootURL", svc.OMAGServerPlatformRootURL)
	}
	return nil
}
