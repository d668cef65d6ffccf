package validation

import (
	"strings"
	"testing"

	"github.com/giantswarm/serverconf/internal/document"
)

func TestValidateServerName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid", "cocoMDS1", false},
		{"empty", "", true},
		{"blank", "   ", true},
		{"too long", strings.Repeat("x", maxServerNameLength+1), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateServerName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateServerName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateRootURL(t *testing.T) {
	tests := []struct {
		input   string
		wantErr bool
	}{
		{"https://localhost:9443", false},
		{"http://platform.example.com", false},
		{"", true},
		{"localhost:9443", true},
		{"ftp://host", true},
		{"https://", true},
	}
	for _, tt := range tests {
		err := ValidateRootURL("tutPlatformRootURL", tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateRootURL(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
		}
	}
}

func TestValidateEngine(t *testing.T) {
	if err := ValidateEngine(document.EngineConfig{EngineQualifiedName: "A"}); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	err := ValidateEngine(document.EngineConfig{EngineQualifiedName: " "})
	if err == nil {
		t.Fatal("expected error for blank qualified name")
	}
	if !strings.Contains(err.Error(), "engineQualifiedName") {
		t.Errorf("error should name the field, got %v", err)
	}
}

func TestValidateConnection(t *testing.T) {
	tests := []struct {
		name        string
		conn        document.Connection
		errContains string
	}{
		{
			name: "valid",
			conn: document.Connection{ConnectorType: &document.ConnectorType{ConnectorProviderClassName: "Provider"}},
		},
		{
			name:        "missing connector type",
			conn:        document.Connection{QualifiedName: "x"},
			errContains: "connectorType",
		},
		{
			name:        "blank provider",
			conn:        document.Connection{ConnectorType: &document.ConnectorType{}},
			errContains: "connectorProviderClassName",
		},
		{
			name: "blank endpoint and provider",
			conn: document.Connection{
				ConnectorType: &document.ConnectorType{},
				Endpoint:      &document.Endpoint{},
			},
			errContains: "validation failed",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateConnection(tt.conn)
			if tt.errContains == "" {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.errContains) {
				t.Errorf("error = %v, want containing %q", err, tt.errContains)
			}
		})
	}
}

func TestValidateWorkbenches(t *testing.T) {
	if err := ValidateRepositoryWorkbench(document.RepositoryConformanceWorkbenchConfig{TutRepositoryServerName: "tut"}); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if err := ValidateRepositoryWorkbench(document.RepositoryConformanceWorkbenchConfig{MaxSearchResults: -1}); err == nil {
		t.Error("expected error")
	}
	if err := ValidatePerformanceWorkbench(document.RepositoryPerformanceWorkbenchConfig{TutRepositoryServerName: "tut", InstancesPerType: 5}); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if err := ValidatePerformanceWorkbench(document.RepositoryPerformanceWorkbenchConfig{TutRepositoryServerName: "tut", WaitBetweenScenarios: -2}); err == nil {
		t.Error("expected error")
	}
}

func TestValidateServices(t *testing.T) {
	if err := ValidateAccessService(document.AccessServiceConfig{}); err == nil {
		t.Error("expected error for blank access service name")
	}
	if err := ValidateViewService(document.ViewServiceConfig{ViewServiceName: "glossary-author", OMAGServerPlatformRootURL: "not a url"}); err == nil {
		t.Error("expected error for bad root URL")
	}
	if err := ValidateViewService(document.ViewServiceConfig{ViewServiceName: "glossary-author"}); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestValidationErrors_Err(t *testing.T) {
	var errs ValidationErrors
	if errs.Err() != nil {
		t.Error("empty collection should yield nil")
	}
	errs.Add("a", "bad")
	errs.Add("b", "worse", 3)
	if got := errs.Error(); got != "validation failed: field 'a': bad; field 'b': worse" {
		t.Errorf("unexpected message %q", got)
	}
}
