package audit

import (
	"bytes"
	"fmt"
	"sync"
	"text/template"

	"github.com/Masterminds/sprig/v3"
)

// Action identifies the kind of configuration change being narrated.
type Action string

const (
	ActionEnableRepositoryWorkbench  Action = "EnableRepositoryWorkbench"
	ActionEnablePlatformWorkbench    Action = "EnablePlatformWorkbench"
	ActionEnablePerformanceWorkbench Action = "EnablePerformanceWorkbench"
	ActionDisableRepositoryWorkbench Action = "DisableRepositoryWorkbench"
	ActionDisablePlatformWorkbench   Action = "DisablePlatformWorkbench"
	ActionDisableAllWorkbenches      Action = "DisableAllWorkbenches"
	ActionAddEngine                  Action = "AddEngine"
	ActionSetEngines                 Action = "SetEngines"
	ActionClearEngines               Action = "ClearEngines"
	ActionSetSecurityConnection      Action = "SetSecurityConnection"
	ActionClearSecurityConnection    Action = "ClearSecurityConnection"
	ActionConfigureAccessService     Action = "ConfigureAccessService"
	ActionRemoveAccessService        Action = "RemoveAccessService"
	ActionClearAccessServices        Action = "ClearAccessServices"
	ActionConfigureViewService       Action = "ConfigureViewService"
	ActionRemoveViewService          Action = "RemoveViewService"
	ActionClearViewServices          Action = "ClearViewServices"
	ActionSetServerType              Action = "SetServerType"
)

// Data is the input of an action template.
type Data struct {
	ServerName string
	// Subject names the entry the action is about, e.g. an engine or service name.
	Subject string
	// Names lists several subjects, e.g. every engine of a replaced collection.
	Names []string
	// Provisioned lists sections created as prerequisites of the change.
	Provisioned []string
}

// MessageTemplates renders action descriptions.
type MessageTemplates struct {
	mu        sync.RWMutex
	templates map[Action]*template.Template
}

// NewMessageTemplates returns a template set loaded with the default messages.
func NewMessageTemplates() *MessageTemplates {
	m := &MessageTemplates{templates: make(map[Action]*template.Template)}
	for action, text := range defaultTemplates {
		if err := m.SetTemplate(action, text); err != nil {
			panic(fmt.Sprintf("invalid built-in audit template %s: %v", action, err))
		}
	}
	return m
}

const provisionedSuffix = `{{if .Provisioned}} (provisioned {{join ", " .Provisioned}}){{end}}`

var defaultTemplates = map[Action]string{
	ActionEnableRepositoryWorkbench:  `enabled the repository conformance workbench for {{.Subject | quote}}` + provisionedSuffix,
	ActionEnablePlatformWorkbench:    `enabled the platform conformance workbench for {{.Subject}}` + provisionedSuffix,
	ActionEnablePerformanceWorkbench: `enabled the repository performance workbench for {{.Subject | quote}}` + provisionedSuffix,
	ActionDisableRepositoryWorkbench: `disabled the repository conformance workbench`,
	ActionDisablePlatformWorkbench:   `disabled the platform conformance workbench`,
	ActionDisableAllWorkbenches:      `disabled all conformance workbenches`,
	ActionAddEngine:                  `added governance engine {{.Subject | quote}}` + provisionedSuffix,
	ActionSetEngines:                 `set governance engines to [{{.Names | join ", "}}]` + provisionedSuffix,
	ActionClearEngines:               `cleared governance engines`,
	ActionSetSecurityConnection:      `set the server security connector{{with .Subject}} to {{quote .}}{{end}}`,
	ActionClearSecurityConnection:    `cleared the server security connector`,
	ActionConfigureAccessService:     `configured access service {{.Subject | quote}}`,
	ActionRemoveAccessService:        `removed access service {{.Subject | quote}}`,
	ActionClearAccessServices:        `cleared all access services`,
	ActionConfigureViewService:       `configured view service {{.Subject | quote}}`,
	ActionRemoveViewService:          `removed view service {{.Subject | quote}}`,
	ActionClearViewServices:          `cleared all view services`,
	ActionSetServerType:              `set server type to {{.Subject | quote}}`,
}

// SetTemplate parses text and uses it for action.
func (m *MessageTemplates) SetTemplate(action Action, text string) error {
	tmpl, err := template.New(string(action)).Funcs(sprig.TxtFuncMap()).Option("missingkey=zero").Parse(text)
	if err != nil {
		return fmt.Errorf("parsing template for %s: %w", action, err)
	}
	m.mu.Lock()
	m.templates[action] = tmpl
	m.mu.Unlock()
	return nil
}

// Render returns the description of action. Unknown actions fall back to
// the action name.
func (m *MessageTemplates) Render(action Action, data Data) string {
	m.mu.RLock()
	tmpl, ok := m.templates[action]
	m.mu.RUnlock()
	if !ok {
		return fmt.Sprintf("performed %s", action)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return fmt.Sprintf("performed %s", action)
	}
	return buf.String()
}
