// pkg/registry/schema.go
package registry

import apperrors "career-workers/internal/common/errors"

// ActivityRegistry lists the service tasks the worker manager may serve.
type ActivityRegistry struct {
	Version     string     `json:"version"`
	LastUpdated string     `json:"lastUpdated"`
	Activities  []Activity `json:"activities"`
}

// Activity describes one BPMN service task. InputSchema and OutputSchema
// map process variable names to their JSON types.
type Activity struct {
	ID                   string                `json:"id"`
	DisplayName          string                `json:"displayName"`
	Description          string                `json:"description"`
	Category             string                `json:"category"`
	Version              string                `json:"version"`
	TaskType             string                `json:"taskType"`
	ImplementationStatus string                `json:"implementationStatus"`
	InputSchema          map[string]string     `json:"inputSchema"`
	OutputSchema         map[string]string     `json:"outputSchema"`
	ErrorCodes           []apperrors.ErrorCode `json:"errorCodes"`
	Timeout              string                `json:"timeout"`
	Retries              int                   `json:"retries"`
	Workflows            []string              `json:"workflows"`
	Tags                 []string              `json:"tags"`
}

const (
	StatusPlanned    = "planned"
	StatusInProgress = "in-progress"
	StatusCompleted  = "completed"
	StatusVerified   = "verified"
)

var (
	statuses = map[string]bool{
		StatusPlanned:    true,
		StatusInProgress: true,
		StatusCompleted:  true,
		StatusVerified:   true,
	}

	variableTypes = map[string]bool{
		"string":  true,
		"integer": true,
		"number":  true,
		"boolean": true,
		"object":  true,
		"array":   true,
	}
)
