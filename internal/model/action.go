package model

import "time"

// Priority of a persisted improvement action.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	// PriorityCritical is accepted by the persisted schema but is never
	// produced by the generation pipeline; it is reserved for manual triage.
	PriorityCritical Priority = "critical"
)

// PriorityForSeverity maps a signal severity to an action priority.
func PriorityForSeverity(s Severity) Priority {
	switch s {
	case SeverityHigh:
		return PriorityHigh
	case SeverityMedium:
		return PriorityMedium
	default:
		return PriorityLow
	}
}

// ActionTemplate is a reusable, catalog-defined remediation blueprint tied to
// exactly one signal code. Templates are static, read-only configuration.
type ActionTemplate struct {
	TemplateID           string     `json:"templateId"`
	Code                 SignalCode `json:"signalCode"`
	Title                string     `json:"title"`
	Description          string     `json:"description"`
	DefaultOwnerRole     string     `json:"defaultOwnerRole"`
	DefaultTimeframeDays int        `json:"defaultTimeframeDays"`
	ImplementationSteps  []string   `json:"implementationSteps"`
}

// InstantiatedAction is a template bound to a specific signal occurrence.
// It exists only in memory until formatted for persistence.
type InstantiatedAction struct {
	Template              ActionTemplate `json:"template"`
	Priority              Priority       `json:"priority"`
	ModuleKey             string         `json:"moduleKey"`
	SignalCode            SignalCode     `json:"signalCode"`
	TriggeringQuestionIDs []string       `json:"triggeringQuestionIds"`
	Rationale             string         `json:"rationale"`
}

// Action is the persisted improvement-action row, shaped for the external
// store's schema (hence the snake_case field names).
type Action struct {
	ID                   string    `json:"id" bson:"_id,omitempty"`
	UserID               string    `json:"user_id" bson:"user_id"`
	OrganizationID       string    `json:"organization_id" bson:"organization_id"`
	AssessmentID         string    `json:"assessment_id" bson:"assessment_id"`
	TemplateID           string    `json:"template_id" bson:"template_id"`
	Department           string    `json:"department" bson:"department"`
	Priority             Priority  `json:"priority" bson:"priority"`
	ActionTitle          string    `json:"action_title" bson:"action_title"`
	ActionDescription    string    `json:"action_description" bson:"action_description"`
	Status               string    `json:"status" bson:"status"` // always "Open" at creation
	ResponsiblePerson    string    `json:"responsible_person" bson:"responsible_person"`
	TargetCompletionDate time.Time `json:"target_completion_date" bson:"target_completion_date"`
	SupportRequiredFrom  []string  `json:"support_required_from" bson:"support_required_from"`
	KPIsLinkedTo         []string  `json:"kpis_linked_to" bson:"kpis_linked_to"`
	CreatedAt            time.Time `json:"created_at" bson:"created_at"`
}

// GenerationResult reports the outcome of one action-generation invocation.
type GenerationResult struct {
	Success          bool   `json:"success"`
	ActionsGenerated int    `json:"actionsGenerated"`
	Error            string `json:"error,omitempty"`
}
