package model

import "sort"

// SignalCode identifies a specific failure mode detected across weak answers.
// The set is closed: every questionnaire question maps to exactly one code,
// or to SignalNone when it has no meaningful failure mode.
type SignalCode string

const (
	SignalNone               SignalCode = "NONE"
	SignalLeadLeakage        SignalCode = "LEAD_LEAKAGE"
	SignalAgedInventory      SignalCode = "AGED_INVENTORY"
	SignalPricingDiscipline  SignalCode = "PRICING_DISCIPLINE"
	SignalServiceCapacity    SignalCode = "SERVICE_CAPACITY"
	SignalCustomerRetention  SignalCode = "CUSTOMER_RETENTION"
	SignalPartsObsolescence  SignalCode = "PARTS_OBSOLESCENCE"
	SignalCashflowVisibility SignalCode = "CASHFLOW_VISIBILITY"
	SignalProcessAdherence   SignalCode = "PROCESS_ADHERENCE"
)

// Severity classifies a signal's urgency.
type Severity string

const (
	SeverityLow    Severity = "LOW"
	SeverityMedium Severity = "MEDIUM"
	SeverityHigh   Severity = "HIGH"
)

// Rank orders severities: HIGH > MEDIUM > LOW.
func (s Severity) Rank() int {
	switch s {
	case SeverityHigh:
		return 3
	case SeverityMedium:
		return 2
	default:
		return 1
	}
}

// Escalate bumps the severity by one level. HIGH does not escalate further.
func (s Severity) Escalate() Severity {
	switch s {
	case SeverityLow:
		return SeverityMedium
	case SeverityMedium:
		return SeverityHigh
	default:
		return SeverityHigh
	}
}

// Max returns the higher of two severities.
func (s Severity) Max(other Severity) Severity {
	if other.Rank() > s.Rank() {
		return other
	}
	return s
}

// SignalMapping ties a question to the failure mode it can evidence.
type SignalMapping struct {
	QuestionID string     `json:"questionId"`
	Code       SignalCode `json:"signalCode"`
	ModuleKey  string     `json:"moduleKey"` // department key
}

// Signal is a typed, deduplicated indication that a failure mode was detected
// within one module. Signals are recomputed from scratch on every evaluation
// and never mutated after construction.
type Signal struct {
	Code                  SignalCode     `json:"signalCode"`
	Severity              Severity       `json:"severity"`
	ModuleKey             string         `json:"moduleKey"`
	TriggeringQuestionIDs []string       `json:"triggeringQuestionIds"`
	Rationale             string         `json:"rationale"`
	SourceQuestionScores  map[string]int `json:"sourceQuestionScores"`
}

// SortQuestionIDs keeps the triggering id list in a stable order so repeated
// evaluations of the same answers produce identical signals.
func (s *Signal) SortQuestionIDs() {
	sort.Strings(s.TriggeringQuestionIDs)
}
