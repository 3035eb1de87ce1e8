package model

import "time"

// Assessment is one completed maturity assessment submission.
type Assessment struct {
	ID               string                   `json:"id" bson:"_id,omitempty"`
	UserID           string                   `json:"userId" bson:"userId"`
	OrganizationID   string                   `json:"organizationId" bson:"organizationId"`
	Answers          map[string]int           `json:"answers" bson:"answers"`                   // question id → 1..5
	DepartmentScores map[string]float64       `json:"departmentScores" bson:"departmentScores"` // department key → 0..100
	OverallScore     int                      `json:"overallScore" bson:"overallScore"`
	CategoryScores   map[string]CategoryScore `json:"categoryScores" bson:"categoryScores"`
	SubmittedAt      time.Time                `json:"submittedAt" bson:"submittedAt"`
}

// CategoryScore is the per-category breakdown exposed for transparency.
type CategoryScore struct {
	Score                float64 `json:"score" bson:"score"`   // raw category average
	Weight               float64 `json:"weight" bson:"weight"` // fixed category weight
	WeightedContribution float64 `json:"weightedContribution" bson:"weightedContribution"`
}

// SubmitAssessmentRequest is the request body for submitting an assessment.
type SubmitAssessmentRequest struct {
	UserID           string             `json:"userId"`
	Answers          map[string]int     `json:"answers"`
	DepartmentScores map[string]float64 `json:"departmentScores"`
}

// SubmitAssessmentResponse acknowledges a submission. Action generation runs
// asynchronously; its outcome is delivered over the dashboard channel.
type SubmitAssessmentResponse struct {
	AssessmentID   string                   `json:"assessmentId"`
	OverallScore   int                      `json:"overallScore"`
	CategoryScores map[string]CategoryScore `json:"categoryScores"`
}

// Scorecard is the read model served to dashboards.
type Scorecard struct {
	AssessmentID   string                   `json:"assessmentId"`
	OrganizationID string                   `json:"organizationId"`
	OverallScore   int                      `json:"overallScore"`
	CategoryScores map[string]CategoryScore `json:"categoryScores"`
	OpenActions    int                      `json:"openActions"`
	SubmittedAt    time.Time                `json:"submittedAt"`
}
