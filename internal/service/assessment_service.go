package service

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"

	"dealerpulse/internal/model"
	"dealerpulse/internal/repository"
)

// AssessmentService handles assessment submission: it scores the submission
// synchronously, persists it, and kicks off action generation in the
// background. Generation is best-effort enrichment — its failure never
// blocks the submission response.
type AssessmentService struct {
	assessmentRepo repository.AssessmentRepo
	scoringSvc     *ScoringService
	generationSvc  *GenerationService
	broadcaster    Broadcaster
}

// NewAssessmentService creates an assessment service.
func NewAssessmentService(
	assessmentRepo repository.AssessmentRepo,
	scoringSvc *ScoringService,
	generationSvc *GenerationService,
) *AssessmentService {
	return &AssessmentService{
		assessmentRepo: assessmentRepo,
		scoringSvc:     scoringSvc,
		generationSvc:  generationSvc,
	}
}

// SetBroadcaster sets the broadcaster for dashboard events.
func (s *AssessmentService) SetBroadcaster(b Broadcaster) {
	s.broadcaster = b
}

// Submit validates and persists a completed assessment, then triggers
// action generation asynchronously.
func (s *AssessmentService) Submit(ctx context.Context, orgID string, req *model.SubmitAssessmentRequest) (*model.SubmitAssessmentResponse, error) {
	if req.UserID == "" {
		return nil, fmt.Errorf("userId is required")
	}
	for questionID, score := range req.Answers {
		if score < 1 || score > 5 {
			return nil, fmt.Errorf("answer for %s out of range: %d", questionID, score)
		}
	}

	overall, err := s.scoringSvc.CalculateWeightedScore(req.DepartmentScores)
	if err != nil {
		// Non-fatal: the assessment is stored with a zero score.
		log.Printf("assessment: scoring produced no result: %v", err)
	}
	categories := s.scoringSvc.CalculateCategoryScores(req.DepartmentScores)

	assessment := &model.Assessment{
		ID:               uuid.NewString(),
		UserID:           req.UserID,
		OrganizationID:   orgID,
		Answers:          req.Answers,
		DepartmentScores: req.DepartmentScores,
		OverallScore:     overall,
		CategoryScores:   categories,
	}
	if err := s.assessmentRepo.Create(ctx, assessment); err != nil {
		return nil, fmt.Errorf("persist assessment: %w", err)
	}

	if s.broadcaster != nil {
		s.broadcaster.BroadcastToOrg(orgID, "assessment_scored", map[string]interface{}{
			"assessmentId": assessment.ID,
			"overallScore": overall,
		})
	}

	// Generation runs detached from the request so a slow or failing insert
	// cannot block the user from seeing their completed assessment.
	go func(assessmentID, userID, organizationID string, answers map[string]int) {
		defer func() {
			if r := recover(); r != nil {
				log.Printf("assessment: recovered from panic in action generation: %v", r)
			}
		}()
		result := s.generationSvc.GenerateActions(context.Background(), assessmentID, userID, organizationID, answers)
		if !result.Success {
			log.Printf("assessment: action generation failed for %s: %s", assessmentID, result.Error)
		}
	}(assessment.ID, assessment.UserID, assessment.OrganizationID, assessment.Answers)

	return &model.SubmitAssessmentResponse{
		AssessmentID:   assessment.ID,
		OverallScore:   overall,
		CategoryScores: categories,
	}, nil
}

// Get returns one assessment, or nil when it does not exist.
func (s *AssessmentService) Get(ctx context.Context, id string) (*model.Assessment, error) {
	return s.assessmentRepo.GetByID(ctx, id)
}

// ListByOrganization returns an organization's assessments, newest first.
func (s *AssessmentService) ListByOrganization(ctx context.Context, orgID string) ([]*model.Assessment, error) {
	return s.assessmentRepo.ListByOrganization(ctx, orgID)
}

// Regenerate re-runs action generation for an existing assessment, e.g.
// after a page reload retriggers the flow. The orchestrator's idempotency
// guard makes this safe to call any number of times.
func (s *AssessmentService) Regenerate(ctx context.Context, assessmentID string) (model.GenerationResult, error) {
	assessment, err := s.assessmentRepo.GetByID(ctx, assessmentID)
	if err != nil {
		return model.GenerationResult{}, err
	}
	if assessment == nil {
		return model.GenerationResult{}, fmt.Errorf("assessment not found")
	}
	return s.generationSvc.GenerateActions(ctx, assessment.ID, assessment.UserID, assessment.OrganizationID, assessment.Answers), nil
}
