package service

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"dealerpulse/internal/cache"
	"dealerpulse/internal/catalog"
	"dealerpulse/internal/config"
	"dealerpulse/internal/model"
	"dealerpulse/internal/repository"
)

// GenerationService orchestrates action generation for a completed
// assessment. It is the only component in the pipeline with side effects:
// one existence check and one batch insert. Generation is exactly-once per
// (assessment, user): a Redis lock admits one concurrent run, the count
// check skips assessments that already have actions, and the unique index on
// the actions collection backstops both.
type GenerationService struct {
	actionRepo     repository.ActionRepo
	lock           cache.GenerationLock
	scorecardCache cache.ScorecardCache
	signalSvc      *SignalService
	actionSvc      *ActionService
	catalog        *catalog.Catalog
	cfg            config.EngineConfig
	broadcaster    Broadcaster
	now            func() time.Time
}

// NewGenerationService creates the orchestrator.
func NewGenerationService(
	actionRepo repository.ActionRepo,
	lock cache.GenerationLock,
	scorecardCache cache.ScorecardCache,
	signalSvc *SignalService,
	actionSvc *ActionService,
	cat *catalog.Catalog,
	cfg config.EngineConfig,
) *GenerationService {
	return &GenerationService{
		actionRepo:     actionRepo,
		lock:           lock,
		scorecardCache: scorecardCache,
		signalSvc:      signalSvc,
		actionSvc:      actionSvc,
		catalog:        cat,
		cfg:            cfg,
		now:            time.Now,
	}
}

// SetBroadcaster sets the broadcaster for dashboard events.
func (s *GenerationService) SetBroadcaster(b Broadcaster) {
	s.broadcaster = b
}

// GenerateActions runs the full pipeline for one assessment. No-op outcomes
// (flag disabled, actions already exist, zero weak answers) are reported as
// success with zero actions generated; only a persistence failure is an
// error, and nothing is retried.
func (s *GenerationService) GenerateActions(ctx context.Context, assessmentID, userID, orgID string, answers map[string]int) model.GenerationResult {
	if !s.cfg.EnableAutoActions {
		return model.GenerationResult{Success: true, ActionsGenerated: 0}
	}

	acquired, err := s.lock.TryAcquire(ctx, assessmentID)
	if err != nil {
		// The lock only narrows the race window; the unique index is the
		// real guarantee, so a lock outage is not fatal.
		log.Printf("generation: lock unavailable for assessment %s: %v", assessmentID, err)
	} else if !acquired {
		return model.GenerationResult{Success: true, ActionsGenerated: 0}
	} else {
		defer s.lock.Release(ctx, assessmentID)
	}

	count, err := s.actionRepo.CountByAssessment(ctx, assessmentID, userID)
	if err != nil {
		return model.GenerationResult{Success: false, Error: fmt.Sprintf("existence check failed: %v", err)}
	}
	if count > 0 {
		return model.GenerationResult{Success: true, ActionsGenerated: 0}
	}

	weights := s.catalog.Questionnaire().QuestionWeights()
	signals := s.signalSvc.GenerateSignals(answers, weights, s.cfg)
	instantiated := s.actionSvc.InstantiateActions(signals, s.cfg.MaxActions)
	if len(instantiated) == 0 {
		return model.GenerationResult{Success: true, ActionsGenerated: 0}
	}

	now := s.now()
	rows := make([]model.Action, 0, len(instantiated))
	for _, action := range instantiated {
		rows = append(rows, s.formatAction(action, assessmentID, userID, orgID, now))
	}

	if err := s.actionRepo.InsertBatch(ctx, rows); err != nil {
		if err == repository.ErrAlreadyGenerated {
			// A concurrent run won the insert; same outcome as the
			// existence check succeeding.
			return model.GenerationResult{Success: true, ActionsGenerated: 0}
		}
		return model.GenerationResult{Success: false, Error: fmt.Sprintf("persist actions: %v", err)}
	}

	// A scorecard cached before the insert still reports zero open actions;
	// drop it so the next read reassembles from Mongo.
	if s.scorecardCache != nil {
		if err := s.scorecardCache.Invalidate(ctx, assessmentID); err != nil {
			log.Printf("generation: scorecard invalidation failed for %s: %v", assessmentID, err)
		}
	}

	if s.broadcaster != nil {
		s.broadcaster.BroadcastToOrg(orgID, "actions_generated", map[string]interface{}{
			"assessmentId": assessmentID,
			"count":        len(rows),
		})
	}

	return model.GenerationResult{Success: true, ActionsGenerated: len(rows)}
}

// formatAction maps an in-memory action onto the persisted row shape. The
// description is augmented with the signal code, the triggering question ids
// and the rationale so every row is traceable back to its evidence.
func (s *GenerationService) formatAction(action model.InstantiatedAction, assessmentID, userID, orgID string, now time.Time) model.Action {
	description := fmt.Sprintf("%s\n\nSignal: %s | Questions: %s | %s",
		action.Template.Description,
		action.SignalCode,
		strings.Join(action.TriggeringQuestionIDs, ", "),
		action.Rationale,
	)

	return model.Action{
		ID:                   uuid.NewString(),
		UserID:               userID,
		OrganizationID:       orgID,
		AssessmentID:         assessmentID,
		TemplateID:           action.Template.TemplateID,
		Department:           action.ModuleKey,
		Priority:             action.Priority,
		ActionTitle:          action.Template.Title,
		ActionDescription:    description,
		Status:               "Open",
		ResponsiblePerson:    action.Template.DefaultOwnerRole,
		TargetCompletionDate: now.AddDate(0, 0, action.Template.DefaultTimeframeDays),
		SupportRequiredFrom:  []string{},
		KPIsLinkedTo:         []string{},
		CreatedAt:            now,
	}
}
