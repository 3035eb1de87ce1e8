package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dealerpulse/internal/catalog"
	"dealerpulse/internal/config"
	"dealerpulse/internal/model"
	"dealerpulse/internal/repository"
)

type fakeActionRepo struct {
	existing  int64
	countErr  error
	insertErr error
	inserted  []model.Action
}

func (f *fakeActionRepo) EnsureIndexes(ctx context.Context) error { return nil }

func (f *fakeActionRepo) CountByAssessment(ctx context.Context, assessmentID, userID string) (int64, error) {
	return f.existing, f.countErr
}

func (f *fakeActionRepo) InsertBatch(ctx context.Context, actions []model.Action) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	f.inserted = append(f.inserted, actions...)
	return nil
}

func (f *fakeActionRepo) GetByAssessment(ctx context.Context, assessmentID string) ([]*model.Action, error) {
	out := make([]*model.Action, len(f.inserted))
	for i := range f.inserted {
		out[i] = &f.inserted[i]
	}
	return out, nil
}

type fakeLock struct {
	acquired   bool
	acquireErr error
	released   int
}

func (f *fakeLock) TryAcquire(ctx context.Context, assessmentID string) (bool, error) {
	return f.acquired, f.acquireErr
}

func (f *fakeLock) Release(ctx context.Context, assessmentID string) error {
	f.released++
	return nil
}

type fakeBroadcaster struct {
	orgID   string
	msgType string
	payload interface{}
	calls   int
}

func (f *fakeBroadcaster) BroadcastToOrg(orgID string, msgType string, payload interface{}) {
	f.orgID = orgID
	f.msgType = msgType
	f.payload = payload
	f.calls++
}

func newGenerationFixture(repo repository.ActionRepo, lock *fakeLock, cfg config.EngineConfig) *GenerationService {
	cat := catalog.NewDefault()
	return NewGenerationService(
		repo,
		lock,
		newFakeScorecardCache(),
		NewSignalService(cat),
		NewActionService(cat),
		cat,
		cfg,
	)
}

// weakAnswers flags the two heavy financial questions, which maps to
// CASHFLOW_VISIBILITY with two templates in the default catalog.
func weakAnswers() map[string]int {
	answers := make(map[string]int)
	for _, section := range catalog.NewDefault().Questionnaire().Sections {
		for _, q := range section.Questions {
			answers[q.ID] = 5
		}
	}
	answers["fin-1"] = 1
	answers["fin-2"] = 2
	return answers
}

func TestGenerateActions_PersistsAndBroadcasts(t *testing.T) {
	repo := &fakeActionRepo{}
	lock := &fakeLock{acquired: true}
	svc := newGenerationFixture(repo, lock, config.DefaultEngineConfig())

	fixed := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return fixed }

	bc := &fakeBroadcaster{}
	svc.SetBroadcaster(bc)

	result := svc.GenerateActions(context.Background(), "a-1", "u-1", "org-1", weakAnswers())

	require.True(t, result.Success)
	assert.Equal(t, 2, result.ActionsGenerated)
	require.Len(t, repo.inserted, 2)

	first := repo.inserted[0]
	assert.Equal(t, "a-1", first.AssessmentID)
	assert.Equal(t, "u-1", first.UserID)
	assert.Equal(t, "org-1", first.OrganizationID)
	assert.Equal(t, model.DepartmentFinancialOps, first.Department)
	assert.Equal(t, "Open", first.Status)
	assert.NotEmpty(t, first.ID)
	assert.Equal(t, "tpl-cashflow-forecast", first.TemplateID)
	assert.Contains(t, first.ActionDescription, "Signal: CASHFLOW_VISIBILITY")
	assert.Contains(t, first.ActionDescription, "fin-1, fin-2")
	assert.Equal(t, fixed, first.CreatedAt)
	assert.Equal(t, fixed.AddDate(0, 0, 30), first.TargetCompletionDate)

	assert.Equal(t, 1, bc.calls)
	assert.Equal(t, "org-1", bc.orgID)
	assert.Equal(t, "actions_generated", bc.msgType)
	assert.Equal(t, 1, lock.released)
}

func TestGenerateActions_InvalidatesStaleScorecard(t *testing.T) {
	repo := &fakeActionRepo{}
	lock := &fakeLock{acquired: true}
	scorecards := newFakeScorecardCache()
	scorecards.stored["a-1"] = &model.Scorecard{AssessmentID: "a-1", OpenActions: 0}

	cat := catalog.NewDefault()
	svc := NewGenerationService(
		repo,
		lock,
		scorecards,
		NewSignalService(cat),
		NewActionService(cat),
		cat,
		config.DefaultEngineConfig(),
	)

	result := svc.GenerateActions(context.Background(), "a-1", "u-1", "org-1", weakAnswers())

	require.True(t, result.Success)
	assert.Equal(t, 2, result.ActionsGenerated)
	assert.Nil(t, scorecards.stored["a-1"], "stale scorecard must be dropped after insert")
}

func TestGenerateActions_NoInsertLeavesScorecardCached(t *testing.T) {
	repo := &fakeActionRepo{existing: 3}
	lock := &fakeLock{acquired: true}
	scorecards := newFakeScorecardCache()
	scorecards.stored["a-1"] = &model.Scorecard{AssessmentID: "a-1", OpenActions: 3}

	cat := catalog.NewDefault()
	svc := NewGenerationService(
		repo,
		lock,
		scorecards,
		NewSignalService(cat),
		NewActionService(cat),
		cat,
		config.DefaultEngineConfig(),
	)

	result := svc.GenerateActions(context.Background(), "a-1", "u-1", "org-1", weakAnswers())

	require.True(t, result.Success)
	assert.Equal(t, 0, result.ActionsGenerated)
	assert.NotNil(t, scorecards.stored["a-1"])
}

func TestGenerateActions_FlagDisabled(t *testing.T) {
	repo := &fakeActionRepo{}
	lock := &fakeLock{acquired: true}
	cfg := config.DefaultEngineConfig()
	cfg.EnableAutoActions = false
	svc := newGenerationFixture(repo, lock, cfg)

	result := svc.GenerateActions(context.Background(), "a-1", "u-1", "org-1", weakAnswers())

	assert.True(t, result.Success)
	assert.Equal(t, 0, result.ActionsGenerated)
	assert.Empty(t, repo.inserted)
}

func TestGenerateActions_ExistingActionsShortCircuit(t *testing.T) {
	repo := &fakeActionRepo{existing: 3}
	lock := &fakeLock{acquired: true}
	svc := newGenerationFixture(repo, lock, config.DefaultEngineConfig())

	result := svc.GenerateActions(context.Background(), "a-1", "u-1", "org-1", weakAnswers())

	assert.True(t, result.Success)
	assert.Equal(t, 0, result.ActionsGenerated)
	assert.Empty(t, repo.inserted)
}

func TestGenerateActions_LockContention(t *testing.T) {
	repo := &fakeActionRepo{}
	lock := &fakeLock{acquired: false}
	svc := newGenerationFixture(repo, lock, config.DefaultEngineConfig())

	result := svc.GenerateActions(context.Background(), "a-1", "u-1", "org-1", weakAnswers())

	assert.True(t, result.Success)
	assert.Equal(t, 0, result.ActionsGenerated)
	assert.Empty(t, repo.inserted)
	assert.Equal(t, 0, lock.released)
}

func TestGenerateActions_LockOutageStillGenerates(t *testing.T) {
	repo := &fakeActionRepo{}
	lock := &fakeLock{acquireErr: errors.New("redis down")}
	svc := newGenerationFixture(repo, lock, config.DefaultEngineConfig())

	result := svc.GenerateActions(context.Background(), "a-1", "u-1", "org-1", weakAnswers())

	assert.True(t, result.Success)
	assert.Equal(t, 2, result.ActionsGenerated)
	// A lock we never held must not be released.
	assert.Equal(t, 0, lock.released)
}

func TestGenerateActions_DuplicateInsertIsSuccess(t *testing.T) {
	repo := &fakeActionRepo{insertErr: repository.ErrAlreadyGenerated}
	lock := &fakeLock{acquired: true}
	svc := newGenerationFixture(repo, lock, config.DefaultEngineConfig())

	result := svc.GenerateActions(context.Background(), "a-1", "u-1", "org-1", weakAnswers())

	assert.True(t, result.Success)
	assert.Equal(t, 0, result.ActionsGenerated)
}

func TestGenerateActions_PersistenceFailure(t *testing.T) {
	repo := &fakeActionRepo{insertErr: errors.New("write concern timeout")}
	lock := &fakeLock{acquired: true}
	svc := newGenerationFixture(repo, lock, config.DefaultEngineConfig())

	result := svc.GenerateActions(context.Background(), "a-1", "u-1", "org-1", weakAnswers())

	assert.False(t, result.Success)
	assert.Contains(t, result.Error, "persist actions")
}

func TestGenerateActions_NoWeakAnswers(t *testing.T) {
	repo := &fakeActionRepo{}
	lock := &fakeLock{acquired: true}
	svc := newGenerationFixture(repo, lock, config.DefaultEngineConfig())
	bc := &fakeBroadcaster{}
	svc.SetBroadcaster(bc)

	answers := make(map[string]int)
	for _, section := range catalog.NewDefault().Questionnaire().Sections {
		for _, q := range section.Questions {
			answers[q.ID] = 5
		}
	}

	result := svc.GenerateActions(context.Background(), "a-1", "u-1", "org-1", answers)

	assert.True(t, result.Success)
	assert.Equal(t, 0, result.ActionsGenerated)
	assert.Empty(t, repo.inserted)
	assert.Equal(t, 0, bc.calls)
}

func TestGenerateActions_CountErrorFails(t *testing.T) {
	repo := &fakeActionRepo{countErr: errors.New("connection reset")}
	lock := &fakeLock{acquired: true}
	svc := newGenerationFixture(repo, lock, config.DefaultEngineConfig())

	result := svc.GenerateActions(context.Background(), "a-1", "u-1", "org-1", weakAnswers())

	assert.False(t, result.Success)
	assert.Contains(t, result.Error, "existence check")
}
