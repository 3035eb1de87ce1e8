package service

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/xuri/excelize/v2"

	"dealerpulse/internal/cache"
	"dealerpulse/internal/model"
	"dealerpulse/internal/repository"
)

// ReportService assembles scorecards for dashboards and exports them as
// Excel workbooks.
type ReportService struct {
	assessmentRepo repository.AssessmentRepo
	actionRepo     repository.ActionRepo
	scorecardCache cache.ScorecardCache
}

// NewReportService creates a report service.
func NewReportService(
	assessmentRepo repository.AssessmentRepo,
	actionRepo repository.ActionRepo,
	scorecardCache cache.ScorecardCache,
) *ReportService {
	return &ReportService{
		assessmentRepo: assessmentRepo,
		actionRepo:     actionRepo,
		scorecardCache: scorecardCache,
	}
}

// GetScorecard returns the scorecard for one assessment, cache-first.
// Returns nil when the assessment does not exist.
func (s *ReportService) GetScorecard(ctx context.Context, assessmentID string) (*model.Scorecard, error) {
	if cached, err := s.scorecardCache.Get(ctx, assessmentID); err == nil && cached != nil {
		return cached, nil
	}

	assessment, err := s.assessmentRepo.GetByID(ctx, assessmentID)
	if err != nil {
		return nil, err
	}
	if assessment == nil {
		return nil, nil
	}

	actions, err := s.actionRepo.GetByAssessment(ctx, assessmentID)
	if err != nil {
		return nil, err
	}
	open := 0
	for _, a := range actions {
		if a.Status == "Open" {
			open++
		}
	}

	scorecard := &model.Scorecard{
		AssessmentID:   assessment.ID,
		OrganizationID: assessment.OrganizationID,
		OverallScore:   assessment.OverallScore,
		CategoryScores: assessment.CategoryScores,
		OpenActions:    open,
		SubmittedAt:    assessment.SubmittedAt,
	}

	// Best effort; serving the scorecard matters more than caching it.
	s.scorecardCache.Set(ctx, assessmentID, scorecard)

	return scorecard, nil
}

// ExportScorecard renders the scorecard and its actions into an XLSX
// workbook with a Scores sheet and an Actions sheet. The caller's
// organization must own the assessment.
func (s *ReportService) ExportScorecard(ctx context.Context, assessmentID, orgID string) (*excelize.File, error) {
	assessment, err := s.assessmentRepo.GetByID(ctx, assessmentID)
	if err != nil {
		return nil, err
	}
	if assessment == nil || assessment.OrganizationID != orgID {
		return nil, fmt.Errorf("assessment not found")
	}
	actions, err := s.actionRepo.GetByAssessment(ctx, assessmentID)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()

	scores := "Scores"
	f.SetSheetName("Sheet1", scores)
	f.SetCellValue(scores, "A1", "Assessment")
	f.SetCellValue(scores, "B1", assessment.ID)
	f.SetCellValue(scores, "A2", "Overall Score")
	f.SetCellValue(scores, "B2", assessment.OverallScore)

	f.SetCellValue(scores, "A4", "Category")
	f.SetCellValue(scores, "B4", "Score")
	f.SetCellValue(scores, "C4", "Weight")
	f.SetCellValue(scores, "D4", "Weighted Contribution")

	categories := make([]string, 0, len(assessment.CategoryScores))
	for name := range assessment.CategoryScores {
		categories = append(categories, name)
	}
	sort.Strings(categories)

	row := 5
	for _, name := range categories {
		cs := assessment.CategoryScores[name]
		f.SetCellValue(scores, fmt.Sprintf("A%d", row), name)
		f.SetCellValue(scores, fmt.Sprintf("B%d", row), cs.Score)
		f.SetCellValue(scores, fmt.Sprintf("C%d", row), cs.Weight)
		f.SetCellValue(scores, fmt.Sprintf("D%d", row), cs.WeightedContribution)
		row++
	}

	sheet := "Actions"
	f.NewSheet(sheet)
	headers := []string{"Title", "Department", "Priority", "Status", "Responsible", "Target Date", "Description"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}
	for i, a := range actions {
		values := []interface{}{
			a.ActionTitle,
			a.Department,
			string(a.Priority),
			a.Status,
			a.ResponsiblePerson,
			a.TargetCompletionDate.Format("2006-01-02"),
			strings.ReplaceAll(a.ActionDescription, "\n", " "),
		}
		for j, v := range values {
			cell, _ := excelize.CoordinatesToCellName(j+1, i+2)
			f.SetCellValue(sheet, cell, v)
		}
	}

	return f, nil
}
