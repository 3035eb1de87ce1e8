package service

import (
	"fmt"
	"sort"

	"dealerpulse/internal/catalog"
	"dealerpulse/internal/config"
	"dealerpulse/internal/model"
)

// escalationThreshold is the trigger count at which corroborating evidence
// bumps a signal's severity by one level.
const escalationThreshold = 3

// SignalService inspects weak answers and groups them into typed signals.
// It is a pure function of its inputs; malformed or unmapped questions are
// silently excluded rather than treated as errors.
type SignalService struct {
	catalog *catalog.Catalog
}

// NewSignalService creates a signal service over a catalog.
func NewSignalService(cat *catalog.Catalog) *SignalService {
	return &SignalService{catalog: cat}
}

type signalGroup struct {
	code        model.SignalCode
	moduleKey   string
	severity    model.Severity
	questionIDs []string
	scores      map[string]int
}

// GenerateSignals filters answers to weak ones, groups them by
// (signal code, module), computes a severity per group with escalation for
// corroborated groups, and returns the signals ordered by severity (HIGH
// first) then descending trigger count. The order decides which signals get
// first claim on the action budget downstream.
func (s *SignalService) GenerateSignals(answers map[string]int, questionWeights map[string]float64, cfg config.EngineConfig) []model.Signal {
	if !cfg.EnableAutoActions {
		return nil
	}

	// Walk answers in sorted order so grouping is deterministic.
	questionIDs := make([]string, 0, len(answers))
	for id := range answers {
		questionIDs = append(questionIDs, id)
	}
	sort.Strings(questionIDs)

	groups := make(map[string]*signalGroup)
	var order []string

	for _, questionID := range questionIDs {
		score := answers[questionID]
		if score > cfg.WeakScoreThreshold {
			continue
		}
		mapping, ok := s.catalog.MappingFor(questionID)
		if !ok || mapping.Code == model.SignalNone {
			continue
		}
		weight, ok := questionWeights[questionID]
		if !ok {
			continue
		}

		severity := baseSeverity(score, weight, cfg)

		key := string(mapping.Code) + "|" + mapping.ModuleKey
		group := groups[key]
		if group == nil {
			group = &signalGroup{
				code:      mapping.Code,
				moduleKey: mapping.ModuleKey,
				severity:  severity,
				scores:    make(map[string]int),
			}
			groups[key] = group
			order = append(order, key)
		}
		group.severity = group.severity.Max(severity)
		group.questionIDs = append(group.questionIDs, questionID)
		group.scores[questionID] = score
	}

	signals := make([]model.Signal, 0, len(groups))
	for _, key := range order {
		group := groups[key]
		severity := group.severity
		if len(group.questionIDs) >= escalationThreshold {
			severity = severity.Escalate()
		}

		signal := model.Signal{
			Code:                  group.code,
			Severity:              severity,
			ModuleKey:             group.moduleKey,
			TriggeringQuestionIDs: group.questionIDs,
			Rationale: fmt.Sprintf("%d low-scoring answer(s) in %s",
				len(group.questionIDs), s.catalog.ModuleName(group.moduleKey)),
			SourceQuestionScores: group.scores,
		}
		signal.SortQuestionIDs()
		signals = append(signals, signal)
	}

	sort.SliceStable(signals, func(i, j int) bool {
		if signals[i].Severity.Rank() != signals[j].Severity.Rank() {
			return signals[i].Severity.Rank() > signals[j].Severity.Rank()
		}
		if len(signals[i].TriggeringQuestionIDs) != len(signals[j].TriggeringQuestionIDs) {
			return len(signals[i].TriggeringQuestionIDs) > len(signals[j].TriggeringQuestionIDs)
		}
		return signals[i].Code < signals[j].Code
	})

	return signals
}

// baseSeverity derives the per-question severity from score and weight:
// critical score on a heavily weighted question is HIGH, critical score on a
// normally weighted one is MEDIUM, and everything else weak is LOW.
func baseSeverity(score int, weight float64, cfg config.EngineConfig) model.Severity {
	if score <= cfg.CriticalScoreThreshold && weight >= 1.3 {
		return model.SeverityHigh
	}
	if score <= cfg.CriticalScoreThreshold && weight >= 1.0 {
		return model.SeverityMedium
	}
	return model.SeverityLow
}
