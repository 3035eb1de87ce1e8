package service

import (
	"dealerpulse/internal/catalog"
	"dealerpulse/internal/model"
)

// ActionService turns ranked signals into a bounded, deduplicated list of
// concrete improvement actions from the template catalog.
type ActionService struct {
	catalog *catalog.Catalog
}

// NewActionService creates an action service over a catalog.
func NewActionService(cat *catalog.Catalog) *ActionService {
	return &ActionService{catalog: cat}
}

// InstantiateActions consumes signals in the order produced by the signal
// engine. Each signal may fire at most its per-signal cap of templates, a
// template never fires twice in one run even across different signals, and
// the total is bounded by maxActions.
func (s *ActionService) InstantiateActions(signals []model.Signal, maxActions int) []model.InstantiatedAction {
	actions := make([]model.InstantiatedAction, 0, maxActions)
	usedTemplates := make(map[string]bool)

	for _, signal := range signals {
		if len(actions) >= maxActions {
			break
		}

		perSignalCap := s.catalog.MaxActionsForSignal(signal.Code)
		taken := 0

		for _, template := range s.catalog.TemplatesFor(signal.Code) {
			if taken >= perSignalCap || len(actions) >= maxActions {
				break
			}
			if usedTemplates[template.TemplateID] {
				continue
			}
			usedTemplates[template.TemplateID] = true
			taken++

			actions = append(actions, model.InstantiatedAction{
				Template:              template,
				Priority:              model.PriorityForSeverity(signal.Severity),
				ModuleKey:             signal.ModuleKey,
				SignalCode:            signal.Code,
				TriggeringQuestionIDs: signal.TriggeringQuestionIDs,
				Rationale:             signal.Rationale,
			})
		}
	}

	return actions
}
