package service

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dealerpulse/internal/catalog"
	"dealerpulse/internal/model"
)

// actionFixtureCatalog gives LEAD_LEAKAGE three templates and
// PRICING_DISCIPLINE one, sharing no template ids, with an explicit cap of 1
// on PRICING_DISCIPLINE.
func actionFixtureCatalog(maxPerSignal map[model.SignalCode]int) *catalog.Catalog {
	templates := []model.ActionTemplate{
		{TemplateID: "tpl-1", Code: model.SignalLeadLeakage, Title: "One", DefaultTimeframeDays: 30},
		{TemplateID: "tpl-2", Code: model.SignalLeadLeakage, Title: "Two", DefaultTimeframeDays: 30},
		{TemplateID: "tpl-3", Code: model.SignalLeadLeakage, Title: "Three", DefaultTimeframeDays: 30},
		{TemplateID: "tpl-4", Code: model.SignalPricingDiscipline, Title: "Four", DefaultTimeframeDays: 45},
	}
	return catalog.New(
		&model.Questionnaire{},
		map[string]catalog.CategoryWeight{},
		nil,
		templates,
		maxPerSignal,
		map[string]string{},
	)
}

func TestInstantiateActions_PerSignalCap(t *testing.T) {
	svc := NewActionService(actionFixtureCatalog(map[model.SignalCode]int{
		model.SignalLeadLeakage: 2,
	}))

	actions := svc.InstantiateActions([]model.Signal{
		{Code: model.SignalLeadLeakage, Severity: model.SeverityHigh},
	}, 10)

	// Three templates available, cap allows two, in catalog order.
	require.Len(t, actions, 2)
	assert.Equal(t, "tpl-1", actions[0].Template.TemplateID)
	assert.Equal(t, "tpl-2", actions[1].Template.TemplateID)
}

func TestInstantiateActions_GlobalBudget(t *testing.T) {
	svc := NewActionService(actionFixtureCatalog(map[model.SignalCode]int{
		model.SignalLeadLeakage: 3,
	}))

	actions := svc.InstantiateActions([]model.Signal{
		{Code: model.SignalLeadLeakage, Severity: model.SeverityHigh},
		{Code: model.SignalPricingDiscipline, Severity: model.SeverityLow},
	}, 2)

	// The first signal exhausts the budget before the second gets a turn.
	require.Len(t, actions, 2)
	assert.Equal(t, "tpl-1", actions[0].Template.TemplateID)
	assert.Equal(t, "tpl-2", actions[1].Template.TemplateID)
}

func TestInstantiateActions_TemplateDedupAcrossSignals(t *testing.T) {
	svc := NewActionService(actionFixtureCatalog(nil))

	// Same signal code raised in two modules: the second occurrence must not
	// re-fire templates already used, so it falls through to the remaining one.
	actions := svc.InstantiateActions([]model.Signal{
		{Code: model.SignalLeadLeakage, Severity: model.SeverityHigh, ModuleKey: "m1"},
		{Code: model.SignalLeadLeakage, Severity: model.SeverityMedium, ModuleKey: "m2"},
	}, 10)

	require.Len(t, actions, 3)
	ids := make(map[string]bool)
	for _, a := range actions {
		require.False(t, ids[a.Template.TemplateID], "template %s fired twice", a.Template.TemplateID)
		ids[a.Template.TemplateID] = true
	}
	assert.Equal(t, "m1", actions[0].ModuleKey)
	assert.Equal(t, "m2", actions[2].ModuleKey)
}

func TestInstantiateActions_PriorityMapping(t *testing.T) {
	svc := NewActionService(actionFixtureCatalog(map[model.SignalCode]int{
		model.SignalLeadLeakage:       1,
		model.SignalPricingDiscipline: 1,
	}))

	cases := []struct {
		severity model.Severity
		priority model.Priority
	}{
		{model.SeverityHigh, model.PriorityHigh},
		{model.SeverityMedium, model.PriorityMedium},
		{model.SeverityLow, model.PriorityLow},
	}

	for i, tc := range cases {
		t.Run(string(tc.severity), func(t *testing.T) {
			actions := svc.InstantiateActions([]model.Signal{
				{Code: model.SignalLeadLeakage, Severity: tc.severity, ModuleKey: fmt.Sprintf("m%d", i)},
			}, 10)
			require.Len(t, actions, 1)
			assert.Equal(t, tc.priority, actions[0].Priority)
		})
	}
}

func TestInstantiateActions_CarriesSignalContext(t *testing.T) {
	svc := NewActionService(actionFixtureCatalog(nil))

	sig := model.Signal{
		Code:                  model.SignalPricingDiscipline,
		Severity:              model.SeverityMedium,
		ModuleKey:             "used-vehicle-sales",
		TriggeringQuestionIDs: []string{"uvs-3"},
		Rationale:             "1 low-scoring answer(s) in Used Vehicle Sales",
	}

	actions := svc.InstantiateActions([]model.Signal{sig}, 10)

	require.Len(t, actions, 1)
	a := actions[0]
	assert.Equal(t, model.SignalPricingDiscipline, a.SignalCode)
	assert.Equal(t, sig.TriggeringQuestionIDs, a.TriggeringQuestionIDs)
	assert.Equal(t, sig.Rationale, a.Rationale)
	assert.Equal(t, sig.ModuleKey, a.ModuleKey)
}

func TestInstantiateActions_NoSignals(t *testing.T) {
	svc := NewActionService(actionFixtureCatalog(nil))

	assert.Empty(t, svc.InstantiateActions(nil, 10))
	assert.Empty(t, svc.InstantiateActions([]model.Signal{}, 10))
}
