package catalog

import (
	"fmt"
	"math"

	"dealerpulse/internal/model"
)

// CategoryWeight fixes how much one department contributes to the overall
// score. Weights across all departments sum to 1.0.
type CategoryWeight struct {
	Category string
	Weight   float64
}

// Catalog bundles the static configuration the evaluation pipeline consumes:
// the questionnaire definition, the category weight table, the question →
// signal mapping table and the action template catalog. A Catalog is built
// once, validated, and treated as immutable; tests substitute fixtures.
type Catalog struct {
	questionnaire *model.Questionnaire
	weights       map[string]CategoryWeight
	mappings      map[string]model.SignalMapping
	templates     map[model.SignalCode][]model.ActionTemplate
	maxPerSignal  map[model.SignalCode]int
	moduleNames   map[string]string
}

// New assembles a catalog from its component tables.
func New(
	questionnaire *model.Questionnaire,
	weights map[string]CategoryWeight,
	mappings []model.SignalMapping,
	templates []model.ActionTemplate,
	maxPerSignal map[model.SignalCode]int,
	moduleNames map[string]string,
) *Catalog {
	byQuestion := make(map[string]model.SignalMapping, len(mappings))
	for _, m := range mappings {
		byQuestion[m.QuestionID] = m
	}
	byCode := make(map[model.SignalCode][]model.ActionTemplate)
	for _, t := range templates {
		byCode[t.Code] = append(byCode[t.Code], t)
	}
	return &Catalog{
		questionnaire: questionnaire,
		weights:       weights,
		mappings:      byQuestion,
		templates:     byCode,
		maxPerSignal:  maxPerSignal,
		moduleNames:   moduleNames,
	}
}

// NewDefault builds the production catalog.
func NewDefault() *Catalog {
	return New(
		defaultQuestionnaire(),
		defaultCategoryWeights(),
		defaultSignalMappings(),
		defaultActionTemplates(),
		defaultMaxPerSignal(),
		defaultModuleNames(),
	)
}

// Questionnaire returns the static questionnaire definition.
func (c *Catalog) Questionnaire() *model.Questionnaire {
	return c.questionnaire
}

// CategoryWeights returns the department → category weight table.
func (c *Catalog) CategoryWeights() map[string]CategoryWeight {
	return c.weights
}

// MappingFor looks up the signal mapping for a question. The second return
// is false when the question is unmapped.
func (c *Catalog) MappingFor(questionID string) (model.SignalMapping, bool) {
	m, ok := c.mappings[questionID]
	return m, ok
}

// TemplatesFor returns the candidate action templates for a signal code, in
// catalog order.
func (c *Catalog) TemplatesFor(code model.SignalCode) []model.ActionTemplate {
	return c.templates[code]
}

// MaxActionsForSignal returns the per-signal cap on how many templates may
// fire for one signal. Signals without an explicit cap get 2.
func (c *Catalog) MaxActionsForSignal(code model.SignalCode) int {
	if n, ok := c.maxPerSignal[code]; ok {
		return n
	}
	return 2
}

// ModuleName translates a module key into its human-readable name, used in
// signal rationales. Unknown keys are returned unchanged.
func (c *Catalog) ModuleName(key string) string {
	if name, ok := c.moduleNames[key]; ok {
		return name
	}
	return key
}

// Validate checks catalog integrity: weights sum to 1.0, question weights are
// positive, every mapped signal code has at least one template, and template
// ids are unique.
func (c *Catalog) Validate() error {
	var sum float64
	for _, cw := range c.weights {
		sum += cw.Weight
	}
	if math.Abs(sum-1.0) > 1e-9 {
		return fmt.Errorf("category weights sum to %.4f, want 1.0", sum)
	}

	for _, section := range c.questionnaire.Sections {
		for _, q := range section.Questions {
			if q.Weight <= 0 {
				return fmt.Errorf("question %s has non-positive weight %.2f", q.ID, q.Weight)
			}
		}
	}

	seen := make(map[string]bool)
	for code, templates := range c.templates {
		for _, t := range templates {
			if seen[t.TemplateID] {
				return fmt.Errorf("duplicate template id %s", t.TemplateID)
			}
			seen[t.TemplateID] = true
			if t.Code != code {
				return fmt.Errorf("template %s filed under %s but declares %s", t.TemplateID, code, t.Code)
			}
		}
	}

	for _, m := range c.mappings {
		if m.Code == model.SignalNone {
			continue
		}
		if len(c.templates[m.Code]) == 0 {
			return fmt.Errorf("signal %s mapped from %s has no action templates", m.Code, m.QuestionID)
		}
	}

	return nil
}
