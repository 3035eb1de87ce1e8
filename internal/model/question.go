package model

// Department keys for the five dealership departments covered by the
// assessment. Department scores arrive keyed by these values.
const (
	DepartmentNewVehicleSales  = "new-vehicle-sales"
	DepartmentUsedVehicleSales = "used-vehicle-sales"
	DepartmentService          = "service-performance"
	DepartmentPartsInventory   = "parts-inventory"
	DepartmentFinancialOps     = "financial-operations"
)

// Question is a single questionnaire item. Questions are defined in the
// static questionnaire and never change during an assessment.
type Question struct {
	ID       string  `json:"id" bson:"id"`
	Prompt   string  `json:"prompt" bson:"prompt"`
	Weight   float64 `json:"weight" bson:"weight"`     // > 0, typically 0.8–1.5
	Category string  `json:"category" bson:"category"` // department key
}

// Section groups the questions belonging to one department.
type Section struct {
	Key       string     `json:"key" bson:"key"` // department key
	Title     string     `json:"title" bson:"title"`
	Questions []Question `json:"questions" bson:"questions"`
}

// Questionnaire is the ordered, immutable questionnaire definition.
type Questionnaire struct {
	Sections []Section `json:"sections" bson:"sections"`
}

// QuestionWeights flattens the questionnaire into a question id → weight map,
// the form the signal engine consumes.
func (q *Questionnaire) QuestionWeights() map[string]float64 {
	weights := make(map[string]float64)
	for _, section := range q.Sections {
		for _, question := range section.Questions {
			weights[question.ID] = question.Weight
		}
	}
	return weights
}
