package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"dealerpulse/internal/catalog"
	"dealerpulse/internal/model"
	"dealerpulse/internal/repository"
	"dealerpulse/internal/service"
)

// Seeds one demo assessment with a mix of strong and weak answers so the
// dashboard has something to show locally.
func main() {
	mongoURI := os.Getenv("MONGO_URI")
	if mongoURI == "" {
		mongoURI = "mongodb://localhost:27017"
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(mongoURI))
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer client.Disconnect(ctx)

	db := client.Database("dealerpulse")
	assessmentRepo := repository.NewAssessmentRepo(db)

	cat := catalog.NewDefault()
	if err := cat.Validate(); err != nil {
		log.Fatalf("Invalid catalog: %v", err)
	}
	scoringSvc := service.NewScoringService(cat.CategoryWeights())

	answers := map[string]int{
		"nvs-1": 2, "nvs-2": 4, "nvs-3": 3, "nvs-4": 2,
		"uvs-1": 2, "uvs-2": 3, "uvs-3": 2, "uvs-4": 4,
		"svc-1": 4, "svc-2": 3, "svc-3": 2, "svc-4": 5,
		"pts-1": 3, "pts-2": 4, "pts-3": 3, "pts-4": 4,
		"fin-1": 1, "fin-2": 2, "fin-3": 2, "fin-4": 3,
	}
	departmentScores := map[string]float64{
		model.DepartmentNewVehicleSales:  62,
		model.DepartmentUsedVehicleSales: 55,
		model.DepartmentService:          71,
		model.DepartmentPartsInventory:   68,
		model.DepartmentFinancialOps:     41,
	}

	overall, err := scoringSvc.CalculateWeightedScore(departmentScores)
	if err != nil {
		log.Fatalf("Scoring failed: %v", err)
	}

	assessment := &model.Assessment{
		ID:               uuid.NewString(),
		UserID:           "demo-user",
		OrganizationID:   "demo-org",
		Answers:          answers,
		DepartmentScores: departmentScores,
		OverallScore:     overall,
		CategoryScores:   scoringSvc.CalculateCategoryScores(departmentScores),
		SubmittedAt:      time.Now(),
	}

	if err := assessmentRepo.Create(ctx, assessment); err != nil {
		log.Fatalf("Failed to insert assessment: %v", err)
	}

	fmt.Printf("Seeded assessment %s (overall score %d) for org %s\n",
		assessment.ID, overall, assessment.OrganizationID)
	fmt.Println("Trigger action generation with:")
	fmt.Printf("  curl -X POST -H 'X-Org-ID: demo-org' http://localhost:8080/v1/assessments/%s/actions/generate\n", assessment.ID)
}
