package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"

	"dealerpulse/internal/model"
)

func TestOwnRowsFilterTargetsOnlyBatchIDs(t *testing.T) {
	now := time.Now()
	batch := []model.Action{
		{ID: "id-1", AssessmentID: "a-1", UserID: "u-1", TemplateID: "tpl-a", CreatedAt: now},
		{ID: "id-2", AssessmentID: "a-1", UserID: "u-1", TemplateID: "tpl-b", CreatedAt: now},
	}

	filter := ownRowsFilter(batch)

	// The rollback after a duplicate-key collision must be scoped to the
	// failed batch's own ids. A concurrent winning run persists rows for the
	// same (assessment_id, user_id, template_id) within the same instant, so
	// filtering on any of those fields would delete the winner's rows too.
	require.Len(t, filter, 1)
	in, ok := filter["_id"].(bson.M)
	require.True(t, ok, "rollback must filter on _id only")
	assert.Equal(t, []string{"id-1", "id-2"}, in["$in"])

	assert.NotContains(t, filter, "assessment_id")
	assert.NotContains(t, filter, "user_id")
	assert.NotContains(t, filter, "created_at")
}
