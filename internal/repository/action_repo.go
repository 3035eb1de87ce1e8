package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"dealerpulse/internal/model"
)

// ErrAlreadyGenerated is returned when a batch insert collides with actions
// already persisted for the same (assessment, user). The unique index makes
// this the authoritative idempotency signal: callers treat it as "nothing to
// do", not as a failure.
var ErrAlreadyGenerated = errors.New("actions already generated for assessment")

// ActionRepo persists generated improvement actions.
type ActionRepo interface {
	EnsureIndexes(ctx context.Context) error
	CountByAssessment(ctx context.Context, assessmentID, userID string) (int64, error)
	InsertBatch(ctx context.Context, actions []model.Action) error
	GetByAssessment(ctx context.Context, assessmentID string) ([]*model.Action, error)
}

type actionRepo struct {
	collection *mongo.Collection
}

// NewActionRepo creates an action repository over the actions collection.
func NewActionRepo(db *mongo.Database) ActionRepo {
	return &actionRepo{collection: db.Collection("actions")}
}

// EnsureIndexes creates the unique (assessment_id, user_id, template_id)
// index. Generation is deterministic, so a concurrent duplicate run proposes
// the same template ids and aborts on its first insert.
func (r *actionRepo) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "assessment_id", Value: 1},
			{Key: "user_id", Value: 1},
			{Key: "template_id", Value: 1},
		},
		Options: options.Index().SetUnique(true),
	})
	return err
}

func (r *actionRepo) CountByAssessment(ctx context.Context, assessmentID, userID string) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{
		"assessment_id": assessmentID,
		"user_id":       userID,
	})
}

// InsertBatch inserts all actions in one call. A duplicate-key error is
// mapped to ErrAlreadyGenerated; any rows inserted before the collision are
// removed so the outcome is all-or-nothing.
func (r *actionRepo) InsertBatch(ctx context.Context, actions []model.Action) error {
	if len(actions) == 0 {
		return nil
	}

	docs := make([]interface{}, len(actions))
	for i := range actions {
		if actions[i].CreatedAt.IsZero() {
			actions[i].CreatedAt = time.Now()
		}
		docs[i] = actions[i]
	}

	_, err := r.collection.InsertMany(ctx, docs)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			// A concurrent run won the insert. Roll back only this batch's
			// own rows; the winner's rows share the index keys but carry
			// different ids and must stay untouched.
			r.collection.DeleteMany(ctx, ownRowsFilter(actions))
			return ErrAlreadyGenerated
		}
		return err
	}
	return nil
}

// ownRowsFilter matches exactly the documents of one batch by their generated
// ids. Deleting by any shared field (assessment, user, timestamps) could take
// a concurrent winner's rows down with the loser's.
func ownRowsFilter(actions []model.Action) bson.M {
	ids := make([]string, len(actions))
	for i, a := range actions {
		ids[i] = a.ID
	}
	return bson.M{"_id": bson.M{"$in": ids}}
}

func (r *actionRepo) GetByAssessment(ctx context.Context, assessmentID string) ([]*model.Action, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"assessment_id": assessmentID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var actions []*model.Action
	if err = cursor.All(ctx, &actions); err != nil {
		return nil, err
	}
	return actions, nil
}
