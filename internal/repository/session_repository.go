package repository

import (
	"context"

	"assessment-service/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// SessionRepository persists sessions with an optimistic-concurrency version
// check: a save only applies when the stored version still matches the one
// the caller read, so racing read-modify-write cycles are rejected instead of
// silently merged.
type SessionRepository struct {
	Col *mongo.Collection
}

func NewSessionRepository(db *mongo.Database) *SessionRepository {
	return &SessionRepository{Col: db.Collection("sessions")}
}

func (r *SessionRepository) Create(ctx context.Context, session *models.Session) error {
	session.Version = 1
	_, err := r.Col.InsertOne(ctx, session)
	return err
}

func (r *SessionRepository) FindByID(ctx context.Context, id string) (*models.Session, error) {
	var session models.Session
	err := r.Col.FindOne(ctx, bson.M{"_id": id}).Decode(&session)
	if err == mongo.ErrNoDocuments {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &session, nil
}

// Save replaces the document if its version still equals expectedVersion and
// bumps the version. A lost race surfaces as ErrVersionConflict.
func (r *SessionRepository) Save(ctx context.Context, session *models.Session, expectedVersion int64) error {
	session.Version = expectedVersion + 1
	res, err := r.Col.ReplaceOne(ctx, bson.M{"_id": session.ID, "version": expectedVersion}, session)
	if err != nil {
		session.Version = expectedVersion
		return err
	}
	if res.MatchedCount == 0 {
		session.Version = expectedVersion
		n, err := r.Col.CountDocuments(ctx, bson.M{"_id": session.ID})
		if err == nil && n == 0 {
			return models.ErrNotFound
		}
		return models.ErrVersionConflict
	}
	return nil
}
