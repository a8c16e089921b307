package repository

import (
	"context"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/iliyamo/after-school-booking/internal/database"
	"github.com/iliyamo/after-school-booking/internal/model"
)

// LessonRepo encapsulates all queries against the lessons collection. It
// depends on the application database which is injected at startup; there
// is no package-level connection state.
type LessonRepo struct {
	col *mongo.Collection
}

// NewLessonRepo constructs a LessonRepo over the given database. This
// allows dependency injection of the database in tests and at startup.
func NewLessonRepo(db *mongo.Database) *LessonRepo {
	return &LessonRepo{col: db.Collection(database.LessonsCollection)}
}

// ListAll returns every lesson in insertion order (the collection's natural
// order, which MongoDB does not guarantee but preserves in practice for
// this append-only catalog).
func (r *LessonRepo) ListAll(ctx context.Context) ([]model.Lesson, error) {
	cur, err := r.col.Find(ctx, bson.D{})
	if err != nil {
		return nil, err
	}
	out := []model.Lesson{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Search returns lessons whose subject or location contains term,
// case-insensitively. The term is matched as a literal substring: it is
// quoted before being handed to the regex engine so user input can never
// change the shape of the query.
func (r *LessonRepo) Search(ctx context.Context, term string) ([]model.Lesson, error) {
	if term == "" {
		return nil, ErrEmptySearchTerm
	}
	re := primitive.Regex{Pattern: regexp.QuoteMeta(term), Options: "i"}
	filter := bson.M{"$or": []bson.M{
		{"subject": bson.M{"$regex": re}},
		{"location": bson.M{"$regex": re}},
	}}
	cur, err := r.col.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	out := []model.Lesson{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// SetSpaces updates one lesson's seat count and stamps lastUpdated,
// returning the number of documents modified. A well-formed id that matches
// no lesson yields (0, nil) rather than an error; callers surface the
// modified count and leave interpretation to the client. There is no
// concurrency token, so simultaneous calls on the same lesson are
// last-write-wins.
func (r *LessonRepo) SetSpaces(ctx context.Context, id string, spaces int) (int64, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return 0, ErrInvalidLessonID
	}
	update := bson.M{"$set": bson.M{
		"spaces":      spaces,
		"lastUpdated": time.Now().UTC(),
	}}
	res, err := r.col.UpdateByID(ctx, oid, update)
	if err != nil {
		return 0, err
	}
	return res.ModifiedCount, nil
}
