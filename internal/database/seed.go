package database

import (
	"context"
	"log"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/iliyamo/after-school-booking/internal/model"
)

// LessonsCollection is the collection holding the lesson catalog.
const LessonsCollection = "lessons"

// Catalog returns the fixed lesson catalog used to seed an empty database.
// A fresh slice is returned each call so callers can mutate their copy.
func Catalog() []model.Lesson {
	return []model.Lesson{
		{Subject: "Math", Location: "London", Price: 100, Spaces: 5},
		{Subject: "Math", Location: "Oxford", Price: 80, Spaces: 5},
		{Subject: "English", Location: "London", Price: 90, Spaces: 5},
		{Subject: "English", Location: "York", Price: 85, Spaces: 5},
		{Subject: "Science", Location: "Bristol", Price: 95, Spaces: 5},
		{Subject: "Science", Location: "Bath", Price: 75, Spaces: 5},
		{Subject: "Music", Location: "Liverpool", Price: 70, Spaces: 5},
		{Subject: "Music", Location: "Manchester", Price: 65, Spaces: 5},
		{Subject: "Art", Location: "Birmingham", Price: 60, Spaces: 5},
		{Subject: "Art", Location: "Leeds", Price: 55, Spaces: 5},
	}
}

// SeedIfEmpty inserts the catalog when the lessons collection has no
// documents. Existing data is never touched, so restarting the server is
// always safe.
func SeedIfEmpty(ctx context.Context, db *mongo.Database) error {
	col := db.Collection(LessonsCollection)
	count, err := col.CountDocuments(ctx, bson.D{})
	if err != nil {
		return err
	}
	if count > 0 {
		log.Printf("seed: found %d existing lessons, skipping", count)
		return nil
	}
	return insertCatalog(ctx, col)
}

// Reseed wipes the lessons collection and inserts the catalog from scratch.
// Used by cmd/seed; the running server never deletes lessons.
func Reseed(ctx context.Context, db *mongo.Database) error {
	col := db.Collection(LessonsCollection)
	if _, err := col.DeleteMany(ctx, bson.D{}); err != nil {
		return err
	}
	return insertCatalog(ctx, col)
}

func insertCatalog(ctx context.Context, col *mongo.Collection) error {
	lessons := Catalog()
	docs := make([]interface{}, len(lessons))
	for i, l := range lessons {
		docs[i] = l
	}
	res, err := col.InsertMany(ctx, docs)
	if err != nil {
		return err
	}
	log.Printf("seed: inserted %d lessons", len(res.InsertedIDs))
	return nil
}
