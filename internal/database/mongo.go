package database

import (
	"context"
	"fmt"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Mongo bundles the connected client with the application database so the
// rest of the program never touches connection strings or database names.
// A nil *Mongo means the service is running in degraded mode.
type Mongo struct {
	Client *mongo.Client
	DB     *mongo.Database
}

// Open connects to MongoDB and verifies the connection with a ping. It
// retries up to attempts times with a fixed backoff between tries; the retry
// policy is plain configuration, not state carried on an error value. The
// last connection error is returned when every attempt fails.
func Open(uri, dbName string, attempts int, backoff time.Duration) (*Mongo, error) {
	if attempts < 1 {
		attempts = 1
	}

	var lastErr error
	for i := 1; i <= attempts; i++ {
		m, err := connect(uri, dbName)
		if err == nil {
			return m, nil
		}
		lastErr = err
		log.Printf("mongo: connect attempt %d/%d failed: %v", i, attempts, err)
		if i < attempts {
			time.Sleep(backoff)
		}
	}
	return nil, fmt.Errorf("mongo: all %d connect attempts failed: %w", attempts, lastErr)
}

func connect(uri, dbName string) (*Mongo, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	opts := options.Client().
		ApplyURI(uri).
		SetServerSelectionTimeout(10 * time.Second)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, err
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}
	return &Mongo{Client: client, DB: client.Database(dbName)}, nil
}

// Ping verifies the connection is still live. Used by the health endpoint.
func (m *Mongo) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return m.Client.Ping(ctx, readpref.Primary())
}

// Close disconnects the client, waiting briefly for in-flight operations.
func (m *Mongo) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return m.Client.Disconnect(ctx)
}
