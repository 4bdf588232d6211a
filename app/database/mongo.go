package database

import (
	"context"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/lyffseba/liliana-villamarin-eventos-contabilidad/app/config"
)

const connectTimeout = 5 * time.Second

// Store owns the MongoDB client and exposes the persistence operations of
// both expense domains. A Store whose connection attempt failed stays
// usable: Available reports false and the handlers serve their degraded
// fallback paths instead.
type Store struct {
	client    *mongo.Client
	db        *mongo.Database
	available bool
}

// Connect establishes the MongoDB connection described by cfg. Connection
// failure is not fatal: the returned Store simply reports unavailable.
func Connect(ctx context.Context, cfg config.Config) *Store {
	cctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	client, err := mongo.Connect(cctx, options.Client().
		ApplyURI(cfg.MongoURI).
		SetServerSelectionTimeout(connectTimeout))
	if err != nil {
		log.Printf("MongoDB connection failed: %v", err)
		log.Println("Continuing in offline mode - read/create endpoints serve fallback responses")
		return &Store{}
	}

	if err := client.Ping(cctx, nil); err != nil {
		log.Printf("MongoDB ping failed: %v", err)
		log.Println("Continuing in offline mode - read/create endpoints serve fallback responses")
		return &Store{client: client}
	}

	s := &Store{
		client:    client,
		db:        client.Database(cfg.MongoDB),
		available: true,
	}
	s.ensureIndexes(ctx)
	log.Printf("MongoDB connected (database %s)", cfg.MongoDB)
	return s
}

// Available reports whether the store reached the database at startup.
// This is the single state check the fallback behavior keys on.
func (s *Store) Available() bool {
	return s.available
}

// Close releases the underlying client connection.
func (s *Store) Close(ctx context.Context) error {
	if s.client == nil {
		return nil
	}
	return s.client.Disconnect(ctx)
}

func (s *Store) eventExpenses() *mongo.Collection {
	return s.db.Collection("eventexpenses")
}

func (s *Store) restaurantExpenses() *mongo.Collection {
	return s.db.Collection("restaurantexpenses")
}

func (s *Store) ensureIndexes(ctx context.Context) {
	cctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	eventIndexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "categoria", Value: 1}}},
		{Keys: bson.D{{Key: "fecha", Value: -1}}},
		{Keys: bson.D{{Key: "evento_id", Value: 1}}},
	}
	if _, err := s.eventExpenses().Indexes().CreateMany(cctx, eventIndexes); err != nil {
		log.Printf("Error creating event expense indexes: %v", err)
	}

	restaurantIndexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "categoria", Value: 1}}},
		{Keys: bson.D{{Key: "fecha", Value: -1}}},
	}
	if _, err := s.restaurantExpenses().Indexes().CreateMany(cctx, restaurantIndexes); err != nil {
		log.Printf("Error creating restaurant expense indexes: %v", err)
	}
}
