package database

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/lyffseba/liliana-villamarin-eventos-contabilidad/app/models"
)

// EventExpenseFilter narrows an event expense listing. Zero values mean
// "no constraint"; the date bounds are inclusive.
type EventExpenseFilter struct {
	Category string
	EventID  string
	DateFrom *time.Time
	DateTo   *time.Time
}

// Listings come back newest first; payroll listings order by hire date.
var (
	sortByDateDesc     = bson.D{{Key: "fecha", Value: -1}}
	sortByHireDateDesc = bson.D{{Key: "fecha_ingreso", Value: -1}}
)

func buildEventFilter(f EventExpenseFilter) bson.M {
	filter := bson.M{}
	if f.Category != "" {
		filter["categoria"] = f.Category
	}
	if f.EventID != "" {
		filter["evento_id"] = f.EventID
	}
	if dateRange := buildDateRange(f.DateFrom, f.DateTo); dateRange != nil {
		filter["fecha"] = dateRange
	}
	return filter
}

func buildDateRange(from, to *time.Time) bson.M {
	if from == nil && to == nil {
		return nil
	}
	dateRange := bson.M{}
	if from != nil {
		dateRange["$gte"] = *from
	}
	if to != nil {
		dateRange["$lte"] = *to
	}
	return dateRange
}

// ListEventExpenses returns the matching event expenses sorted by date
// descending. An empty result is a valid, non-error outcome.
func (s *Store) ListEventExpenses(ctx context.Context, f EventExpenseFilter) ([]models.EventExpense, error) {
	if !s.available {
		return nil, ErrUnavailable
	}

	opts := options.Find().SetSort(sortByDateDesc)
	cur, err := s.eventExpenses().Find(ctx, buildEventFilter(f), opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	gastos := []models.EventExpense{}
	if err := cur.All(ctx, &gastos); err != nil {
		return nil, err
	}
	for i := range gastos {
		gastos[i].ApplyVirtuals()
	}
	return gastos, nil
}

// GetEventExpense looks up one event expense by id.
func (s *Store) GetEventExpense(ctx context.Context, id string) (*models.EventExpense, error) {
	if !s.available {
		return nil, ErrUnavailable
	}

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrInvalidID
	}

	var gasto models.EventExpense
	err = s.eventExpenses().FindOne(ctx, bson.M{"_id": oid}).Decode(&gasto)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	gasto.ApplyVirtuals()
	return &gasto, nil
}

// CreateEventExpense validates the input and persists a new record with a
// server-assigned id and timestamps.
func (s *Store) CreateEventExpense(ctx context.Context, in models.EventExpenseInput) (*models.EventExpense, error) {
	if !s.available {
		return nil, ErrUnavailable
	}

	in.Normalize()
	if fields := in.FieldErrors(); fields != nil {
		return nil, &ValidationError{Fields: fields}
	}

	gasto := models.NewEventExpense(in, time.Now())
	res, err := s.eventExpenses().InsertOne(ctx, gasto)
	if err != nil {
		return nil, err
	}
	gasto.ID = res.InsertedID.(primitive.ObjectID)
	gasto.ApplyVirtuals()
	return &gasto, nil
}

// UpdateEventExpense merges the provided fields into the stored record,
// re-validates the result and persists it. createdAt is preserved and
// updatedAt recomputed regardless of caller input.
func (s *Store) UpdateEventExpense(ctx context.Context, id string, upd models.EventExpenseUpdate) (*models.EventExpense, error) {
	gasto, err := s.GetEventExpense(ctx, id)
	if err != nil {
		return nil, err
	}

	upd.Apply(gasto)
	if fields := gasto.AsInput().FieldErrors(); fields != nil {
		return nil, &ValidationError{Fields: fields}
	}
	gasto.UpdatedAt = time.Now()

	if _, err := s.eventExpenses().ReplaceOne(ctx, bson.M{"_id": gasto.ID}, gasto); err != nil {
		return nil, err
	}
	gasto.ApplyVirtuals()
	return gasto, nil
}

// DeleteEventExpense removes a record and returns its prior value.
func (s *Store) DeleteEventExpense(ctx context.Context, id string) (*models.EventExpense, error) {
	if !s.available {
		return nil, ErrUnavailable
	}

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrInvalidID
	}

	var gasto models.EventExpense
	err = s.eventExpenses().FindOneAndDelete(ctx, bson.M{"_id": oid}).Decode(&gasto)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	gasto.ApplyVirtuals()
	return &gasto, nil
}
