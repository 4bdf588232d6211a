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

// RestaurantExpenseFilter narrows a restaurant expense listing.
type RestaurantExpenseFilter struct {
	Category string
	DateFrom *time.Time
	DateTo   *time.Time
}

func buildRestaurantFilter(f RestaurantExpenseFilter) bson.M {
	filter := bson.M{}
	if f.Category != "" {
		filter["categoria"] = f.Category
	}
	if dateRange := buildDateRange(f.DateFrom, f.DateTo); dateRange != nil {
		filter["fecha"] = dateRange
	}
	return filter
}

// ListRestaurantExpenses returns the matching restaurant expenses sorted by
// date descending.
func (s *Store) ListRestaurantExpenses(ctx context.Context, f RestaurantExpenseFilter) ([]models.RestaurantExpense, error) {
	if !s.available {
		return nil, ErrUnavailable
	}

	opts := options.Find().SetSort(sortByDateDesc)
	cur, err := s.restaurantExpenses().Find(ctx, buildRestaurantFilter(f), opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	gastos := []models.RestaurantExpense{}
	if err := cur.All(ctx, &gastos); err != nil {
		return nil, err
	}
	for i := range gastos {
		gastos[i].ApplyVirtuals()
	}
	return gastos, nil
}

// GetRestaurantExpense looks up one restaurant expense by id.
func (s *Store) GetRestaurantExpense(ctx context.Context, id string) (*models.RestaurantExpense, error) {
	if !s.available {
		return nil, ErrUnavailable
	}

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrInvalidID
	}

	var gasto models.RestaurantExpense
	err = s.restaurantExpenses().FindOne(ctx, bson.M{"_id": oid}).Decode(&gasto)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	gasto.ApplyVirtuals()
	return &gasto, nil
}

// CreateRestaurantExpense validates the input and persists a new record.
// Payroll fields survive into the stored document only for the nomina
// category.
func (s *Store) CreateRestaurantExpense(ctx context.Context, in models.RestaurantExpenseInput) (*models.RestaurantExpense, error) {
	if !s.available {
		return nil, ErrUnavailable
	}

	in.Normalize()
	if fields := in.FieldErrors(); fields != nil {
		return nil, &ValidationError{Fields: fields}
	}

	gasto := models.NewRestaurantExpense(in, time.Now())
	res, err := s.restaurantExpenses().InsertOne(ctx, gasto)
	if err != nil {
		return nil, err
	}
	gasto.ID = res.InsertedID.(primitive.ObjectID)
	gasto.ApplyVirtuals()
	return &gasto, nil
}

// UpdateRestaurantExpense merges the provided fields into the stored
// record, re-validates the result and persists it.
func (s *Store) UpdateRestaurantExpense(ctx context.Context, id string, upd models.RestaurantExpenseUpdate) (*models.RestaurantExpense, error) {
	gasto, err := s.GetRestaurantExpense(ctx, id)
	if err != nil {
		return nil, err
	}

	upd.Apply(gasto)
	if fields := gasto.AsInput().FieldErrors(); fields != nil {
		return nil, &ValidationError{Fields: fields}
	}
	gasto.UpdatedAt = time.Now()

	if _, err := s.restaurantExpenses().ReplaceOne(ctx, bson.M{"_id": gasto.ID}, gasto); err != nil {
		return nil, err
	}
	gasto.ApplyVirtuals()
	return gasto, nil
}

// DeleteRestaurantExpense removes a record and returns its prior value.
func (s *Store) DeleteRestaurantExpense(ctx context.Context, id string) (*models.RestaurantExpense, error) {
	if !s.available {
		return nil, ErrUnavailable
	}

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrInvalidID
	}

	var gasto models.RestaurantExpense
	err = s.restaurantExpenses().FindOneAndDelete(ctx, bson.M{"_id": oid}).Decode(&gasto)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	gasto.ApplyVirtuals()
	return &gasto, nil
}

// ListNomina returns the payroll entries (nomina category) sorted by hire
// date descending.
func (s *Store) ListNomina(ctx context.Context) ([]models.RestaurantExpense, error) {
	if !s.available {
		return nil, ErrUnavailable
	}

	opts := options.Find().SetSort(sortByHireDateDesc)
	cur, err := s.restaurantExpenses().Find(ctx, bson.M{"categoria": models.CategoryNomina}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	empleados := []models.RestaurantExpense{}
	if err := cur.All(ctx, &empleados); err != nil {
		return nil, err
	}
	for i := range empleados {
		empleados[i].ApplyVirtuals()
	}
	return empleados, nil
}
