package bookingRepo

import (
	"context"
	"fmt"
	"sync"
	"time"

	"medibook/database"
	"medibook/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoBookingRepo implements BookingRepository using MongoDB.
type MongoBookingRepo struct {
	coll *mongo.Collection
}

// NewMongoBookingRepo creates a new instance of BookingRepository using MongoDB.
func NewMongoBookingRepo() BookingRepository {
	coll := database.MongoClient.Database(database.DatabaseName).Collection("bookings")
	repo := &MongoBookingRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

// newContext creates a context with the given timeout.
func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

// ensureIndexes creates indexes for fields frequently used in queries.
func (r *MongoBookingRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "appointment_time", Value: 1}}},
		{Keys: bson.D{{Key: "patient_id", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// Create inserts a new booking document.
func (r *MongoBookingRepo) Create(booking *models.Booking) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	if booking.CreatedAt.IsZero() {
		booking.CreatedAt = time.Now()
	}

	if _, err := r.coll.InsertOne(ctx, booking); err != nil {
		return fmt.Errorf("failed to create booking: %w", err)
	}
	return nil
}

// GetByID retrieves a booking by its unique ID.
func (r *MongoBookingRepo) GetByID(id string) (*models.Booking, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var booking models.Booking
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&booking); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch booking with id %s: %w", id, err)
	}
	return &booking, nil
}

// GetByIDWithPatient retrieves a booking joined with its patient document.
func (r *MongoBookingRepo) GetByIDWithPatient(id string) (*models.BookingWithPatient, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.M{"id": id}}},
		bson.D{{Key: "$lookup", Value: bson.M{
			"from":         "users",
			"localField":   "patient_id",
			"foreignField": "id",
			"as":           "patient",
		}}},
		bson.D{{Key: "$unwind", Value: bson.M{"path": "$patient", "preserveNullAndEmptyArrays": true}}},
	}

	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch booking with id %s: %w", id, err)
	}
	defer cursor.Close(ctx)

	var results []models.BookingWithPatient
	if err := cursor.All(ctx, &results); err != nil {
		return nil, fmt.Errorf("failed to decode booking: %w", err)
	}
	if len(results) == 0 {
		return nil, nil
	}
	return &results[0], nil
}

// ExistsInWindow reports whether any booking falls inside the inclusive
// window [at-window, at].
func (r *MongoBookingRepo) ExistsInWindow(at time.Time, window time.Duration) (bool, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{
		"appointment_time": bson.M{
			"$gte": at.Add(-window),
			"$lte": at,
		},
	}
	count, err := r.coll.CountDocuments(ctx, filter, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("failed to query booking window: %w", err)
	}
	return count > 0, nil
}

// ListByPatient returns a page of a patient's bookings plus the total count.
// The page fetch and the count run concurrently; both are pure reads.
func (r *MongoBookingRepo) ListByPatient(patientID string, page, limit int) ([]models.Booking, int64, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	filter := bson.M{"patient_id": patientID}

	var (
		wg       sync.WaitGroup
		bookings []models.Booking
		total    int64
		findErr  error
		countErr error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		opts := options.Find().
			SetSkip(int64((page - 1) * limit)).
			SetLimit(int64(limit)).
			SetSort(bson.D{{Key: "appointment_time", Value: -1}})
		cursor, err := r.coll.Find(ctx, filter, opts)
		if err != nil {
			findErr = err
			return
		}
		defer cursor.Close(ctx)
		findErr = cursor.All(ctx, &bookings)
	}()
	go func() {
		defer wg.Done()
		total, countErr = r.coll.CountDocuments(ctx, filter)
	}()
	wg.Wait()

	if findErr != nil {
		return nil, 0, fmt.Errorf("failed to list bookings for patient %s: %w", patientID, findErr)
	}
	if countErr != nil {
		return nil, 0, fmt.Errorf("failed to count bookings for patient %s: %w", patientID, countErr)
	}
	return bookings, total, nil
}

// ListAllWithPatients returns a page of all bookings joined with their
// patients, plus the total count, in a single aggregation.
func (r *MongoBookingRepo) ListAllWithPatients(page, limit int) ([]models.BookingWithPatient, int64, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	pipeline := mongo.Pipeline{
		bson.D{{Key: "$lookup", Value: bson.M{
			"from":         "users",
			"localField":   "patient_id",
			"foreignField": "id",
			"as":           "patient",
		}}},
		bson.D{{Key: "$unwind", Value: "$patient"}},
		bson.D{{Key: "$facet", Value: bson.M{
			"data": bson.A{
				bson.M{"$skip": (page - 1) * limit},
				bson.M{"$limit": limit},
			},
			"totalCount": bson.A{
				bson.M{"$count": "count"},
			},
		}}},
	}

	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list bookings: %w", err)
	}
	defer cursor.Close(ctx)

	var result []struct {
		Data       []models.BookingWithPatient `bson:"data"`
		TotalCount []struct {
			Count int64 `bson:"count"`
		} `bson:"totalCount"`
	}
	if err := cursor.All(ctx, &result); err != nil {
		return nil, 0, fmt.Errorf("failed to decode bookings: %w", err)
	}
	if len(result) == 0 {
		return nil, 0, nil
	}
	var total int64
	if len(result[0].TotalCount) > 0 {
		total = result[0].TotalCount[0].Count
	}
	return result[0].Data, total, nil
}

// AppointmentsInRange returns the appointment instants between from and to.
func (r *MongoBookingRepo) AppointmentsInRange(from, to time.Time) ([]time.Time, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	filter := bson.M{"appointment_time": bson.M{"$gte": from, "$lte": to}}
	opts := options.Find().SetProjection(bson.M{"appointment_time": 1})

	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query calendar bookings: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []struct {
		AppointmentTime time.Time `bson:"appointment_time"`
	}
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode calendar bookings: %w", err)
	}

	instants := make([]time.Time, 0, len(docs))
	for _, d := range docs {
		instants = append(instants, d.AppointmentTime)
	}
	return instants, nil
}

// Stats returns the total booking count and summed fees of paid bookings.
func (r *MongoBookingRepo) Stats() (int64, float64, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.M{"payment_status": models.PaymentStatusPaid}}},
		bson.D{{Key: "$group", Value: bson.M{
			"_id":     nil,
			"count":   bson.M{"$sum": 1},
			"revenue": bson.M{"$sum": "$booking_fee"},
		}}},
	}

	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to aggregate booking stats: %w", err)
	}
	defer cursor.Close(ctx)

	var result []struct {
		Count   int64   `bson:"count"`
		Revenue float64 `bson:"revenue"`
	}
	if err := cursor.All(ctx, &result); err != nil {
		return 0, 0, fmt.Errorf("failed to decode booking stats: %w", err)
	}
	if len(result) == 0 {
		return 0, 0, nil
	}
	return result[0].Count, result[0].Revenue, nil
}
