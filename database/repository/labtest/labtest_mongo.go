package labtestRepo

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

// MongoLabTestRepo implements LabTestRepository using MongoDB.
type MongoLabTestRepo struct {
	coll *mongo.Collection
}

// NewMongoLabTestRepo creates a new instance of LabTestRepository using MongoDB.
func NewMongoLabTestRepo() LabTestRepository {
	coll := database.MongoClient.Database(database.DatabaseName).Collection("labtests")
	repo := &MongoLabTestRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *MongoLabTestRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "patient_id", Value: 1}, {Key: "test_type", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// Create inserts a new lab test document.
func (r *MongoLabTestRepo) Create(test *models.LabTest) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	now := time.Now()
	if test.CreatedAt.IsZero() {
		test.CreatedAt = now
	}
	test.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, test); err != nil {
		return fmt.Errorf("failed to create lab test: %w", err)
	}
	return nil
}

// GetByID retrieves a lab test by its unique ID.
func (r *MongoLabTestRepo) GetByID(id string) (*models.LabTest, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var test models.LabTest
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&test); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch lab test with id %s: %w", id, err)
	}
	return &test, nil
}

// GetByIDWithPatient retrieves a lab test joined with its patient document.
func (r *MongoLabTestRepo) GetByIDWithPatient(id string) (*models.LabTestWithPatient, error) {
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
		return nil, fmt.Errorf("failed to fetch lab test with id %s: %w", id, err)
	}
	defer cursor.Close(ctx)

	var results []models.LabTestWithPatient
	if err := cursor.All(ctx, &results); err != nil {
		return nil, fmt.Errorf("failed to decode lab test: %w", err)
	}
	if len(results) == 0 {
		return nil, nil
	}
	return &results[0], nil
}

// ListByPatient returns a page of a patient's tests plus the total count.
// An empty testType matches all types.
func (r *MongoLabTestRepo) ListByPatient(patientID, testType string, page, limit int) ([]models.LabTest, int64, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	filter := bson.M{"patient_id": patientID}
	if testType != "" {
		filter["test_type"] = testType
	}

	var (
		wg       sync.WaitGroup
		tests    []models.LabTest
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
			SetSort(bson.D{{Key: "created_at", Value: -1}})
		cursor, err := r.coll.Find(ctx, filter, opts)
		if err != nil {
			findErr = err
			return
		}
		defer cursor.Close(ctx)
		findErr = cursor.All(ctx, &tests)
	}()
	go func() {
		defer wg.Done()
		total, countErr = r.coll.CountDocuments(ctx, filter)
	}()
	wg.Wait()

	if findErr != nil {
		return nil, 0, fmt.Errorf("failed to list lab tests for patient %s: %w", patientID, findErr)
	}
	if countErr != nil {
		return nil, 0, fmt.Errorf("failed to count lab tests for patient %s: %w", patientID, countErr)
	}
	return tests, total, nil
}

// ListAllWithPatients returns a page of all tests joined with their patients.
// An empty testType matches all types.
func (r *MongoLabTestRepo) ListAllWithPatients(testType string, page, limit int) ([]models.LabTestWithPatient, int64, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	pipeline := mongo.Pipeline{}
	if testType != "" {
		pipeline = append(pipeline, bson.D{{Key: "$match", Value: bson.M{"test_type": testType}}})
	}
	pipeline = append(pipeline,
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
	)

	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list lab tests: %w", err)
	}
	defer cursor.Close(ctx)

	var result []struct {
		Data       []models.LabTestWithPatient `bson:"data"`
		TotalCount []struct {
			Count int64 `bson:"count"`
		} `bson:"totalCount"`
	}
	if err := cursor.All(ctx, &result); err != nil {
		return nil, 0, fmt.Errorf("failed to decode lab tests: %w", err)
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

// AttachDocument records the uploaded result document on an existing test.
func (r *MongoLabTestRepo) AttachDocument(id, docFile, docFileKey string) (*models.LabTest, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	update := bson.M{"$set": bson.M{
		"doc_file":     docFile,
		"doc_file_key": docFileKey,
		"updated_at":   time.Now(),
	}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var test models.LabTest
	if err := r.coll.FindOneAndUpdate(ctx, bson.M{"id": id}, update, opts).Decode(&test); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to update lab test with id %s: %w", id, err)
	}
	return &test, nil
}

// CountByType returns the total test count and a per-type breakdown.
func (r *MongoLabTestRepo) CountByType() (int64, map[string]int64, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	pipeline := mongo.Pipeline{
		bson.D{{Key: "$group", Value: bson.M{
			"_id":   "$test_type",
			"count": bson.M{"$sum": 1},
		}}},
	}

	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to aggregate lab test stats: %w", err)
	}
	defer cursor.Close(ctx)

	var rows []struct {
		Type  string `bson:"_id"`
		Count int64  `bson:"count"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return 0, nil, fmt.Errorf("failed to decode lab test stats: %w", err)
	}

	byType := make(map[string]int64, len(rows))
	var total int64
	for _, row := range rows {
		byType[row.Type] = row.Count
		total += row.Count
	}
	return total, byType, nil
}
