// Package mongodb provides a MongoDB-backed implementation of the
// storage.Storage interface using the official mongo-driver.
//
// All records live in a single "students" collection. The store
// assigns ObjectIDs; this package is the only place that touches
// primitive.ObjectID — the rest of the application sees hex strings.
//
// A unique index on email is created at startup. The friendly
// read-before-write checks below give a clear error message in the
// common case, and the index closes the race two concurrent requests
// would otherwise win together: a lost race surfaces as a driver
// duplicate-key error, which maps to storage.ErrEmailTaken too.
package mongodb

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/aanand-mishra/student-management/internal/config"
	"github.com/aanand-mishra/student-management/internal/storage"
	"github.com/aanand-mishra/student-management/internal/types"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// MongoDB is the concrete implementation of storage.Storage.
// A single *mongo.Client is a connection pool, safe for concurrent
// use by multiple goroutines.
type MongoDB struct {
	client   *mongo.Client
	students *mongo.Collection
}

// studentDoc is the persisted document shape. Gender is a pointer with
// omitempty so an unset gender is simply absent from the document,
// matching the schemaless records written by earlier versions.
type studentDoc struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	FirstName string             `bson:"first_name"`
	LastName  string             `bson:"last_name"`
	Email     string             `bson:"email"`
	Gender    *string            `bson:"gender,omitempty"`
	CreatedAt time.Time          `bson:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at"`
}

// New connects to the MongoDB deployment named in cfg, verifies the
// connection with a ping, and ensures the unique email index exists.
// The returned *MongoDB must be closed with Close on shutdown.
func New(ctx context.Context, cfg *config.Config) (*MongoDB, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.Database.URI))
	if err != nil {
		return nil, fmt.Errorf("mongodb.New: connect: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return nil, fmt.Errorf("mongodb.New: ping: %w", err)
	}

	students := client.Database(cfg.Database.Name).Collection("students")

	// Idempotent: CreateOne on an index that already exists is a no-op.
	_, err = students.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return nil, fmt.Errorf("mongodb.New: create email index: %w", err)
	}

	return &MongoDB{client: client, students: students}, nil
}

// Close disconnects the underlying client, releasing all pooled
// connections.
func (s *MongoDB) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// CreateStudent inserts a new record with created_at = updated_at = now
// and returns the stored representation, id included.
func (s *MongoDB) CreateStudent(ctx context.Context, in types.CreateStudent) (types.Student, error) {
	err := s.students.FindOne(ctx, bson.M{"email": in.Email}).Err()
	if err == nil {
		return types.Student{}, storage.ErrEmailTaken
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return types.Student{}, fmt.Errorf("CreateStudent: email lookup: %w", err)
	}

	now := time.Now().UTC()
	doc := studentDoc{
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Email:     in.Email,
		Gender:    in.Gender,
		CreatedAt: now,
		UpdatedAt: now,
	}

	res, err := s.students.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return types.Student{}, storage.ErrEmailTaken
		}
		return types.Student{}, fmt.Errorf("CreateStudent: insert: %w", err)
	}

	doc.ID = res.InsertedID.(primitive.ObjectID)
	return doc.toStudent(), nil
}

// ListStudents returns one page of records in insertion order plus the
// total number of records matching the filter.
func (s *MongoDB) ListStudents(ctx context.Context, page, limit int64, search string) ([]types.Student, int64, error) {
	filter := listFilter(search)

	total, err := s.students.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("ListStudents: count: %w", err)
	}

	opts := options.Find().
		SetSkip((page - 1) * limit).
		SetLimit(limit)

	cursor, err := s.students.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("ListStudents: find: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []studentDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, 0, fmt.Errorf("ListStudents: decode: %w", err)
	}

	// Empty slice, not nil: the JSON response must be [] rather than null.
	students := make([]types.Student, 0, len(docs))
	for _, d := range docs {
		students = append(students, d.toStudent())
	}

	return students, total, nil
}

// GetStudentByID fetches exactly one record matched by id.
func (s *MongoDB) GetStudentByID(ctx context.Context, id string) (types.Student, error) {
	oid, err := parseID(id)
	if err != nil {
		return types.Student{}, err
	}

	var doc studentDoc
	err = s.students.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return types.Student{}, storage.ErrNotFound
	}
	if err != nil {
		return types.Student{}, fmt.Errorf("GetStudentByID: find: %w", err)
	}

	return doc.toStudent(), nil
}

// UpdateStudent merges the non-nil fields of upd into the record via
// $set and refreshes updated_at. The email conflict check excludes the
// record itself, so re-submitting the current email is not a collision.
func (s *MongoDB) UpdateStudent(ctx context.Context, id string, upd types.UpdateStudent) (types.Student, error) {
	oid, err := parseID(id)
	if err != nil {
		return types.Student{}, err
	}

	err = s.students.FindOne(ctx, bson.M{"_id": oid}).Err()
	if errors.Is(err, mongo.ErrNoDocuments) {
		return types.Student{}, storage.ErrNotFound
	}
	if err != nil {
		return types.Student{}, fmt.Errorf("UpdateStudent: find: %w", err)
	}

	if upd.Email != nil {
		err = s.students.FindOne(ctx, bson.M{
			"email": *upd.Email,
			"_id":   bson.M{"$ne": oid},
		}).Err()
		if err == nil {
			return types.Student{}, storage.ErrEmailTaken
		}
		if !errors.Is(err, mongo.ErrNoDocuments) {
			return types.Student{}, fmt.Errorf("UpdateStudent: email lookup: %w", err)
		}
	}

	set := bson.M{"updated_at": time.Now().UTC()}
	if upd.FirstName != nil {
		set["first_name"] = *upd.FirstName
	}
	if upd.LastName != nil {
		set["last_name"] = *upd.LastName
	}
	if upd.Email != nil {
		set["email"] = *upd.Email
	}
	if upd.Gender != nil {
		set["gender"] = *upd.Gender
	}

	_, err = s.students.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": set})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return types.Student{}, storage.ErrEmailTaken
		}
		return types.Student{}, fmt.Errorf("UpdateStudent: update: %w", err)
	}

	var doc studentDoc
	if err := s.students.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		return types.Student{}, fmt.Errorf("UpdateStudent: reload: %w", err)
	}

	return doc.toStudent(), nil
}

// DeleteStudent permanently removes a record. There is no tombstone;
// a deleted id behaves exactly like one that never existed.
func (s *MongoDB) DeleteStudent(ctx context.Context, id string) error {
	oid, err := parseID(id)
	if err != nil {
		return err
	}

	res, err := s.students.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("DeleteStudent: delete: %w", err)
	}
	if res.DeletedCount == 0 {
		return storage.ErrNotFound
	}

	return nil
}

// parseID converts a caller-supplied identifier string into an
// ObjectID, mapping any malformed input to storage.ErrInvalidID.
func parseID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%w: %q", storage.ErrInvalidID, id)
	}
	return oid, nil
}

// listFilter builds the find/count filter for ListStudents. An empty
// search matches everything. The search text is quoted so it matches
// as a literal substring, not as a regular expression.
func listFilter(search string) bson.M {
	if search == "" {
		return bson.M{}
	}

	re := primitive.Regex{Pattern: regexp.QuoteMeta(search), Options: "i"}
	return bson.M{"$or": bson.A{
		bson.M{"first_name": re},
		bson.M{"last_name": re},
		bson.M{"email": re},
	}}
}

func (d studentDoc) toStudent() types.Student {
	return types.Student{
		ID:        d.ID.Hex(),
		FirstName: d.FirstName,
		LastName:  d.LastName,
		Email:     d.Email,
		Gender:    d.Gender,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}
