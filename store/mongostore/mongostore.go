// Package mongostore reads the progress log from a MongoDB collection.
package mongostore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/sky-flux/quota"
)

// ErrNotConnected is returned when the store is used after Close.
var ErrNotConnected = errors.New("mongostore: not connected")

// Config configures Connect. Zero values are replaced with defaults.
type Config struct {
	URI        string        // default "mongodb://localhost:27017"
	Database   string        // default "quota"
	Collection string        // default "progress"
	Timeout    time.Duration // per operation, default 10s
}

func (c Config) withDefaults() Config {
	if c.URI == "" {
		c.URI = "mongodb://localhost:27017"
	}
	if c.Database == "" {
		c.Database = "quota"
	}
	if c.Collection == "" {
		c.Collection = "progress"
	}
	if c.Timeout == 0 {
		c.Timeout = 10 * time.Second
	}
	return c
}

// progressDoc is the stored shape of a quota.ProgressRecord.
type progressDoc struct {
	ID         string         `bson:"_id"`
	SubjectID  string         `bson:"subject_id"`
	Units      int            `bson:"units"`
	RecordedAt time.Time      `bson:"recorded_at"`
	Duration   *time.Duration `bson:"duration,omitempty"`
}

func newProgressDoc(r quota.ProgressRecord) progressDoc {
	return progressDoc{
		ID:         r.ID,
		SubjectID:  r.SubjectID,
		Units:      r.Units,
		RecordedAt: r.RecordedAt.UTC(),
		Duration:   r.Duration,
	}
}

func (d progressDoc) record() quota.ProgressRecord {
	return quota.ProgressRecord{
		ID:         d.ID,
		SubjectID:  d.SubjectID,
		Units:      d.Units,
		RecordedAt: d.RecordedAt,
		Duration:   d.Duration,
	}
}

// Store is a MongoDB-backed progress log.
type Store struct {
	client  *mongo.Client
	coll    *mongo.Collection
	timeout time.Duration
}

var _ quota.ProgressLookup = (*Store)(nil)

// Connect dials MongoDB, pings it, and returns a Store over the configured
// collection.
func Connect(ctx context.Context, cfg Config) (*Store, error) {
	cfg = cfg.withDefaults()

	ctx, cancel := context.WithTimeout(ctx, cfg.Timeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("mongostore: connect: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongostore: ping: %w", err)
	}

	return &Store{
		client:  client,
		coll:    client.Database(cfg.Database).Collection(cfg.Collection),
		timeout: cfg.Timeout,
	}, nil
}

// Close disconnects the client.
func (s *Store) Close(ctx context.Context) error {
	if s.client == nil {
		return ErrNotConnected
	}
	err := s.client.Disconnect(ctx)
	s.client = nil
	return err
}

// AddProgress inserts a record. The record must carry an ID.
func (s *Store) AddProgress(ctx context.Context, r quota.ProgressRecord) error {
	if s.client == nil {
		return ErrNotConnected
	}
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	_, err := s.coll.InsertOne(ctx, newProgressDoc(r))
	return err
}

// DeleteSubject removes every record of a subject.
func (s *Store) DeleteSubject(ctx context.Context, subjectID string) error {
	if s.client == nil {
		return ErrNotConnected
	}
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	_, err := s.coll.DeleteMany(ctx, bson.M{"subject_id": subjectID})
	return err
}

// RecordsInRange returns the subject's records with start ≤ recorded_at < end,
// oldest first.
func (s *Store) RecordsInRange(subjectID string, start, end time.Time) ([]quota.ProgressRecord, error) {
	if s.client == nil {
		return nil, ErrNotConnected
	}
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "recorded_at", Value: 1}})
	cursor, err := s.coll.Find(ctx, rangeFilter(subjectID, start, end), opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []progressDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	out := make([]quota.ProgressRecord, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.record())
	}
	return out, nil
}

// rangeFilter selects one subject's records in [start, end).
func rangeFilter(subjectID string, start, end time.Time) bson.M {
	return bson.M{
		"subject_id": subjectID,
		"recorded_at": bson.M{
			"$gte": start.UTC(),
			"$lt":  end.UTC(),
		},
	}
}
