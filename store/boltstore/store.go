package boltstore

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.etcd.io/bbolt"

	"github.com/sky-flux/quota"
)

var (
	bucketSubjects = []byte("subjects")
	bucketSettings = []byte("settings")
	bucketProgress = []byte("progress")
)

const (
	settingsKey = "current"

	// keyTimeLayout is fixed width so keys sort chronologically.
	keyTimeLayout = "2006-01-02T15:04:05.000000000Z"
)

// Options configures Open. Zero values are replaced with defaults.
type Options struct {
	Timeout  time.Duration // file lock timeout, default 1s
	FileMode os.FileMode   // default 0600
}

// Store is a bbolt-backed quota store. It is safe for concurrent use.
type Store struct {
	db *bbolt.DB
}

var _ quota.ProgressLookup = (*Store)(nil)

// Open opens or creates the database at path, creating parent directories
// and buckets as needed.
func Open(path string, opts Options) (*Store, error) {
	if opts.Timeout == 0 {
		opts.Timeout = time.Second
	}
	if opts.FileMode == 0 {
		opts.FileMode = 0o600
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	db, err := bbolt.Open(path, opts.FileMode, &bbolt.Options{Timeout: opts.Timeout})
	if err != nil {
		return nil, err
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		for _, bucket := range [][]byte{bucketSubjects, bucketSettings, bucketProgress} {
			if _, err := tx.CreateBucketIfNotExists(bucket); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

// Close releases the database file.
func (s *Store) Close() error {
	return s.db.Close()
}

// SaveSubject inserts or replaces a subject keyed by its ID.
// IDs may not contain "/", which separates progress key segments.
func (s *Store) SaveSubject(subject quota.Subject) error {
	if err := subject.Validate(); err != nil {
		return err
	}
	if strings.Contains(subject.ID, "/") {
		return fmt.Errorf("%w: id %q contains '/'", quota.ErrInvalidSubject, subject.ID)
	}
	return save(s, bucketSubjects, subject.ID, subject)
}

// Subject returns the subject with the given ID.
func (s *Store) Subject(id string) (quota.Subject, error) {
	return get[quota.Subject](s, bucketSubjects, id)
}

// Subjects returns every stored subject ordered by ID.
func (s *Store) Subjects() ([]quota.Subject, error) {
	return list[quota.Subject](s, bucketSubjects)
}

// DeleteSubject removes a subject and its progress log.
func (s *Store) DeleteSubject(id string) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketSubjects)
		if b == nil {
			return fmt.Errorf("%w: %s", ErrBucketMissing, bucketSubjects)
		}
		if b.Get([]byte(id)) == nil {
			return fmt.Errorf("%w: %s/%s", ErrNotFound, bucketSubjects, id)
		}
		if err := b.Delete([]byte(id)); err != nil {
			return err
		}
		return deletePrefix(tx, bucketProgress, []byte(id+"/"))
	})
}

// Settings returns the stored settings, or quota.DefaultSettings when none
// were saved.
func (s *Store) Settings() (quota.Settings, error) {
	settings, err := get[quota.Settings](s, bucketSettings, settingsKey)
	if errors.Is(err, ErrNotFound) {
		return quota.DefaultSettings(), nil
	}
	return settings, err
}

// SaveSettings validates and stores settings.
func (s *Store) SaveSettings(settings quota.Settings) error {
	if err := settings.Validate(); err != nil {
		return err
	}
	return save(s, bucketSettings, settingsKey, settings)
}

// AddProgress appends a record to the log. A missing ID is filled with a
// random UUID; the stored record is returned.
func (s *Store) AddProgress(r quota.ProgressRecord) (quota.ProgressRecord, error) {
	if r.SubjectID == "" || strings.Contains(r.SubjectID, "/") {
		return r, fmt.Errorf("%w: subject_id %q", ErrInvalidRecord, r.SubjectID)
	}
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	err := save(s, bucketProgress, progressKey(r.SubjectID, r.RecordedAt, r.ID), r)
	return r, err
}

// RecordsInRange returns the subject's records with start ≤ RecordedAt < end,
// ordered by time.
func (s *Store) RecordsInRange(subjectID string, start, end time.Time) ([]quota.ProgressRecord, error) {
	if !start.Before(end) {
		return nil, nil
	}
	from := []byte(progressKey(subjectID, start, ""))
	to := []byte(progressKey(subjectID, end, ""))
	return scan[quota.ProgressRecord](s, bucketProgress, from, to)
}

// Progress returns the whole log ordered by subject, then time.
func (s *Store) Progress() ([]quota.ProgressRecord, error) {
	return list[quota.ProgressRecord](s, bucketProgress)
}

func progressKey(subjectID string, at time.Time, id string) string {
	return subjectID + "/" + at.UTC().Format(keyTimeLayout) + "/" + id
}
