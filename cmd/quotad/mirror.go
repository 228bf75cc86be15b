package main

import (
	"context"
	"log/slog"

	"github.com/sky-flux/quota"
	"github.com/sky-flux/quota/store/boltstore"
)

// progressMirror receives copies of the progress log. *mongostore.Store
// satisfies it.
type progressMirror interface {
	AddProgress(ctx context.Context, r quota.ProgressRecord) error
	DeleteSubject(ctx context.Context, subjectID string) error
}

// mirroredStore serves everything from bbolt and copies progress writes and
// subject deletes to a mirror. Mirror failures are logged and never affect
// what the engine reads.
type mirroredStore struct {
	*boltstore.Store
	mirror progressMirror
	logger *slog.Logger
}

func (m *mirroredStore) AddProgress(r quota.ProgressRecord) (quota.ProgressRecord, error) {
	stored, err := m.Store.AddProgress(r)
	if err != nil {
		return stored, err
	}
	if err := m.mirror.AddProgress(context.Background(), stored); err != nil {
		m.logger.Warn("mirror progress failed",
			slog.String("id", stored.ID),
			slog.String("subject_id", stored.SubjectID),
			slog.String("error", err.Error()),
		)
	}
	return stored, nil
}

func (m *mirroredStore) DeleteSubject(id string) error {
	if err := m.Store.DeleteSubject(id); err != nil {
		return err
	}
	if err := m.mirror.DeleteSubject(context.Background(), id); err != nil {
		m.logger.Warn("mirror subject delete failed",
			slog.String("subject_id", id),
			slog.String("error", err.Error()),
		)
	}
	return nil
}
