package boltstore

import "errors"

var (
	// ErrNotFound is returned when a key does not exist.
	ErrNotFound = errors.New("boltstore: not found")

	// ErrBucketMissing is returned when a bucket was not created by Open.
	ErrBucketMissing = errors.New("boltstore: bucket missing")

	// ErrInvalidRecord is returned for progress records without a subject.
	ErrInvalidRecord = errors.New("boltstore: invalid progress record")
)
