package domain

import "errors"

var (
	// ErrInvalidCategory is returned when an identifier category is outside range1/range2
	ErrInvalidCategory = errors.New("invalid identifier category")

	// ErrInvalidStatus is returned when a transaction status is not a known classification
	ErrInvalidStatus = errors.New("invalid transaction status")

	// ErrUnknownIdentifier is returned when a write references an identifier that does not exist
	ErrUnknownIdentifier = errors.New("unknown identifier")

	// ErrCollectionNotSyncable is returned when a queued write targets a collection
	// outside the replay allow-list
	ErrCollectionNotSyncable = errors.New("collection is not syncable")

	// ErrNotReady is returned when the snapshot is read before the initial load completed
	ErrNotReady = errors.New("inventory snapshot not ready")
)
