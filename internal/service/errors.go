package service

import "errors"

var (
	// ErrNotifyFailed tags errors from the notifier. The data change they
	// follow has already been committed.
	ErrNotifyFailed = errors.New("reminder update failed")

	ErrPlantRetired = errors.New("plant is retired")
)
