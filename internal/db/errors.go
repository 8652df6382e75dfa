package db

import "errors"

// Domain-level database error sentinels.
var (
	// User errors
	ErrUserNotFound = errors.New("user not found")

	// Project errors
	ErrProjectNotFound = errors.New("project not found")

	// Backlink errors
	ErrBacklinkNotFound        = errors.New("backlink not found")
	ErrProjectBacklinkNotFound = errors.New("project backlink not found")
	ErrDuplicateBacklink       = errors.New("backlink already exists for this website and category")

	// Trash errors
	ErrTrashRecordNotFound = errors.New("trash record not found")

	// Delete request errors
	ErrDeleteRequestNotFound = errors.New("delete request not found")

	// Goal errors
	ErrGoalNotFound = errors.New("goal not found")
)
