package errors

import "net/http"

var (
	// ErrConfiguration marks a malformed permission grant: a server-side
	// bug in grant data, never a user mistake and never a silent denial.
	ErrConfiguration = New(
		"CONFIGURATION_ERROR",
		"Permission configuration is invalid",
		http.StatusInternalServerError,
	)

	ErrUnauthorized = New(
		"UNAUTHORIZED",
		"Invalid or missing credentials",
		http.StatusUnauthorized,
	)

	ErrForbidden = New(
		"FORBIDDEN",
		"Operation not permitted",
		http.StatusForbidden,
	)

	ErrStationNotFound = New(
		"STATION_NOT_FOUND",
		"Station not found",
		http.StatusNotFound,
	)

	ErrLineNotFound = New(
		"LINE_NOT_FOUND",
		"Line not found",
		http.StatusNotFound,
	)

	ErrTrainNotFound = New(
		"TRAIN_NOT_FOUND",
		"Train not found",
		http.StatusNotFound,
	)

	ErrRunNotFound = New(
		"TRAIN_RUN_NOT_FOUND",
		"Train run not found",
		http.StatusNotFound,
	)

	ErrUserNotFound = New(
		"USER_NOT_FOUND",
		"User not found",
		http.StatusNotFound,
	)

	// Uniqueness violations surface distinctly so callers can answer
	// "already exists".
	ErrStationConflict = New(
		"STATION_CONFLICT",
		"Station already exists",
		http.StatusConflict,
	)

	ErrLineConflict = New(
		"LINE_CONFLICT",
		"Line already exists",
		http.StatusConflict,
	)

	ErrTrainConflict = New(
		"TRAIN_CONFLICT",
		"Train number already exists",
		http.StatusConflict,
	)

	ErrRunConflict = New(
		"TRAIN_RUN_CONFLICT",
		"A run for this train and day already exists",
		http.StatusConflict,
	)

	ErrUserConflict = New(
		"USER_CONFLICT",
		"Username already exists",
		http.StatusConflict,
	)

	// Deletions blocked by existing dependents surface distinctly so
	// callers can answer "cannot delete, still referenced".
	ErrStationReferenced = New(
		"STATION_REFERENCED",
		"Station is still referenced by line stops",
		http.StatusConflict,
	)

	ErrLineReferenced = New(
		"LINE_REFERENCED",
		"Line is still referenced by scheduled stops",
		http.StatusConflict,
	)

	ErrInvalidCredentials = New(
		"INVALID_CREDENTIALS",
		"Password not valid",
		http.StatusUnauthorized,
	)

	ErrInvalidRequest = New(
		"INVALID_REQUEST",
		"Invalid request parameters",
		http.StatusBadRequest,
	)

	// ErrDatabaseError is the transient infrastructure fault: retryable at
	// the caller's discretion, always preceded by a rollback of any open
	// transaction.
	ErrDatabaseError = New(
		"DATABASE_ERROR",
		"Database operation failed",
		http.StatusServiceUnavailable,
	)

	ErrCacheError = New(
		"CACHE_ERROR",
		"Cache operation failed",
		http.StatusInternalServerError,
	)

	ErrInternalServer = New(
		"INTERNAL_SERVER_ERROR",
		"Internal server error",
		http.StatusInternalServerError,
	)
)
