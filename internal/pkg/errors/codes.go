package errors

import "net/http"

const (
	CodeInvalidArgument    = "INVALID_ARGUMENT"
	CodeInvalidOperation   = "INVALID_OPERATION"
	CodePermissionDenied   = "PERMISSION_DENIED"
	CodeNotAccessible      = "NOT_ACCESSIBLE"
	CodeUnauthenticated    = "UNAUTHENTICATED"
	CodeConfigurationFault = "CONFIGURATION_FAULT"
)

var (
	ErrInvalidArgument = New(
		CodeInvalidArgument,
		"Invalid argument",
		http.StatusBadRequest,
	)

	ErrInvalidCoordinates = New(
		CodeInvalidArgument,
		"Invalid coordinates: latitude must be in [-90, 90], longitude in [-180, 180]",
		http.StatusBadRequest,
	)

	ErrInvalidRadius = New(
		CodeInvalidArgument,
		"Invalid radius: must be greater than 0",
		http.StatusBadRequest,
	)

	ErrInvalidPassword = New(
		CodeInvalidArgument,
		"Invalid password input",
		http.StatusBadRequest,
	)

	ErrInvalidRequest = New(
		CodeInvalidArgument,
		"Invalid request parameters",
		http.StatusBadRequest,
	)

	ErrPasswordNotApplicable = New(
		CodeInvalidOperation,
		"Password is not applicable to this grievance",
		http.StatusBadRequest,
	)

	ErrPermissionDenied = New(
		CodePermissionDenied,
		"Permission denied",
		http.StatusForbidden,
	)

	// ErrNotAccessible одинакова для "нет прав" и "неверный пароль"
	ErrNotAccessible = New(
		CodeNotAccessible,
		"Grievance is not accessible",
		http.StatusForbidden,
	)

	ErrUnauthenticated = New(
		CodeUnauthenticated,
		"Authentication required",
		http.StatusUnauthorized,
	)

	ErrGrievanceNotFound = New(
		"GRIEVANCE_NOT_FOUND",
		"Grievance not found",
		http.StatusNotFound,
	)

	ErrAreaNotFound = New(
		"AREA_NOT_FOUND",
		"Area not found",
		http.StatusNotFound,
	)

	ErrUnassignedAreaMissing = New(
		CodeConfigurationFault,
		"Reserved unassigned area is missing",
		http.StatusInternalServerError,
	)

	ErrDatabaseError = New(
		"DATABASE_ERROR",
		"Database operation failed",
		http.StatusInternalServerError,
	)

	ErrCacheError = New(
		"CACHE_ERROR",
		"Cache operation failed",
		http.StatusInternalServerError,
	)

	ErrUpstreamUnavailable = New(
		"UPSTREAM_UNAVAILABLE",
		"Geocoding provider unavailable",
		http.StatusBadGateway,
	)

	ErrInternalServer = New(
		"INTERNAL_SERVER_ERROR",
		"Internal server error",
		http.StatusInternalServerError,
	)
)
