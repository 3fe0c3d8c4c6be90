package store

import "errors"

// Sentinel errors returned by [Store] implementations to signal well-known
// failure conditions. Callers should use [errors.Is] to match against these
// values.
var (
	// ErrNotFound is returned when a lookup expected to match at least one
	// record produces an empty result set.
	ErrNotFound = errors.New("record not found")

	// ErrConstraintViolation is returned when an insert or update is
	// rejected by a uniqueness constraint, e.g. registering an e-mail
	// address that already has an account.
	ErrConstraintViolation = errors.New("constraint violation")

	// ErrUnsupportedBackend is returned by the factory when the configured
	// storage backend name is not one of the supported values.
	ErrUnsupportedBackend = errors.New("unsupported storage backend")
)

// Low-level operation errors. These wrap driver failures that occur before
// any domain logic can be applied.
var (
	// ErrBuildingQuery is returned when constructing a parameterised query
	// from a filter or record fails.
	ErrBuildingQuery = errors.New("error building query")

	// ErrExecutingQuery is returned when executing a statement against the
	// backend fails for a reason other than a recognised constraint or
	// not-found condition.
	ErrExecutingQuery = errors.New("error executing query")

	// ErrScanningRow is returned when reading column values from a result
	// row into a record fails.
	ErrScanningRow = errors.New("error scanning row")
)
