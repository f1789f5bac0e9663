package store

import "errors"

// Sentinel errors returned by Store implementations. Callers should use
// [errors.Is] to match against these values.
var (
	// ErrEmptyKey is returned when an operation is called with an empty key.
	ErrEmptyKey = errors.New("store key is empty")

	// ErrWrongPassphrase is returned by FileStore when the file cannot be
	// opened with the configured passphrase or has been tampered with.
	ErrWrongPassphrase = errors.New("wrong passphrase or corrupted store file")

	// ErrUnsupportedFormat is returned when a store file was written by a
	// newer format version.
	ErrUnsupportedFormat = errors.New("unsupported store file format")
)

// Low-level database operation errors returned (wrapped) by SQLStore.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a query against the
	// database fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrScanningRow is returned when scanning the value column fails.
	ErrScanningRow = errors.New("failed to scan store row")

	// ErrConnectingDB is returned when the database cannot be opened or
	// pinged.
	ErrConnectingDB = errors.New("error connecting database")
)
