package extract

import "errors"

// All three abort the run; nothing is written after any of them.
var (
	// ErrDiscovery reports that the registry could not be loaded or enumerated.
	ErrDiscovery = errors.New("model discovery failed")

	// ErrReflection reports unreadable column, association or validator data.
	ErrReflection = errors.New("model reflection failed")

	// ErrIO reports that the snapshot file or its directory could not be written.
	ErrIO = errors.New("snapshot write failed")
)
