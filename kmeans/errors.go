package kmeans

import "errors"

var (
	// ErrInvalidDataset is returned when fewer than two points are clustered.
	ErrInvalidDataset = errors.New("dataset must contain at least 2 points")
	// ErrDimensionMismatch is returned when points of different dimensionality meet.
	ErrDimensionMismatch = errors.New("dimension mismatch")
	// ErrCoordinateRange is returned for a coordinate outside [-MaxCoordinate, MaxCoordinate].
	ErrCoordinateRange = errors.New("coordinate out of range")
	// ErrInvalidK is returned when the requested cluster count is below 1.
	ErrInvalidK = errors.New("k must be at least 1")
	// ErrInvalidConfiguration is returned for unknown or out of range option values.
	ErrInvalidConfiguration = errors.New("invalid configuration")
	// ErrInsufficientData is returned when an initializer has no points to draw from.
	ErrInsufficientData = errors.New("no points to draw initial centers from")
)

var errNotInitialized = errors.New("engine has no clusters; call Initialize or Run first")
