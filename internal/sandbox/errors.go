package sandbox

import "github.com/mtoivan/samplab/internal/errors"

var (
	// ErrRejectedPlacement signals that the placement gate declined a
	// position. It is an expected negative result, not a failure.
	ErrRejectedPlacement = errors.NewSentinel("placement rejected")

	// ErrPointNotFound signals an operation on a point id that does not exist.
	ErrPointNotFound = errors.NewSentinel("point not found")

	// ErrNoScenario signals an operation on a session before any scenario was
	// loaded.
	ErrNoScenario = errors.NewSentinel("no scenario loaded")

	// ErrUnknownMethod signals a placement strategy name outside the known set.
	ErrUnknownMethod = errors.NewSentinel("unknown placement method")
)
