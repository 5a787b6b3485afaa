package runtime

import "fmt"

// FatalCode names a programmer-error class (spec.md §7 class 1): a
// fatal aborts the frame that produced it rather than being swallowed.
type FatalCode string

const (
	CodeInvalidProps FatalCode = "ZRUI_INVALID_PROPS"
	CodeHookOrder    FatalCode = "ZRUI_HOOK_ORDER"
	CodeZRDLLimit    FatalCode = "ZRDL_LIMIT"
)

// FatalError carries a fatal's code and a human-readable detail.
type FatalError struct {
	Code   FatalCode
	Detail string
}

func (e *FatalError) Error() string { return fmt.Sprintf("%s: %s", e.Code, e.Detail) }

// Backend ABI error codes, locked by spec.md §6. A Backend method
// returns one of these wrapped in a *BackendError.
const (
	ErrOK              = 0
	ErrInvalidArgument = -1
	ErrRingFull        = -2
	ErrPlatform        = -6
)

// BackendError wraps one of the locked engine-ABI status codes.
type BackendError struct {
	Code int
}

func (e *BackendError) Error() string {
	switch e.Code {
	case ErrInvalidArgument:
		return "ZR_ERR_INVALID_ARGUMENT"
	case ErrRingFull:
		return "ZR_ERR_RING_FULL"
	case ErrPlatform:
		return "ZR_ERR_PLATFORM"
	default:
		return fmt.Sprintf("engine error %d", e.Code)
	}
}
