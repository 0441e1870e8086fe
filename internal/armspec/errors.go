package armspec

import (
	"fmt"

	"cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/token"
)

// Error code constants, shared with the CLI error output.
const (
	ErrCodeGeneric       = "E001" // Generic/unknown error
	ErrCodeScanError     = "E002" // Directory scan error
	ErrCodeNoFiles       = "E003" // No CUE files found
	ErrCodeLoadFailed    = "E004" // CUE load failed
	ErrCodeNotFound      = "E005" // Path not found
	ErrCodeBuildFailed   = "E006" // CUE build failed
	ErrCodeInvalidLength = "E101" // Link length missing or not positive
	ErrCodeNoArms        = "E102" // No arms defined
	ErrCodeUnknownArm    = "E103" // Requested arm not defined
	ErrCodeInvalidField  = "E104" // Schema violation other than link length
)

// LoadError is an error found while loading arm specs.
type LoadError struct {
	Code    string
	Message string
	Pos     token.Pos // CUE position if available
}

func (e *LoadError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s", e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(), e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// fromCUEError converts the first error of a CUE error list to a LoadError.
// Errors on l1 or l2 get ErrCodeInvalidLength, other schema errors get fallback.
func fromCUEError(err error, fallback string) *LoadError {
	errs := errors.Errors(err)
	if len(errs) == 0 {
		return &LoadError{Code: fallback, Message: err.Error()}
	}

	first := errs[0]
	loadErr := &LoadError{Code: fallback, Message: first.Error()}

	if path := first.Path(); len(path) > 0 {
		switch path[len(path)-1] {
		case "l1", "l2":
			loadErr.Code = ErrCodeInvalidLength
		}
	}
	if positions := errors.Positions(first); len(positions) > 0 {
		loadErr.Pos = positions[0]
	}
	return loadErr
}
