package lower

import (
	"errors"
	"fmt"

	"github.com/lixenwraith/nodegame/core"
)

var (
	ErrGraphTooLarge       = errors.New("out of memory: values")
	ErrPinMapping          = errors.New("pin mapping failed")
	ErrMissingLiteralInput = errors.New("missing input for literal node")
	ErrInvalidColor        = core.ErrInvalidColor
	ErrValueOverflow       = errors.New("value array overflow")
	ErrLinkPinMissing      = errors.New("link pin missing")
	ErrTextureLoad         = errors.New("failed to load texture")
	ErrTextureInput        = errors.New("invalid texture input")
)

// Build error codes shown to the user next to the message
const (
	CodeGraphTooLarge = "I204"
	CodeInputPin      = "I202"
	CodeOutputPin     = "I203"
	CodeMissingInput  = "I208"
	CodeInvalidColor  = "I209"
	CodeValueOverflow = "I20A"
	CodeLinkPin       = "I20B"
	CodeTextureLoad   = "I20C"
	CodeTextureInput  = "I20D"
)

// BuildError ties a lowering failure to its code and, when known, the node
// index it was found on
type BuildError struct {
	Code string
	Node int
	Err  error
}

func (e *BuildError) Error() string {
	if e.Node >= 0 {
		return fmt.Sprintf("node %d: %v{%s}", e.Node, e.Err, e.Code)
	}
	return fmt.Sprintf("%v{%s}", e.Err, e.Code)
}

func (e *BuildError) Unwrap() error { return e.Err }

func buildErr(code string, node int, err error) *BuildError {
	return &BuildError{Code: code, Node: node, Err: err}
}
