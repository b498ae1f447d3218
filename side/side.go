// Package side identifies which of a tool's two standard channels
// (standard input or standard output) a negotiation event belongs to.
//
// Exported to a separate package in order to avoid import loops between
// block, graph and transport.
package side

import (
	"errors"
	"fmt"
)

// ErrValue is returned by Parse for an unrecognised side name.
var ErrValue = errors.New("invalid side")

// Side identifies a tool's standard input or standard output.
type Side byte

const (
	IN  Side = 0 // standard input
	OUT Side = 1 // standard output
)

// Flip returns the other side.
func (s Side) Flip() Side {
	if s == IN {
		return OUT
	}
	return IN
}

// String converts Side to a short human-readable name.
func (s Side) String() string {
	switch s {
	case IN:
		return "stdin"
	case OUT:
		return "stdout"
	default:
		return "?"
	}
}

// Parse converts a string to a Side.
func Parse(s string) (Side, error) {
	switch s {
	case "stdin", "in", "IN":
		return IN, nil
	case "stdout", "out", "OUT":
		return OUT, nil
	default:
		return 0, ErrValue
	}
}

// MarshalJSON renders a Side by name rather than as a raw byte, so a
// marshaled block.Block reads "stdin"/"stdout" instead of 0/1.
func (s Side) MarshalJSON() ([]byte, error) {
	return []byte(fmt.Sprintf("%q", s)), nil
}

// UnmarshalJSON parses a Side back out of its name via Parse.
func (s *Side) UnmarshalJSON(data []byte) error {
	var name string
	if err := unquoteJSON(data, &name); err != nil {
		return err
	}
	v, err := Parse(name)
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// unquoteJSON strips the quotes json.Marshal puts around a string without
// pulling in encoding/json here, to keep this leaf package dependency-free.
func unquoteJSON(data []byte, out *string) error {
	if len(data) < 2 || data[0] != '"' || data[len(data)-1] != '"' {
		return fmt.Errorf("side: not a JSON string: %s", data)
	}
	*out = string(data[1 : len(data)-1])
	return nil
}
