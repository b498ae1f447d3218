// Package config resolves the environment a negotiating tool is started
// with into typed Options (spec §4.1).
package config

import (
	"fmt"
	"os"

	"github.com/buger/jsonparser"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cast"

	"github.com/sgsh/negotiate/solve"
)

// Environment variable names the bootstrap reads (spec §4.1).
const (
	EnvIn     = "SGSH_IN"
	EnvOut    = "SGSH_OUT"
	EnvConfig = "SGSH_NEGOTIATE_CONFIG"
)

// Options configures one tool's participation in a negotiation. Logger
// follows the teacher's convention: nil disables logging rather than
// panicking on a nil pointer dereference.
type Options struct {
	Logger *zerolog.Logger

	// SgshIn/SgshOut mirror the two booleans read from the environment
	// (spec §4.1); Bootstrap fills these in, but a caller embedding the
	// negotiator in a larger process may set them directly instead.
	SgshIn  bool
	SgshOut bool

	// FlexibleQuantum overrides solve.DefaultFlexibleQuantum when positive
	// (supplement to spec §4.6, §9 Open Question 2).
	FlexibleQuantum int32

	// BufferSize overrides the round controller's read chunk size when
	// positive: how many bytes it reads off the negotiation channel per
	// read call (session.DefaultReadChunkSize is the controller's own
	// fallback, kept in sync with DefaultReadChunkSize below).
	BufferSize int32
}

// DefaultReadChunkSize is the read chunk size a tool uses when
// BufferSize is left at zero.
const DefaultReadChunkSize = 4096

// DefaultOptions matches an unconfigured tool: logging through the global
// zerolog logger, no negotiation activity on either side, the solver's
// built-in default quantum, and the default read chunk size.
var DefaultOptions = Options{
	Logger:          &log.Logger,
	FlexibleQuantum: solve.DefaultFlexibleQuantum,
	BufferSize:      DefaultReadChunkSize,
}

// Bootstrap reads SGSH_IN/SGSH_OUT (required, spec §4.1: "failure to parse
// either is fatal") and the optional SGSH_NEGOTIATE_CONFIG JSON blob
// (supplement: original_source/negotiate.c has no such override, but the
// distilled spec's Open Question 2 over the flexible quantum needs a
// configuration surface, and the teacher's JSON-handling stack gives us
// one for free).
func Bootstrap() (Options, error) {
	opts := DefaultOptions

	in, ok := os.LookupEnv(EnvIn)
	if !ok {
		return Options{}, fmt.Errorf("%s not set", EnvIn)
	}
	sgshIn, err := cast.ToBoolE(in)
	if err != nil {
		return Options{}, fmt.Errorf("parse %s=%q: %w", EnvIn, in, err)
	}
	opts.SgshIn = sgshIn

	out, ok := os.LookupEnv(EnvOut)
	if !ok {
		return Options{}, fmt.Errorf("%s not set", EnvOut)
	}
	sgshOut, err := cast.ToBoolE(out)
	if err != nil {
		return Options{}, fmt.Errorf("parse %s=%q: %w", EnvOut, out, err)
	}
	opts.SgshOut = sgshOut

	if raw, ok := os.LookupEnv(EnvConfig); ok && raw != "" {
		if err := applyJSONOverride(&opts, []byte(raw)); err != nil {
			return Options{}, fmt.Errorf("parse %s: %w", EnvConfig, err)
		}
	}

	return opts, nil
}

func applyJSONOverride(opts *Options, raw []byte) error {
	q, err := jsonparser.GetInt(raw, "flexible_quantum")
	switch err {
	case nil:
		if q <= 0 {
			return fmt.Errorf("flexible_quantum must be positive, got %d", q)
		}
		opts.FlexibleQuantum = int32(q)
	case jsonparser.KeyPathNotFoundError:
		// absent: keep the default
	default:
		return err
	}

	bufSize, err := jsonparser.GetInt(raw, "buffer_size")
	switch err {
	case nil:
		if bufSize <= 0 {
			return fmt.Errorf("buffer_size must be positive, got %d", bufSize)
		}
		opts.BufferSize = int32(bufSize)
	case jsonparser.KeyPathNotFoundError:
		// absent: keep the default
	default:
		return err
	}
	return nil
}
