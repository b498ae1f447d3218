package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBootstrap_RequiredVars(t *testing.T) {
	require := require.New(t)
	assert := assert.New(t)

	t.Setenv(EnvIn, "1")
	t.Setenv(EnvOut, "0")
	t.Setenv(EnvConfig, "")

	opts, err := Bootstrap()
	require.NoError(err)
	assert.True(opts.SgshIn)
	assert.False(opts.SgshOut)
	assert.EqualValues(5, opts.FlexibleQuantum)
}

func TestBootstrap_MissingVarIsFatal(t *testing.T) {
	t.Setenv(EnvOut, "1")
	_, err := Bootstrap()
	assert.Error(t, err)
}

func TestBootstrap_UnparsableVarIsFatal(t *testing.T) {
	t.Setenv(EnvIn, "maybe")
	t.Setenv(EnvOut, "1")
	_, err := Bootstrap()
	assert.Error(t, err)
}

func TestBootstrap_JSONOverride(t *testing.T) {
	require := require.New(t)
	assert := assert.New(t)

	t.Setenv(EnvIn, "1")
	t.Setenv(EnvOut, "1")
	t.Setenv(EnvConfig, `{"flexible_quantum": 12}`)

	opts, err := Bootstrap()
	require.NoError(err)
	assert.EqualValues(12, opts.FlexibleQuantum)
}

func TestBootstrap_JSONOverrideRejectsNonPositive(t *testing.T) {
	t.Setenv(EnvIn, "1")
	t.Setenv(EnvOut, "1")
	t.Setenv(EnvConfig, `{"flexible_quantum": 0}`)

	_, err := Bootstrap()
	assert.Error(t, err)
}
