//go:build !windows

package priv_test

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.trai.ch/ship/internal/adapters/priv"
)

func TestChecker_MatchesEffectiveUID(t *testing.T) {
	got, err := priv.NewChecker().Elevated()
	require.NoError(t, err)
	assert.Equal(t, os.Geteuid() == 0, got)
}
