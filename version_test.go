package structconf_test

import (
	"testing"

	"github.com/structconf/structconf"

	"github.com/stretchr/testify/require"
)

func TestVersion_DefaultValues(t *testing.T) {
	t.Parallel()

	require.Equal(t, "dev", structconf.Version)
	require.Equal(t, "unknown", structconf.CompiledAt)
}
