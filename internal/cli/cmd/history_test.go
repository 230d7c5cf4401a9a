package cmd

import (
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunHistoryRejectsNonPositiveMax(t *testing.T) {
	orig := historyMax
	t.Cleanup(func() { historyMax = orig })

	for _, max := range []int{0, -1, -50} {
		historyMax = max

		err := runHistory(&cobra.Command{}, nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "--max must be positive")
	}
}
