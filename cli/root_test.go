package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommand(t *testing.T) {
	cmd := NewRootCommand()
	require.NotNil(t, cmd)
	assert.Equal(t, "campus-link", cmd.Use)
}

func TestCommandPresence(t *testing.T) {
	cmd := NewRootCommand()

	for _, name := range []string{"serve", "migrate", "recompute-reputation"} {
		t.Run(name, func(t *testing.T) {
			sub, _, err := cmd.Find([]string{name})
			require.NoError(t, err)
			assert.Equal(t, name, sub.Name())
		})
	}
}

func TestRecomputeFlags(t *testing.T) {
	cmd := NewRootCommand()
	sub, _, err := cmd.Find([]string{"recompute-reputation"})
	require.NoError(t, err)

	user := sub.Flags().Lookup("user")
	require.NotNil(t, user)
	assert.Equal(t, "", user.DefValue)
	all := sub.Flags().Lookup("all")
	require.NotNil(t, all)
	assert.Equal(t, "false", all.DefValue)
}

func TestRecomputeOptionsValidate(t *testing.T) {
	assert.Error(t, recomputeOptions{}.validate())
	assert.Error(t, recomputeOptions{UserID: "U1", All: true}.validate())
	assert.NoError(t, recomputeOptions{UserID: "U1"}.validate())
	assert.NoError(t, recomputeOptions{All: true}.validate())
}

func TestRecomputeRequiresTarget(t *testing.T) {
	cmd := NewRootCommand()
	cmd.SetArgs([]string{"recompute-reputation"})
	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--user or --all")
}
