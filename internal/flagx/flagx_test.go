package flagx

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFilterArgs_SeparateValue(t *testing.T) {
	args := []string{"-a", ":8080", "-x", "junk", "-d", "dsn"}
	got := FilterArgs(args, []string{"-a", "-d"})
	require.Equal(t, []string{"-a", ":8080", "-d", "dsn"}, got)
}

func TestFilterArgs_EqualsForm(t *testing.T) {
	args := []string{"--config=conf.json", "--other=zzz"}
	got := FilterArgs(args, []string{"--config"})
	require.Equal(t, []string{"--config=conf.json"}, got)
}

func TestFilterArgs_FlagWithoutValue(t *testing.T) {
	args := []string{"-v", "-a", ":8080"}
	got := FilterArgs(args, []string{"-v"})
	require.Equal(t, []string{"-v"}, got)
}

func TestFilterArgs_Empty(t *testing.T) {
	got := FilterArgs(nil, []string{"-a"})
	require.NotNil(t, got)
	require.Empty(t, got)
}
