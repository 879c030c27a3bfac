package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noEnv(string) string { return "" }

func TestRootCommandArgs(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"no args", nil},
		{"blank arg", []string{"  "}},
		{"two args", []string{"a", "b"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := newRootCommand(noEnv)
			cmd.SetArgs(tt.args)
			cmd.SetOut(&bytes.Buffer{})
			err := cmd.Execute()
			require.Error(t, err)
			assert.Contains(t, err.Error(), "provide one video URL or ID")
		})
	}
}

func TestRootCommandFlags(t *testing.T) {
	cmd := newRootCommand(noEnv)
	for _, name := range []string{"lang", "html", "json", "api-key", "timeout", "verbose"} {
		assert.NotNil(t, cmd.Flags().Lookup(name), "flag %s", name)
	}
	assert.Equal(t, "l", cmd.Flags().Lookup("lang").Shorthand)
}
