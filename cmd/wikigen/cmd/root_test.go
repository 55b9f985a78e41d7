package cmd

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRootCmd_RegistersSubcommands(t *testing.T) {
	root := NewRootCmd()

	names := make(map[string]bool)
	for _, c := range root.Commands() {
		names[c.Name()] = true
	}

	for _, want := range []string{"init", "index", "search", "suggest", "related", "cluster", "watch", "version"} {
		assert.True(t, names[want], "missing subcommand %q", want)
	}
}

func TestVersionCmd(t *testing.T) {
	cmd := newVersionCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "wikigen")
}

func TestRootCmd_UnknownCommandFails(t *testing.T) {
	root := NewRootCmd()
	root.SetArgs([]string{"explode"})
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})

	assert.Error(t, root.Execute())
}
