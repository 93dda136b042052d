package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCmd_RegistersCommands(t *testing.T) {
	names := make(map[string]bool)
	for _, cmd := range rootCmd.Commands() {
		names[cmd.Name()] = true
	}

	for _, want := range []string{"serve", "ask", "chat", "version"} {
		assert.True(t, names[want], "command %q should be registered", want)
	}
}

func TestRootCmd_PersistentFlags(t *testing.T) {
	assert.NotNil(t, rootCmd.PersistentFlags().Lookup("config"))
	assert.NotNil(t, rootCmd.PersistentFlags().Lookup("verbose"))
}

func TestAskCmd_Flags(t *testing.T) {
	assert.Equal(t, "ask [question]", askCmd.Use)
	assert.NotNil(t, askCmd.Flags().Lookup("session"))
	assert.NotNil(t, askCmd.Flags().Lookup("top-k"))
	assert.NotNil(t, askCmd.Flags().Lookup("json"))
}

func TestAskCmd_RequiresExactlyOneArg(t *testing.T) {
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"ask"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	require.Error(t, err)
}

func TestServeCmd_Flags(t *testing.T) {
	assert.Equal(t, "serve", serveCmd.Use)
	assert.NotNil(t, serveCmd.Flags().Lookup("addr"))
}

func TestChatCmd_Help(t *testing.T) {
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"chat", "--help"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "interactive chat session")
}
