package cli

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/q-sparc/sparc-chat/internal/adapters/driving/tui"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Launch the interactive terminal chat",
	Long: `Builds the index and opens an interactive chat session in the terminal.

Controls:
  Enter      - Send question
  Ctrl+C     - Quit`,
	RunE: runChat,
}

func init() {
	rootCmd.AddCommand(chatCmd)
}

func runChat(_ *cobra.Command, _ []string) error {
	rt, err := buildRuntime(context.Background())
	if err != nil {
		return err
	}
	defer rt.close()

	program := tea.NewProgram(tui.New(rt.chat), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("chat UI failed: %w", err)
	}
	return nil
}
