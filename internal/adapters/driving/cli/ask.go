package cli

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/q-sparc/sparc-chat/internal/core/domain"
)

var (
	askSession string
	askTopK    int
	askJSON    bool
)

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask a single question from the command line",
	Long: `Builds the index, asks one question, prints the answer, and exits.

Pass --session to continue an earlier conversation within the same
process lifetime; without it a fresh session is minted per invocation.`,
	Args: cobra.ExactArgs(1),
	RunE: runAsk,
}

func init() {
	askCmd.Flags().StringVar(&askSession, "session", "", "session ID to continue")
	askCmd.Flags().IntVarP(&askTopK, "top-k", "k", 0, "retrieval depth (overrides config)")
	askCmd.Flags().BoolVar(&askJSON, "json", false, "output the full response as JSON")
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	rt, err := buildRuntime(ctx)
	if err != nil {
		return err
	}
	defer rt.close()

	sessionID := askSession
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	resp, err := rt.chat.Respond(ctx, domain.ChatRequest{
		SessionID: sessionID,
		Input:     args[0],
		TopK:      askTopK,
	})
	if err != nil {
		return fmt.Errorf("ask failed: %w", err)
	}

	if askJSON {
		return outputAskJSON(cmd, resp)
	}
	return outputAskText(cmd, resp)
}

func outputAskJSON(cmd *cobra.Command, resp domain.ChatResponse) error {
	data, err := json.MarshalIndent(resp, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal response: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputAskText(cmd *cobra.Command, resp domain.ChatResponse) error {
	cmd.Println(resp.GeneratedText)

	if resp.TableData != nil && len(resp.TableData.Rows) > 0 {
		cmd.Println()
		cmd.Printf("Cited connections (%d):\n", len(resp.TableData.Rows))
		for _, row := range resp.TableData.Rows {
			if len(row) > 0 {
				cmd.Printf("  - %s\n", row[0])
			}
		}
	}
	return nil
}
