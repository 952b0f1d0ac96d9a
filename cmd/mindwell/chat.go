package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

// chatCmd runs an interactive terminal session against the assistant,
// bypassing the HTTP layer. Useful for local testing.
var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Chat with the assistant from the terminal",
	RunE: func(cmd *cobra.Command, _ []string) error {
		userID, err := cmd.Flags().GetString("user")
		if err != nil {
			return err
		}

		instanceProfile, err := loadProfile()
		if err != nil {
			return err
		}
		setupLogger(instanceProfile)

		asst, storeInstance, _, err := buildAssistant(instanceProfile)
		if err != nil {
			return err
		}
		defer storeInstance.Close()
		defer asst.Close()

		fmt.Printf("MindWell %s - chatting as %q (type 'exit' to quit)\n", instanceProfile.Version, userID)

		sessionID := ""
		scanner := bufio.NewScanner(os.Stdin)
		scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
		for {
			fmt.Print("> ")
			if !scanner.Scan() {
				break
			}
			message := strings.TrimSpace(scanner.Text())
			if message == "" {
				continue
			}
			if message == "exit" || message == "quit" {
				break
			}

			reply, sid, err := asst.HandleTurn(cmd.Context(), userID, sessionID, message)
			if err != nil {
				fmt.Fprintf(os.Stderr, "error: %v\n", err)
				continue
			}
			sessionID = sid
			fmt.Println(reply)
		}
		return scanner.Err()
	},
}

func init() {
	chatCmd.Flags().String("user", "local", "user id to chat as")
	rootCmd.AddCommand(chatCmd)
}
