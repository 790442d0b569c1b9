package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"confluencebot/internal/bot"
)

const cliConversationID = "cli"

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Interactive chat session on the terminal",
	RunE:  runChat,
}

func init() {
	rootCmd.AddCommand(chatCmd)
}

func runChat(cmd *cobra.Command, _ []string) error {
	svc := buildService(true)
	ctx := cmd.Context()

	fmt.Printf("%s is ready! Type 'quit' to exit.\n\n", cfg.BotName)

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("You: ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())

		switch strings.ToLower(line) {
		case "quit", "exit", "q":
			fmt.Printf("Bot: %s\n", svc.Farewell(cliConversationID))
			offerSave(svc, scanner)
			return scanner.Err()
		case "":
			continue
		}

		fmt.Printf("Bot: %s\n\n", svc.Turn(ctx, cliConversationID, line))
	}

	return scanner.Err()
}

func offerSave(svc *bot.Service, scanner *bufio.Scanner) {
	if !svc.HasHistory(cliConversationID) {
		return
	}

	fmt.Print("\nWould you like to save this conversation? (y/n): ")
	if !scanner.Scan() {
		return
	}
	answer := strings.ToLower(strings.TrimSpace(scanner.Text()))
	if answer != "y" && answer != "yes" {
		return
	}

	path, err := svc.SaveTranscript(cliConversationID, "")
	if err != nil {
		fmt.Printf("Could not save the conversation: %v\n", err)
		return
	}
	fmt.Printf("Conversation saved to %s\n", path)
}
