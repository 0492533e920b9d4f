package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rkaushal27/tailorcv/internal/document"
	"github.com/rkaushal27/tailorcv/internal/llm"
)

var chatModel string

var chatCmd = &cobra.Command{
	Use:   "chat <resume-file>",
	Short: "Interactive Q&A about a resume",
	Long: "Starts an interactive session with the backend, seeded with the resume text.\n" +
		"Ask follow-up questions about wording, structure, or fit. Exit with \"quit\" or ctrl+d.",
	Args: cobra.ExactArgs(1),
	RunE: runChat,
}

func init() {
	rootCmd.AddCommand(chatCmd)
	chatCmd.Flags().StringVar(&chatModel, "model", "", "override the configured model for this session")
}

func runChat(cmd *cobra.Command, args []string) error {
	_, logger, client, err := setup()
	if err != nil {
		return err
	}
	if chatModel != "" {
		client = client.WithModel(chatModel)
	}

	resumeText, err := document.Extract(args[0])
	if err != nil {
		return err
	}

	messages := []llm.Message{
		{Role: "system", Content: "You are a resume and career advisor. The user's resume follows. " +
			"Answer their questions about it concretely.\n\n" + resumeText},
	}

	fmt.Printf("chatting with %s (type \"quit\" to exit)\n\n", client.Model())

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			continue
		}
		if input == "quit" || input == "exit" {
			break
		}

		messages = append(messages, llm.Message{Role: "user", Content: input})
		reply, err := client.Chat(cmd.Context(), messages)
		if err != nil {
			logger.Error("chat turn failed", "error", err)
			fmt.Println("backend error, try again (or run tailorcv check)")
			messages = messages[:len(messages)-1]
			continue
		}
		messages = append(messages, llm.Message{Role: "assistant", Content: reply})
		fmt.Println("\n" + reply + "\n")
	}
	return scanner.Err()
}
