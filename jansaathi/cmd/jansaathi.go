// Command-line chat client for the JanSaathi assistant
package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"jansaathi/jansaathi/client"
	"jansaathi/jansaathi/utils/logging"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

func main() {
	logging.InitLogger()

	args := os.Args[1:]
	if len(args) < 1 || args[0] != "connect" {
		fmt.Println("JanSaathi CLI usage:")
		fmt.Println("  jansaathi connect   # Start a chat session with the assistant")
		os.Exit(1)
	}

	baseURL := os.Getenv("JANSAATHI_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8000"
	}
	token := os.Getenv("JANSAATHI_TOKEN")
	language := os.Getenv("JANSAATHI_LANGUAGE")

	sessionID := fmt.Sprintf("cli-%s", uuid.New().String()[:8])
	logging.AppLogger.Info("JanSaathi CLI session started",
		zap.String("url", baseURL),
		zap.String("session_id", sessionID),
	)

	c := client.New(baseURL, token, language)
	c.OnDelta = func(delta string) {
		fmt.Print(delta)
	}
	c.OnNotice = func(n client.Notice) {
		fmt.Printf("\n⚠️  %s\n", n.Message)
	}

	fmt.Println("\n🙏 Namaste! JanSaathi is ready.")
	fmt.Println("Session:", sessionID)
	fmt.Println()
	fmt.Println("Ask about government welfare schemes, eligibility, or how to apply.")
	fmt.Println("Type your question, 'new' for a fresh conversation, or 'exit' to quit.")
	fmt.Println()

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("jansaathi> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "exit" || line == "quit" {
			fmt.Println("👋 Goodbye!")
			break
		}
		if line == "new" {
			if err := c.Clear(); err == nil {
				fmt.Println("Started a new conversation.")
			}
			continue
		}
		if line == "" {
			continue
		}

		if err := c.Send(context.Background(), line); err != nil {
			logging.ErrorLogger.Error("chat turn failed", zap.Error(err))
			continue
		}
		fmt.Println()
	}
}
