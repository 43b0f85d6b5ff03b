package main

import (
	"fmt"
	"net/http"
	"os"
	"strconv"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

type ConsoleConfig struct {
	APIBaseURL string
	Timeout    time.Duration

	// Slot, Room and Player are sent when the session is created.
	Slot   int
	Room   string
	Player uint8
}

func main() {
	cfg := &ConsoleConfig{
		APIBaseURL: getEnv("API_BASE_URL", "http://localhost:8080"),
		Timeout:    30 * time.Second,
		Room:       os.Getenv("MW_ROOM"),
	}

	var err error
	if cfg.Slot, err = strconv.Atoi(getEnv("SAVE_SLOT", "0")); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid SAVE_SLOT: %v\n", err)
		os.Exit(1)
	}
	player, err := strconv.ParseUint(getEnv("MW_PLAYER", "0"), 10, 8)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid MW_PLAYER: %v\n", err)
		os.Exit(1)
	}
	cfg.Player = uint8(player)

	client := &http.Client{
		Timeout: cfg.Timeout,
	}

	if !testConnection(client, cfg.APIBaseURL) {
		fmt.Fprintf(os.Stderr, "Could not connect to API. Please ensure the API is running.\nTry: go run ./cmd/api\n")
		os.Exit(1)
	}

	p := tea.NewProgram(NewConsoleUI(cfg, client),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running program: %v\n", err)
		os.Exit(1)
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
