package viewer

import (
	"fmt"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"
)

// Run scans the clients directory and starts the interactive dashboard,
// blocking until the user quits.
func Run(clientsDir string, logger *slog.Logger) error {
	clients, err := ScanClients(clientsDir)
	if err != nil {
		return err
	}

	program := tea.NewProgram(New(clients, logger), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("viewer failed: %w", err)
	}
	return nil
}
