package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"autocfo/internal/viewer"
)

var (
	clientNameStyle = lipgloss.NewStyle().Bold(true)
	clientNoteStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#666666"))
)

func clientsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clients",
		Short: "List client folders with browsable ledgers",
		RunE: func(_ *cobra.Command, _ []string) error {
			clients, err := viewer.ScanClients(viper.GetString("clients.dir"))
			if err != nil {
				return err
			}
			if len(clients) == 0 {
				fmt.Fprintln(os.Stdout, clientNoteStyle.Render("No client folders found."))
				return nil
			}

			for _, client := range clients {
				note := "config.json"
				if !client.HasConfig {
					note = "bare data.csv"
				}
				fmt.Fprintf(os.Stdout, "%s  %s\n",
					clientNameStyle.Render(client.Name),
					clientNoteStyle.Render(note))
			}
			return nil
		},
	}
}
