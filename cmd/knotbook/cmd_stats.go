package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func statsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show address book and wedding book statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger()
			store := newStorage(logger)

			mgr, err := loadModel(store, logger)
			if err != nil {
				return fmt.Errorf("stats: %w", err)
			}

			persons := mgr.AddressBook().Persons()
			weddings := mgr.WeddingBook().Weddings()

			tagged := 0
			for _, p := range persons {
				if len(p.Tags) > 0 {
					tagged++
				}
			}

			fmt.Printf("Contacts: %d (%d tagged)\n\n", len(persons), tagged)
			fmt.Printf("Weddings: %d\n", len(weddings))
			for _, w := range weddings {
				fmt.Printf("  %-24s %d participants\n", w.Name, w.Participants.Len())
			}
			return nil
		},
	}
}
