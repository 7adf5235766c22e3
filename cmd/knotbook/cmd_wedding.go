package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ajitpratap0/knotbook/internal/model"
	"github.com/ajitpratap0/knotbook/internal/models"
)

func weddingCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "wedding",
		Short: "Manage weddings in the wedding book",
	}

	cmd.AddCommand(
		weddingAddCmd(),
		weddingEditCmd(),
		weddingDeleteCmd(),
		weddingListCmd(),
	)

	return cmd
}

// findStoredWedding locates the book's value with the given name.
func findStoredWedding(mgr *model.Manager, name string) (models.Wedding, error) {
	probe := models.Wedding{Name: name}
	for _, w := range mgr.WeddingBook().Weddings() {
		if w.SameIdentity(probe) {
			return w, nil
		}
	}
	return models.Wedding{}, fmt.Errorf("no wedding named %q", name)
}

func weddingAddCmd() *cobra.Command {
	var name, date, venue string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a wedding",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger()
			store := newStorage(logger)

			mgr, err := loadModel(store, logger)
			if err != nil {
				return fmt.Errorf("wedding add: %w", err)
			}

			wedding := models.NewWedding(name, date, venue)
			if err := wedding.Validate(); err != nil {
				return fmt.Errorf("wedding add: %w", err)
			}

			// AddWedding enrolls persons already tagged with this name.
			if err := mgr.AddWedding(wedding); err != nil {
				return fmt.Errorf("wedding add: %w", err)
			}
			if err := saveModel(store, mgr); err != nil {
				return fmt.Errorf("wedding add: %w", err)
			}

			fmt.Printf("Added %s (%d participants)\n", wedding, wedding.Participants.Len())
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "wedding name, also the linking tag text")
	cmd.Flags().StringVar(&date, "date", "", "date as "+models.DateLayout)
	cmd.Flags().StringVar(&venue, "venue", "", "venue")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func weddingEditCmd() *cobra.Command {
	var name, newDate, newVenue string

	cmd := &cobra.Command{
		Use:   "edit",
		Short: "Edit a wedding's date or venue",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger()
			store := newStorage(logger)

			mgr, err := loadModel(store, logger)
			if err != nil {
				return fmt.Errorf("wedding edit: %w", err)
			}

			target, err := findStoredWedding(mgr, name)
			if err != nil {
				return fmt.Errorf("wedding edit: %w", err)
			}

			edited := target
			if cmd.Flags().Changed("date") {
				edited.Date = newDate
			}
			if cmd.Flags().Changed("venue") {
				edited.Venue = newVenue
			}
			if err := edited.Validate(); err != nil {
				return fmt.Errorf("wedding edit: %w", err)
			}

			if err := mgr.SetWedding(target, edited); err != nil {
				return fmt.Errorf("wedding edit: %w", err)
			}
			if err := saveModel(store, mgr); err != nil {
				return fmt.Errorf("wedding edit: %w", err)
			}

			fmt.Printf("Edited %s\n", edited)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "wedding name")
	cmd.Flags().StringVar(&newDate, "date", "", "replacement date as "+models.DateLayout)
	cmd.Flags().StringVar(&newVenue, "venue", "", "replacement venue")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func weddingDeleteCmd() *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete a wedding",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger()
			store := newStorage(logger)

			mgr, err := loadModel(store, logger)
			if err != nil {
				return fmt.Errorf("wedding delete: %w", err)
			}

			target, err := findStoredWedding(mgr, name)
			if err != nil {
				return fmt.Errorf("wedding delete: %w", err)
			}

			if err := mgr.DeleteWedding(target); err != nil {
				return fmt.Errorf("wedding delete: %w", err)
			}
			if err := saveModel(store, mgr); err != nil {
				return fmt.Errorf("wedding delete: %w", err)
			}

			fmt.Printf("Deleted %s\n", target.Name)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "wedding name")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func weddingListCmd() *cobra.Command {
	var nameKw []string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List weddings and their participants, optionally filtered by name keywords",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger()
			store := newStorage(logger)

			mgr, err := loadModel(store, logger)
			if err != nil {
				return fmt.Errorf("wedding list: %w", err)
			}

			pred := model.WeddingPredicate(model.ShowAllWeddings)
			if len(nameKw) > 0 {
				pred = model.WeddingNameContainsKeywords(nameKw)
			}
			if err := mgr.UpdateFilteredWeddings(pred); err != nil {
				return fmt.Errorf("wedding list: %w", err)
			}

			weddings := mgr.FilteredWeddings().Items()
			if len(weddings) == 0 {
				fmt.Println("No weddings found.")
				return nil
			}
			for i, w := range weddings {
				fmt.Printf("%d. %s\n", i+1, w)
				for _, p := range w.Participants.People() {
					fmt.Printf("   - %s\n", p.Name)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringArrayVar(&nameKw, "name", nil, "wedding name keyword (repeatable)")

	return cmd
}
