package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ajitpratap0/knotbook/internal/model"
	"github.com/ajitpratap0/knotbook/internal/models"
)

func personCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "person",
		Short: "Manage contacts in the address book",
	}

	cmd.AddCommand(
		personAddCmd(),
		personEditCmd(),
		personDeleteCmd(),
		personListCmd(),
		personClearTagsCmd(),
	)

	return cmd
}

// identityFlags registers the flags that locate an existing person.
func identityFlags(cmd *cobra.Command, name, phone, email *string) {
	cmd.Flags().StringVar(name, "name", "", "full name")
	cmd.Flags().StringVar(phone, "phone", "", "phone number, digits only")
	cmd.Flags().StringVar(email, "email", "", "email address")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("phone")
	_ = cmd.MarkFlagRequired("email")
}

func parseTags(raw []string) ([]models.Tag, error) {
	var tags []models.Tag
	for _, r := range raw {
		t, err := models.NewTag(r)
		if err != nil {
			return nil, err
		}
		tags = append(tags, t)
	}
	return tags, nil
}

// findStoredPerson locates the book's value weakly equal to the identity triple.
func findStoredPerson(mgr *model.Manager, name, phone, email string) (models.Person, error) {
	probe := models.Person{Name: name, Phone: phone, Email: email}
	for _, p := range mgr.AddressBook().Persons() {
		if p.SameIdentity(probe) {
			return p, nil
		}
	}
	return models.Person{}, fmt.Errorf("no person named %q with phone %s and email %s", name, phone, email)
}

func personAddCmd() *cobra.Command {
	var name, phone, email, address, job string
	var rawTags []string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a contact",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger()
			store := newStorage(logger)

			mgr, err := loadModel(store, logger)
			if err != nil {
				return fmt.Errorf("person add: %w", err)
			}

			tags, err := parseTags(rawTags)
			if err != nil {
				return fmt.Errorf("person add: %w", err)
			}
			person := models.NewPerson(name, phone, email, address, job, tags)
			if err := person.Validate(); err != nil {
				return fmt.Errorf("person add: %w", err)
			}

			if err := mgr.AddPerson(person); err != nil {
				return fmt.Errorf("person add: %w", err)
			}
			if err := saveModel(store, mgr); err != nil {
				return fmt.Errorf("person add: %w", err)
			}

			fmt.Printf("Added %s\n", person)
			return nil
		},
	}

	identityFlags(cmd, &name, &phone, &email)
	cmd.Flags().StringVar(&address, "address", "", "postal address")
	cmd.Flags().StringVar(&job, "job", "", "occupation")
	cmd.Flags().StringArrayVar(&rawTags, "tag", nil, "tag name (repeatable)")

	return cmd
}

func personEditCmd() *cobra.Command {
	var name, phone, email string
	var newName, newPhone, newEmail, newAddress, newJob string
	var newTags []string

	cmd := &cobra.Command{
		Use:   "edit",
		Short: "Edit a contact, keeping wedding participant references in sync",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger()
			store := newStorage(logger)

			mgr, err := loadModel(store, logger)
			if err != nil {
				return fmt.Errorf("person edit: %w", err)
			}

			target, err := findStoredPerson(mgr, name, phone, email)
			if err != nil {
				return fmt.Errorf("person edit: %w", err)
			}

			edited := target
			if cmd.Flags().Changed("new-name") {
				edited.Name = newName
			}
			if cmd.Flags().Changed("new-phone") {
				edited.Phone = newPhone
			}
			if cmd.Flags().Changed("new-email") {
				edited.Email = newEmail
			}
			if cmd.Flags().Changed("new-address") {
				edited.Address = newAddress
			}
			if cmd.Flags().Changed("new-job") {
				edited.Job = newJob
			}
			if cmd.Flags().Changed("tag") {
				tags, tagErr := parseTags(newTags)
				if tagErr != nil {
					return fmt.Errorf("person edit: %w", tagErr)
				}
				edited = edited.WithTags(tags)
			}
			if err := edited.Validate(); err != nil {
				return fmt.Errorf("person edit: %w", err)
			}

			if err := mgr.SetPerson(target, edited); err != nil {
				return fmt.Errorf("person edit: %w", err)
			}
			// The old person value must not survive in any participant set,
			// and memberships for dropped tags must be severed, before the
			// person view refresh.
			mgr.SyncPersonEdit(target, edited)
			mgr.SyncPersonTagRemoval(edited, droppedTags(target, edited))
			if err := mgr.UpdateFilteredPersons(model.ShowAllPersons); err != nil {
				return fmt.Errorf("person edit: %w", err)
			}

			if err := saveModel(store, mgr); err != nil {
				return fmt.Errorf("person edit: %w", err)
			}

			fmt.Printf("Edited %s\n", edited)
			return nil
		},
	}

	identityFlags(cmd, &name, &phone, &email)
	cmd.Flags().StringVar(&newName, "new-name", "", "replacement name")
	cmd.Flags().StringVar(&newPhone, "new-phone", "", "replacement phone")
	cmd.Flags().StringVar(&newEmail, "new-email", "", "replacement email")
	cmd.Flags().StringVar(&newAddress, "new-address", "", "replacement address")
	cmd.Flags().StringVar(&newJob, "new-job", "", "replacement job")
	cmd.Flags().StringArrayVar(&newTags, "tag", nil, "replacement tag set (repeatable; replaces all tags)")

	return cmd
}

func personDeleteCmd() *cobra.Command {
	var name, phone, email string

	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete a contact and withdraw them from their weddings",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger()
			store := newStorage(logger)

			mgr, err := loadModel(store, logger)
			if err != nil {
				return fmt.Errorf("person delete: %w", err)
			}

			target, err := findStoredPerson(mgr, name, phone, email)
			if err != nil {
				return fmt.Errorf("person delete: %w", err)
			}

			// Sever every tag-derived membership before the person disappears
			// so no wedding keeps a reference to a deleted person.
			mgr.SyncPersonTagRemoval(target, target.Tags)
			if err := mgr.DeletePerson(target); err != nil {
				return fmt.Errorf("person delete: %w", err)
			}

			if err := saveModel(store, mgr); err != nil {
				return fmt.Errorf("person delete: %w", err)
			}

			fmt.Printf("Deleted %s\n", target.Name)
			return nil
		},
	}

	identityFlags(cmd, &name, &phone, &email)

	return cmd
}

func personListCmd() *cobra.Command {
	var nameKw, tagKw []string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List contacts, optionally filtered by name or tag keywords",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger()
			store := newStorage(logger)

			mgr, err := loadModel(store, logger)
			if err != nil {
				return fmt.Errorf("person list: %w", err)
			}

			pred := model.PersonPredicate(model.ShowAllPersons)
			switch {
			case len(nameKw) > 0:
				pred = model.NameContainsKeywords(nameKw)
			case len(tagKw) > 0:
				pred = model.TagContainsKeywords(tagKw)
			}
			if err := mgr.UpdateFilteredPersons(pred); err != nil {
				return fmt.Errorf("person list: %w", err)
			}

			persons := mgr.FilteredPersons().Items()
			if len(persons) == 0 {
				fmt.Println("No contacts found.")
				return nil
			}
			for i, p := range persons {
				fmt.Printf("%d. %s\n", i+1, p)
			}
			return nil
		},
	}

	cmd.Flags().StringArrayVar(&nameKw, "name", nil, "name keyword (repeatable)")
	cmd.Flags().StringArrayVar(&tagKw, "tag", nil, "tag keyword (repeatable)")

	return cmd
}

func personClearTagsCmd() *cobra.Command {
	var name, phone, email string

	cmd := &cobra.Command{
		Use:   "clear-tags",
		Short: "Remove all tags from a contact and withdraw them from the linked weddings",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger()
			store := newStorage(logger)

			mgr, err := loadModel(store, logger)
			if err != nil {
				return fmt.Errorf("person clear-tags: %w", err)
			}

			target, err := findStoredPerson(mgr, name, phone, email)
			if err != nil {
				return fmt.Errorf("person clear-tags: %w", err)
			}

			edited, err := mgr.ClearAllTags(target)
			if err != nil {
				return fmt.Errorf("person clear-tags: %w", err)
			}
			mgr.SyncPersonEdit(target, edited)

			if err := saveModel(store, mgr); err != nil {
				return fmt.Errorf("person clear-tags: %w", err)
			}

			fmt.Printf("Cleared tags from %s\n", edited.Name)
			return nil
		},
	}

	identityFlags(cmd, &name, &phone, &email)

	return cmd
}

// droppedTags returns the tags present on old but absent from edited.
func droppedTags(old, edited models.Person) []models.Tag {
	var out []models.Tag
	for _, t := range old.Tags {
		if !edited.HasTag(t) {
			out = append(out, t)
		}
	}
	return out
}
