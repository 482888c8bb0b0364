package main

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/tutorbook/tutorbook/internal/application/command"
	"github.com/tutorbook/tutorbook/internal/application/query"
	"github.com/tutorbook/tutorbook/internal/domain/addressbook"
	"github.com/tutorbook/tutorbook/internal/domain/person"
	"github.com/tutorbook/tutorbook/internal/infrastructure/persistence"
	"github.com/tutorbook/tutorbook/internal/infrastructure/persistence/jsonfile"
	"github.com/tutorbook/tutorbook/internal/infrastructure/persistence/sqlite"
)

// ══════════════════════════════════════════════════════════════════════════════
// READ COMMANDS
// ══════════════════════════════════════════════════════════════════════════════

func newCheckCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Load the address book and report whether it is valid",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			book := a.manager.AddressBook()
			fmt.Fprintf(cmd.OutOrStdout(), "ok: %d persons, %d lessons in %s\n",
				book.PersonCount(), book.LessonCount(), a.store.Location())
			return nil
		},
	}
}

func newListCmd(a *app) *cobra.Command {
	var q query.ListPersonsQuery
	var role string
	cmd := &cobra.Command{
		Use:   "list [KEYWORD...]",
		Short: "List people, optionally filtered",
		RunE: func(cmd *cobra.Command, args []string) error {
			q.Keywords = args
			q.Role = person.Role(role)
			res, err := query.NewListPersonsHandler(a.manager).Handle(cmd.Context(), q)
			if err != nil {
				return err
			}
			printPersons(cmd.OutOrStdout(), res.Persons)
			fmt.Fprintf(cmd.OutOrStdout(), "%d of %d persons listed\n", len(res.Persons), res.Total)
			return nil
		},
	}
	cmd.Flags().StringVarP(&q.Subject, "subject", "s", "", "only people listing this subject")
	cmd.Flags().StringVarP(&role, "role", "r", "", "only people of this role (person, tutor, tutee)")
	return cmd
}

func newShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show NAME",
		Short: "Show a person with their lessons and associates",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			card, err := query.NewGetPersonCardHandler(a.manager).Handle(cmd.Context(), query.GetPersonCardQuery{Name: args[0]})
			if err != nil {
				return err
			}
			printCard(cmd.OutOrStdout(), *card)
			return nil
		},
	}
}

func newClashesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "clashes",
		Short: "List people with overlapping lessons",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cards, err := query.NewClashesHandler(a.manager).Handle(cmd.Context())
			if err != nil {
				return err
			}
			if len(cards) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no clashes")
				return nil
			}
			for _, card := range cards {
				printClashes(cmd.OutOrStdout(), card)
			}
			return nil
		},
	}
}

// ══════════════════════════════════════════════════════════════════════════════
// WRITE COMMANDS
// ══════════════════════════════════════════════════════════════════════════════

// mutation runs fn and saves the book when it succeeds.
func mutation(a *app, fn func(cmd *cobra.Command, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		if err := fn(cmd, args); err != nil {
			return err
		}
		return a.save(cmd.Context())
	}
}

func newAddPersonCmd(a *app, use, short string, role person.Role) *cobra.Command {
	var in command.PersonInput
	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: mutation(a, func(cmd *cobra.Command, args []string) error {
			in.Role = role
			res, err := command.NewAddPersonHandler(a.manager).Handle(cmd.Context(), command.AddPersonCommand{Person: in})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "New person added: %s\n", res.Person)
			return nil
		}),
	}
	cmd.Flags().StringVarP(&in.Name, "name", "n", "", "name (required)")
	cmd.Flags().StringVarP(&in.Phone, "phone", "p", "", "phone number (required)")
	cmd.Flags().StringVarP(&in.Email, "email", "e", "", "email address (required)")
	cmd.Flags().StringVarP(&in.Address, "address", "a", "", "address (required)")
	cmd.Flags().StringArrayVarP(&in.Subjects, "subject", "s", nil, "subject, repeatable")
	for _, f := range []string{"name", "phone", "email", "address"} {
		_ = cmd.MarkFlagRequired(f)
	}
	if role == person.RoleTutee {
		cmd.Flags().StringVar(&in.Hours, "hours", "", "weekly hours (required)")
		_ = cmd.MarkFlagRequired("hours")
	}
	return cmd
}

func newEditCmd(a *app) *cobra.Command {
	var name, phone, email, address, hours string
	var subjects []string
	cmd := &cobra.Command{
		Use:   "edit NAME",
		Short: "Edit fields of a person",
		Args:  cobra.ExactArgs(1),
		RunE: mutation(a, func(cmd *cobra.Command, args []string) error {
			c := command.EditPersonCommand{Name: args[0]}
			flags := cmd.Flags()
			if flags.Changed("name") {
				c.NewName = &name
			}
			if flags.Changed("phone") {
				c.NewPhone = &phone
			}
			if flags.Changed("email") {
				c.NewEmail = &email
			}
			if flags.Changed("address") {
				c.NewAddress = &address
			}
			if flags.Changed("hours") {
				c.NewHours = &hours
			}
			if flags.Changed("subject") {
				c.NewSubjects = append([]string{}, subjects...)
			}
			res, err := command.NewEditPersonHandler(a.manager).Handle(cmd.Context(), c)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Edited person: %s\n", res.After)
			return nil
		}),
	}
	cmd.Flags().StringVarP(&name, "name", "n", "", "new name")
	cmd.Flags().StringVarP(&phone, "phone", "p", "", "new phone number")
	cmd.Flags().StringVarP(&email, "email", "e", "", "new email address")
	cmd.Flags().StringVarP(&address, "address", "a", "", "new address")
	cmd.Flags().StringVar(&hours, "hours", "", "new weekly hours (tutees only)")
	cmd.Flags().StringArrayVarP(&subjects, "subject", "s", nil, "replacement subject list, repeatable")
	return cmd
}

func newDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete NAME",
		Short: "Delete a person; lessons with nobody left are removed",
		Args:  cobra.ExactArgs(1),
		RunE: mutation(a, func(cmd *cobra.Command, args []string) error {
			res, err := command.NewDeletePersonHandler(a.manager).Handle(cmd.Context(), command.DeletePersonCommand{Name: args[0]})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted person: %s (%d lessons removed, %d updated)\n",
				res.Person.Name(), res.LessonsRemoved, res.LessonsUpdated)
			return nil
		}),
	}
}

func lessonFlags(cmd *cobra.Command, in *command.LessonInput) {
	cmd.Flags().StringVarP(&in.Subject, "subject", "s", "", "subject (required)")
	cmd.Flags().StringVar(&in.Day, "day", "", "day of week, e.g. MON (required)")
	cmd.Flags().StringVar(&in.Start, "start", "", "start time HH:MM (required)")
	cmd.Flags().StringVar(&in.End, "end", "", "end time HH:MM (required)")
	cmd.Flags().StringArrayVarP(&in.Participants, "with", "w", nil, "participant name, repeatable (required)")
	for _, f := range []string{"subject", "day", "start", "end", "with"} {
		_ = cmd.MarkFlagRequired(f)
	}
}

func newAddLessonCmd(a *app) *cobra.Command {
	var in command.LessonInput
	cmd := &cobra.Command{
		Use:   "add-lesson",
		Short: "Schedule a lesson between people in the book",
		Args:  cobra.NoArgs,
		RunE: mutation(a, func(cmd *cobra.Command, args []string) error {
			res, err := command.NewLessonHandler(a.manager).HandleAdd(cmd.Context(), command.AddLessonCommand{Lesson: in})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "New lesson added: %s\n", res.Lesson)
			return nil
		}),
	}
	lessonFlags(cmd, &in)
	return cmd
}

func newDeleteLessonCmd(a *app) *cobra.Command {
	var in command.LessonInput
	cmd := &cobra.Command{
		Use:   "delete-lesson",
		Short: "Remove a lesson",
		Args:  cobra.NoArgs,
		RunE: mutation(a, func(cmd *cobra.Command, args []string) error {
			res, err := command.NewLessonHandler(a.manager).HandleDelete(cmd.Context(), command.DeleteLessonCommand{Lesson: in})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted lesson: %s\n", res.Lesson)
			return nil
		}),
	}
	lessonFlags(cmd, &in)
	return cmd
}

func newUndoCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "undo",
		Short: "Undo the last change made in this session",
		Args:  cobra.NoArgs,
		RunE: mutation(a, func(cmd *cobra.Command, args []string) error {
			if err := command.NewHistoryHandler(a.manager).Undo(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Undo success!")
			return nil
		}),
	}
}

func newRedoCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "redo",
		Short: "Redo the last undone change",
		Args:  cobra.NoArgs,
		RunE: mutation(a, func(cmd *cobra.Command, args []string) error {
			if err := command.NewHistoryHandler(a.manager).Redo(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Redo success!")
			return nil
		}),
	}
}

// ══════════════════════════════════════════════════════════════════════════════
// WATCH
// ══════════════════════════════════════════════════════════════════════════════

func newWatchCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Print a summary whenever another process saves the address book",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w, ok := persistence.AsWatcher(a.store)
			if !ok {
				return fmt.Errorf("watch: backend %q does not announce changes", a.cfg.Storage.Backend)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "watching %s\n", a.store.Location())
			err := w.Watch(cmd.Context(), func(fingerprint string) {
				book, err := a.store.Load(cmd.Context())
				if err != nil {
					fmt.Fprintf(cmd.ErrOrStderr(), "reload failed: %v\n", err)
					return
				}
				a.manager.SetAddressBook(book)
				fmt.Fprintf(cmd.OutOrStdout(), "%.12s: %d persons, %d lessons\n",
					fingerprint, book.PersonCount(), book.LessonCount())
			})
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		},
	}
}

// ══════════════════════════════════════════════════════════════════════════════
// EXPORT
// ══════════════════════════════════════════════════════════════════════════════

func newExportCmd(a *app) *cobra.Command {
	var to string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Copy the address book to a JSON file or SQLite database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := exportBook(cmd.Context(), a.manager.AddressBook(), to); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "exported to %s\n", to)
			return nil
		},
	}
	cmd.Flags().StringVar(&to, "to", "", "destination; .db and .sqlite files use SQLite, anything else JSON (required)")
	_ = cmd.MarkFlagRequired("to")
	return cmd
}

func exportBook(ctx context.Context, book *addressbook.AddressBook, to string) error {
	if to == "" {
		return errors.New("export: destination is empty")
	}
	switch filepath.Ext(to) {
	case ".db", ".sqlite":
		db, err := sqlite.Open(ctx, to)
		if err != nil {
			return fmt.Errorf("export: %w", err)
		}
		store := sqlite.NewStore(db, to, nil)
		defer store.Close()
		return store.Save(ctx, book)
	default:
		return jsonfile.NewStore(to, nil).Save(ctx, book)
	}
}
