// Command tutorbook manages a book of tutors, tutees and their lessons.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/tutorbook/tutorbook/config"
	"github.com/tutorbook/tutorbook/internal/domain/person"
	"github.com/tutorbook/tutorbook/pkg/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a := &app{}
	err := newRootCmd(a).ExecuteContext(ctx)
	if cerr := a.close(); cerr != nil && err == nil {
		err = cerr
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "tutorbook",
		Short:         "Keep track of tutors, tutees and lessons",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := a.open(cmd.Context()); err != nil {
				return err
			}
			cmd.SetContext(logger.WithContext(cmd.Context(), a.log))
			return nil
		},
	}
	root.PersistentFlags().StringVarP(&a.flags.backend, "backend", "b", "",
		fmt.Sprintf("storage backend: %s, %s, %s or %s", config.BackendJSON, config.BackendSQLite, config.BackendPostgres, config.BackendRedis))
	root.PersistentFlags().StringVarP(&a.flags.dataPath, "data", "d", "", "data file for the json or sqlite backend")
	root.PersistentFlags().StringVar(&a.flags.logLevel, "log-level", "", "debug, info, warn or error")

	root.AddCommand(
		newCheckCmd(a),
		newListCmd(a),
		newShowCmd(a),
		newAddPersonCmd(a, "add-person", "Add a contact", person.RolePerson),
		newAddPersonCmd(a, "add-tutor", "Add a tutor", person.RoleTutor),
		newAddPersonCmd(a, "add-tutee", "Add a tutee", person.RoleTutee),
		newEditCmd(a),
		newDeleteCmd(a),
		newAddLessonCmd(a),
		newDeleteLessonCmd(a),
		newClashesCmd(a),
		newUndoCmd(a),
		newRedoCmd(a),
		newExportCmd(a),
		newWatchCmd(a),
		newShellCmd(a),
	)
	return root
}
