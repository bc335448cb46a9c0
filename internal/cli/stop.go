package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"scrapewatch/internal/errors"
	"scrapewatch/internal/session"
	"scrapewatch/internal/ui"
)

var stopYes bool

// stopGrace is how long the worker gets to react to the interrupt before
// the session is killed.
const stopGrace = 2 * time.Second

// stopCmd stops the worker after an explicit confirmation.
var stopCmd = &cobra.Command{
	Use:   "stop",
	Short: "Stop the worker and kill its session",
	Long: `Interrupt the worker, give it a moment to wind down, then kill the
tmux session hosting it.

This is destructive and cannot be undone, so it asks for confirmation
unless --yes is passed.

Examples:
  scrapewatch stop
  scrapewatch stop --yes
  scrapewatch stop --remote scraperbox`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := buildApp()
		if err != nil {
			return err
		}
		ctx := cmd.Context()

		sess := session.New(a.runner, a.log)
		status, err := sess.Status(ctx, a.cfg.Session)
		if err != nil {
			return err
		}
		if !status.Exists {
			return errors.New(errors.ErrSession,
				"No session '"+a.cfg.Session+"' to stop",
				"The worker may have already exited; check with: scrapewatch status")
		}

		if !stopYes {
			if !term.IsTerminal(int(os.Stdin.Fd())) {
				return errors.New(errors.ErrSession,
					"Refusing to stop without confirmation",
					"Pass --yes when running non-interactively")
			}
			var proceed bool
			form := huh.NewForm(
				huh.NewGroup(
					huh.NewConfirm().
						Title(fmt.Sprintf("Stop the worker and kill session '%s'?", a.cfg.Session)).
						Value(&proceed),
				),
			)
			if err := form.Run(); err != nil {
				return errors.Wrap(err, "Confirmation prompt failed")
			}
			if !proceed {
				fmt.Println("aborted")
				return nil
			}
		}

		if err := sess.Interrupt(ctx, a.cfg.Session); err != nil {
			return err
		}
		time.Sleep(stopGrace)
		if err := sess.Kill(ctx, a.cfg.Session); err != nil {
			return err
		}

		fmt.Printf("%s session '%s' stopped\n", ui.SymbolSuccess, a.cfg.Session)
		return nil
	},
}

func init() {
	stopCmd.Flags().BoolVarP(&stopYes, "yes", "y", false, "skip the confirmation prompt")
	rootCmd.AddCommand(stopCmd)
}
