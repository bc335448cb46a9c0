package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"scrapewatch/internal/doctor"
	"scrapewatch/internal/errors"
	"scrapewatch/internal/ui"
)

var doctorJSON bool

// DoctorOutput is the JSON form of a doctor run.
type DoctorOutput struct {
	Results []DoctorResult `json:"results"`
	Summary DoctorSummary  `json:"summary"`
}

// DoctorResult is one check outcome.
type DoctorResult struct {
	Name       string `json:"name"`
	Status     string `json:"status"`
	Message    string `json:"message"`
	Suggestion string `json:"suggestion,omitempty"`
}

// DoctorSummary counts outcomes by status.
type DoctorSummary struct {
	Pass     int  `json:"pass"`
	Warn     int  `json:"warn"`
	Fail     int  `json:"fail"`
	AllClear bool `json:"all_clear"`
}

// doctorCmd diagnoses the supervision environment.
var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Diagnose environment issues",
	Long: `Run every environment check and report the results.

Checks the working directory, worker output, tmux, the process table, and
the remote destination when one is configured.

Examples:
  scrapewatch doctor
  scrapewatch doctor --json
  scrapewatch doctor --remote scraperbox`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := buildApp()
		if err != nil {
			return err
		}

		results := doctor.RunAll(cmd.Context(), doctor.AllChecks(a.runner, a.cfg))
		counts := doctor.CountByStatus(results)

		if doctorJSON {
			out := DoctorOutput{
				Summary: DoctorSummary{
					Pass:     counts[doctor.StatusPass],
					Warn:     counts[doctor.StatusWarn],
					Fail:     counts[doctor.StatusFail],
					AllClear: !doctor.HasFailures(results),
				},
			}
			for _, r := range results {
				out.Results = append(out.Results, DoctorResult{
					Name:       r.Name,
					Status:     r.Status.String(),
					Message:    r.Message,
					Suggestion: r.Suggestion,
				})
			}
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			if err := enc.Encode(out); err != nil {
				return err
			}
		} else {
			for _, r := range results {
				symbol := ui.Paint(ui.ColorSuccess, ui.SymbolSuccess)
				switch r.Status {
				case doctor.StatusWarn:
					symbol = ui.Paint(ui.ColorWarning, ui.SymbolWarn)
				case doctor.StatusFail:
					symbol = ui.Paint(ui.ColorError, ui.SymbolFail)
				}
				fmt.Printf("%s %s: %s\n", symbol, r.Name, r.Message)
				if r.Suggestion != "" && r.Status != doctor.StatusPass {
					fmt.Printf("    %s\n", r.Suggestion)
				}
			}
			fmt.Printf("\n%d passed, %d warnings, %d failed\n",
				counts[doctor.StatusPass], counts[doctor.StatusWarn], counts[doctor.StatusFail])
		}

		if doctor.HasFailures(results) {
			return errors.New(errors.ErrConfig,
				"Some checks failed",
				"Fix the failures above and run doctor again")
		}
		return nil
	},
}

func init() {
	doctorCmd.Flags().BoolVar(&doctorJSON, "json", false, "output in JSON format")
	rootCmd.AddCommand(doctorCmd)
}
