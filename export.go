package main

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
	"github.com/spf13/cobra"

	"github.com/kygo/wedding-site/utils"
)

var exportHeader = []string{
	"Name", "Email", "Status", "Party Size", "Dietary Restrictions", "Invite Code", "Submitted",
}

func exportRow(r Response) []string {
	status := r.AttendanceStatus
	if status == "" {
		status = "pending"
	}
	return []string{
		r.Name,
		r.Email,
		status,
		strconv.Itoa(r.PartySize),
		r.DietaryRestrictions,
		r.InviteCode,
		r.Created,
	}
}

func writeResponsesCSV(w *csv.Writer, responses []Response) error {
	if err := w.Write(exportHeader); err != nil {
		return err
	}
	for _, r := range responses {
		if err := w.Write(exportRow(r)); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// handleAdminExportRSVPs streams the full response list as a CSV
// download.
func handleAdminExportRSVPs(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(re *core.RequestEvent) error {
		responses, err := loadResponses(app)
		if err != nil {
			return utils.InternalErrorResponse(re, "Failed to load RSVP responses")
		}

		filename := fmt.Sprintf("rsvps-%s.csv", time.Now().Format("2006-01-02"))
		re.Response.Header().Set("Content-Type", "text/csv")
		re.Response.Header().Set("Content-Disposition", "attachment; filename="+filename)
		re.Response.WriteHeader(http.StatusOK)

		if err := writeResponsesCSV(csv.NewWriter(re.Response), responses); err != nil {
			return err
		}

		utils.LogFromRequest(app, re, utils.AuditEntry{
			Action:       "rsvp_export",
			ResourceType: utils.CollectionResponses,
		})
		return nil
	}
}

// registerExportCommand adds an export-rsvps command that writes the
// same CSV to a local file, for use without the admin UI.
func registerExportCommand(app *pocketbase.PocketBase) {
	var outPath string

	cmd := &cobra.Command{
		Use:   "export-rsvps",
		Short: "Export all RSVP responses to a CSV file",
		Run: func(cmd *cobra.Command, args []string) {
			responses, err := loadResponses(app)
			if err != nil {
				fmt.Fprintf(os.Stderr, "failed to load responses: %v\n", err)
				os.Exit(1)
			}

			if outPath == "" {
				outPath = fmt.Sprintf("rsvps-%s.csv", time.Now().Format("2006-01-02"))
			}
			f, err := os.Create(outPath)
			if err != nil {
				fmt.Fprintf(os.Stderr, "failed to create %s: %v\n", outPath, err)
				os.Exit(1)
			}
			defer f.Close()

			if err := writeResponsesCSV(csv.NewWriter(f), responses); err != nil {
				fmt.Fprintf(os.Stderr, "failed to write csv: %v\n", err)
				os.Exit(1)
			}
			fmt.Printf("exported %d responses to %s\n", len(responses), outPath)
		},
	}
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "output file path")

	app.RootCmd.AddCommand(cmd)
}
