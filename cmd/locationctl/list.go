package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/benmeehan/location-base/internal/models"
	"github.com/spf13/cobra"
)

func newListCmd(configPath *string) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print every stored location",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd, *configPath)
			if err != nil {
				return err
			}
			defer s.Close()

			return printRecords(cmd.OutOrStdout(), s.registry.Recorder().Locations(), asJSON)
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print records as a JSON array")
	return cmd
}

func printRecords(w io.Writer, records []models.LocationRecord, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(records)
	}

	if len(records) == 0 {
		_, err := fmt.Fprintln(w, "No locations recorded yet.")
		return err
	}
	for _, r := range records {
		if _, err := fmt.Fprintf(w, "%s\n  %s\n", r.Title(), r.Description()); err != nil {
			return err
		}
	}
	return nil
}
