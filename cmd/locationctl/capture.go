package main

import (
	"errors"
	"fmt"

	"github.com/benmeehan/location-base/internal/services"
	"github.com/spf13/cobra"
)

func newCaptureCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "capture",
		Short: "Record the current location and print every stored location",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd, *configPath)
			if err != nil {
				return err
			}
			defer s.Close()

			captured, records, err := s.registry.Recorder().CaptureRecord(cmd.Context())
			if errors.Is(err, services.ErrPermissionDenied) {
				return errors.New("permission denied to access location")
			}
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Captured %s\n\n", captured.Title())
			return printRecords(cmd.OutOrStdout(), records, false)
		},
	}
}
