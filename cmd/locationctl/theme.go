package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

func newThemeCmd(configPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "theme",
		Short: "Show the saved light/dark mode",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd, *configPath)
			if err != nil {
				return err
			}
			defer s.Close()

			return printMode(cmd.OutOrStdout(), s.registry.Theme().DarkMode())
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "toggle",
		Short: "Switch between light and dark mode",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd, *configPath)
			if err != nil {
				return err
			}
			defer s.Close()

			dark, err := s.registry.Theme().Toggle()
			if err != nil {
				return err
			}
			return printMode(cmd.OutOrStdout(), dark)
		},
	})

	return cmd
}

func printMode(w io.Writer, dark bool) error {
	mode := "light"
	if dark {
		mode = "dark"
	}
	_, err := fmt.Fprintln(w, mode)
	return err
}
