package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"studyaid-backend/internal/config"
	"studyaid-backend/internal/services"
)

func probeCmd() *cobra.Command {
	var backendMode string

	cmd := &cobra.Command{
		Use:   "probe",
		Short: "Report which generation capabilities are available",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := config.Load().BackendOptions()
			if backendMode != "" {
				opts.Mode = backendMode
			}
			backend, err := services.NewBackend(cmd.Context(), opts)
			if err != nil {
				return err
			}
			defer backend.Close()

			state := backend.Prober.Probe(cmd.Context())
			b, _ := json.MarshalIndent(map[string]interface{}{
				"backend":   backend.Dispatcher.Name(),
				"state":     state,
				"readiness": state.Readiness(),
				"message":   state.Message(),
			}, "", "  ")
			fmt.Fprintln(cmd.OutOrStdout(), string(b))
			return nil
		},
	}
	cmd.Flags().StringVar(&backendMode, "backend", "", "override BACKEND: server|device")
	return cmd
}

func formatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "formats",
		Short: "List the upload types forwarded to a backend",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			for _, mt := range services.AcceptedMimeTypes {
				fmt.Fprintln(cmd.OutOrStdout(), mt)
			}
		},
	}
}
