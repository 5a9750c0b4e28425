package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"studyaid-backend/internal/config"
	"studyaid-backend/internal/models"
	"studyaid-backend/internal/services"
)

func generateCmd() *cobra.Command {
	var text string
	var textFile string
	var backendMode string

	cmd := &cobra.Command{
		Use:   "generate <summaries|flashcards|quizzes> [files...]",
		Short: "Run one generation request and print the JSON result",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			t, ok := models.ParseContentType(args[0])
			if !ok {
				return fmt.Errorf("unknown type %q (want summaries, flashcards or quizzes)", args[0])
			}

			if textFile != "" {
				b, err := os.ReadFile(textFile)
				if err != nil {
					return fmt.Errorf("read text file: %w", err)
				}
				text = string(b)
			}

			uploads := make([]models.UploadedFile, 0, len(args)-1)
			for _, path := range args[1:] {
				raw, err := os.ReadFile(path)
				if err != nil {
					return fmt.Errorf("read %s: %w", path, err)
				}
				uploads = append(uploads, models.UploadedFile{Name: filepath.Base(path), Raw: raw})
			}

			cfg := config.Load()
			opts := cfg.BackendOptions()
			if backendMode != "" {
				opts.Mode = backendMode
			}
			backend, err := services.NewBackend(ctx, opts)
			if err != nil {
				return err
			}
			defer backend.Close()

			files, diags := services.EncodeAll(ctx, uploads)
			svc := services.NewGenerationService(backend.Dispatcher, services.NewFileExtractService(), nil, nil)
			result, err := svc.Generate(ctx, uuid.Nil, models.GenerationRequest{Type: t, Text: text, Files: files})
			if err != nil {
				return err
			}
			result.Diagnostics = append(diags, result.Diagnostics...)

			b, _ := json.MarshalIndent(result, "", "  ")
			fmt.Fprintln(cmd.OutOrStdout(), string(b))
			if result.Malformed() {
				return fmt.Errorf("%s", result.Error)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&text, "text", "t", "", "input text, e.g. \"Generate 8 flashcards about mitosis\"")
	cmd.Flags().StringVarP(&textFile, "text-file", "f", "", "read the input text from a file")
	cmd.Flags().StringVar(&backendMode, "backend", "", "override BACKEND: server|device")
	return cmd
}
