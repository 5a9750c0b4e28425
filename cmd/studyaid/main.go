package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	root := &cobra.Command{
		Use:   "studyaid",
		Short: "Generate summaries, flashcards and quizzes from notes and documents",
	}

	root.AddCommand(generateCmd(), probeCmd(), formatsCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
