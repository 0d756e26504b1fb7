package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "gator-probe",
		Short: "Persona-driven feedback on ideas, backed by an LLM",
		Long:  "Gator Probe assembles persona prompts from a config catalog and sends them to a language model.",
	}

	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newPersonasCmd())
	rootCmd.AddCommand(newPromptCmd())
	rootCmd.AddCommand(newVersionCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
