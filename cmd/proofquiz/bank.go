package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/proofquiz/internal/bank"
)

var bankCmd = &cobra.Command{
	Use:   "bank",
	Short: "Inspect and validate question banks",
}

var bankValidateCmd = &cobra.Command{
	Use:   "validate FILE...",
	Short: "Validate question bank files",
	Long: `Validate checks each file against the bank schema: every question has a
sentence, exactly two options and a correct index of 0 or 1.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		failed := 0
		for _, path := range args {
			questions, err := bank.Load(path)
			if err != nil {
				fmt.Fprintf(out, "invalid: %s (%v)\n", path, err)
				failed++
				continue
			}
			sets := bank.Partition(questions, bank.DefaultSetSize)
			fmt.Fprintf(out, "valid:   %s (%d questions, %d sets)\n", path, len(questions), len(sets))
		}
		if failed > 0 {
			return fmt.Errorf("%d bank file(s) failed validation", failed)
		}
		return nil
	},
}

var bankExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Print the configured bank as YAML or JSON",
	RunE: func(cmd *cobra.Command, args []string) error {
		format, _ := cmd.Flags().GetString("format")
		cfg, err := loadConfig(viper.GetViper())
		if err != nil {
			return err
		}
		questions, err := bank.Resolve(cfg.Quiz.Bank)
		if err != nil {
			return err
		}
		data, err := bank.Encode(questions, format)
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(data)
		return err
	},
}

func init() {
	bankExportCmd.Flags().String("format", "yaml", "output format: yaml or json")

	bankCmd.AddCommand(bankValidateCmd)
	bankCmd.AddCommand(bankExportCmd)
	rootCmd.AddCommand(bankCmd)
}
