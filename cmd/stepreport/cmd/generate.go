package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/MeKo-Tech/stepreport/internal/report"
)

// generateCmd represents the generate command.
var generateCmd = &cobra.Command{
	Use:   "generate <capture.json>",
	Short: "Generate a PDF report from a task capture JSON file",
	Long: `Generate a reviewable PDF report from a capture JSON file.

Screenshots referenced by the capture are searched in the images directory
(if given), next to the JSON file, in its images/ subfolder, and in the
configured fallback directories. Steps whose screenshot cannot be found are
rendered without an image.

Examples:
  stepreport generate capture.json
  stepreport generate capture.json -o report.pdf
  stepreport generate capture.json -i extracted-images/ --verify`,
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		jsonPath := args[0]
		if _, err := os.Stat(jsonPath); err != nil {
			return fmt.Errorf("input file %s does not exist", jsonPath)
		}

		cfg := GetConfig()

		imagesDir, _ := cmd.Flags().GetString("images")
		if imagesDir != "" {
			if _, err := os.Stat(imagesDir); err != nil {
				slog.Warn("images directory does not exist, ignoring", "dir", imagesDir)
				imagesDir = ""
			}
		}

		outputPath, _ := cmd.Flags().GetString("output")
		if outputPath == "" {
			outputPath = cfg.Report.Output
		}

		composer := report.New().
			WithOptimizer(cfg.Optimizer.Build()).
			WithFallbackDirs(cfg.Resolver.FallbackDirs)

		result, err := composer.Generate(jsonPath, outputPath, imagesDir)
		if err != nil {
			var inputErr *report.InputError
			if errors.As(err, &inputErr) {
				return fmt.Errorf("cannot read capture: %w", err)
			}
			return err
		}

		if verify, _ := cmd.Flags().GetBool("verify"); verify || cfg.Report.Verify {
			if err := report.VerifyFile(result); err != nil {
				return fmt.Errorf("generated report failed verification: %w", err)
			}
			slog.Debug("report verified", "output", result)
		}

		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "PDF report successfully created: %s\n", result)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(generateCmd)

	generateCmd.Flags().StringP("output", "o", "", "path for the output PDF (default: <app>_tasks_report.pdf in the current directory)")
	generateCmd.Flags().StringP("images", "i", "", "directory containing extracted screenshot files")
	generateCmd.Flags().Bool("verify", false, "validate the generated PDF after rendering")
	generateCmd.Flags().String("optimizer-profile", "", "optimizer profile (default, reduced)")

	_ = viper.BindPFlag("report.output", generateCmd.Flags().Lookup("output"))
	_ = viper.BindPFlag("report.verify", generateCmd.Flags().Lookup("verify"))
	_ = viper.BindPFlag("optimizer.profile", generateCmd.Flags().Lookup("optimizer-profile"))
}
