package commands

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/moolen/logtriage/internal/config"
	"github.com/moolen/logtriage/internal/models"
	"github.com/moolen/logtriage/internal/pipeline"
	"github.com/moolen/logtriage/internal/render"
)

var (
	formatFlag string
	outputFlag string
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <logfile>",
	Short: "Analyze a log file and print an incident report",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig()
		HandleError(err, "invalid configuration")

		report, err := analyzeFile(cfg, args[0])
		HandleError(err, "analysis failed")

		HandleError(printReport(report), "rendering failed")

		if outputFlag != "" {
			err = os.WriteFile(outputFlag, []byte(render.Markdown(report)), 0o644)
			HandleError(err, "writing report")
			fmt.Printf("Report saved to %s\n", outputFlag)
		}
	},
}

func init() {
	analyzeCmd.Flags().StringVarP(&formatFlag, "format", "f", "terminal",
		"Output format (terminal, markdown, json)")
	analyzeCmd.Flags().StringVarP(&outputFlag, "output", "o", "",
		"Also write a markdown report to this file")
}

func analyzeFile(cfg *config.Config, path string) (*models.AnalysisReport, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %q: %w", path, err)
	}

	p, err := pipeline.New(cfg)
	if err != nil {
		return nil, err
	}
	return p.Run(cmdContext(), splitLines(string(data)))
}

func printReport(report *models.AnalysisReport) error {
	switch formatFlag {
	case "terminal":
		fmt.Print(render.Terminal(report))
	case "markdown":
		fmt.Print(render.Markdown(report))
	case "json":
		data, err := render.JSON(report)
		if err != nil {
			return err
		}
		fmt.Println(string(data))
	default:
		return fmt.Errorf("unknown format %q (terminal, markdown, json)", formatFlag)
	}
	return nil
}

// splitLines splits file content into lines. A trailing newline does
// not produce a phantom empty line.
func splitLines(content string) []string {
	content = strings.TrimSuffix(content, "\n")
	if content == "" {
		return nil
	}
	return strings.Split(content, "\n")
}
