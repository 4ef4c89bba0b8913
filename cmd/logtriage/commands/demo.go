package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/moolen/logtriage/internal/pipeline"
	"github.com/moolen/logtriage/internal/render"
)

// sampleLog is a canned database-outage cascade used by the demo.
const sampleLog = `2024-01-15 14:23:15 ERROR: Connection refused to database at db.example.com:5432
2024-01-15 14:23:16 ERROR: Failed to fetch user data from database
2024-01-15 14:23:17 ERROR: API request to /api/users failed with status 500
2024-01-15 14:23:18 ERROR: Connection refused to database at db.example.com:5432
2024-01-15 14:23:19 ERROR: Failed to fetch user data from database
2024-01-15 14:23:20 ERROR: API request to /api/products failed with status 500
2024-01-15 14:24:00 INFO: Database connection restored
2024-01-15 14:24:01 INFO: Service recovered, processing requests
`

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Analyze a built-in sample log to see the report format",
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig()
		HandleError(err, "invalid configuration")

		// The demo is deterministic: always rule-based, no AI call.
		cfg.AIEnabled = false

		p, err := pipeline.New(cfg)
		HandleError(err, "initializing pipeline")

		report, err := p.Run(cmdContext(), splitLines(sampleLog))
		HandleError(err, "analysis failed")

		fmt.Print(render.Terminal(report))
	},
}
