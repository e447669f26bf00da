package cmd

import (
	"time"

	"github.com/oneconcern/gpmodel/pkg/model"
	"github.com/oneconcern/gpmodel/pkg/revision"
	"github.com/oneconcern/gpmodel/pkg/script"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// runCmd runs an edit script
var runCmd = &cobra.Command{
	Use:   "run <script.yaml>",
	Short: "Run an edit script",
	Long: `Run an edit script against a new feature model.

The collections described by the script are built first. Edits are then applied in order,
each edit being atomic: a failed edit leaves the model unchanged.

By default, the run stops at the first failed edit and the remaining edits are skipped.

Example:

	gpmodel run coastlines.yaml --guarded --output json
`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		var err error
		defer func(t0 time.Time) { cliUsage(t0, "run", err) }(time.Now())

		logger, err := newLogger()
		if err != nil {
			wrapFatalln("invalid log level", err)
			return
		}
		defer func() { _ = logger.Sync() }()
		revision.SetLogger(logger)
		initMetrics(logger)

		formatter, err := formatterFor(gpmodelFlags.root.output)
		if err != nil {
			wrapFatalln("invalid output", err)
			return
		}

		s, err := script.Load(appFs, args[0])
		if err != nil {
			wrapFatalln("cannot load script", err)
			return
		}

		m := model.New(
			model.Logger(logger),
			model.Metrics(gpmodelFlags.root.metrics.enabled),
		)
		report, err := s.Run(m, script.RunOptions{
			Guarded:         gpmodelFlags.run.guarded,
			ContinueOnError: gpmodelFlags.run.continueOnError,
			ReadOnly:        gpmodelFlags.run.readOnly,
			Logger:          logger,
		})
		if report != nil {
			if ferr := formatter.Format(cmd.OutOrStdout(), report); ferr != nil {
				wrapFatalln("cannot write report", ferr)
				return
			}
		}
		if err != nil {
			logger.Error("script failed", zap.String("script", args[0]), zap.Error(err))
			wrapFatalln("script failed", err)
			return
		}
	},
}

func init() {
	addGuardedFlag(runCmd)
	addContinueOnErrorFlag(runCmd)
	addReadOnlyFlag(runCmd)
	rootCmd.AddCommand(runCmd)
}
