// Command idfplayers drives the Île-de-France footballer dataset pipeline:
// collect the raw captures from the query endpoint, retry the missing
// départements, rebuild and analyze the dataset, report pipeline status,
// and upload the export to the dataset registry.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/parisfoot/idfplayers/internal/app"
	"github.com/parisfoot/idfplayers/internal/config"
	"github.com/parisfoot/idfplayers/internal/domain/model"
	"github.com/parisfoot/idfplayers/pkg/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}
}

// cli carries the state shared by every subcommand.
type cli struct {
	cfg *config.Config
	svc *app.Service
}

func newRootCmd() *cobra.Command {
	c := &cli{}

	root := &cobra.Command{
		Use:           "idfplayers",
		Short:         "Collect and publish the Île-de-France footballers dataset",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := logger.Init(); err != nil {
				return fmt.Errorf("initializing logging: %w", err)
			}
			cfg, err := config.Load(cmd.Context())
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}
			if err := logger.SetLevelString(cfg.LogLevel); err != nil {
				logger.Get().Warn(cmd.Context(), "invalid log_level; falling back to info",
					logger.String("log_level", cfg.LogLevel))
				_ = logger.SetLevelString("info")
			}
			c.cfg = cfg
			c.svc, err = app.New(cfg)
			return err
		},
	}

	root.AddCommand(
		newCollectCmd(c),
		newRetryCmd(c),
		newAnalyzeCmd(c),
		newStatusCmd(c),
		newUploadCmd(c),
	)
	return root
}

func newCollectCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "collect",
		Short: "Query every configured département and export the dataset",
		RunE: func(cmd *cobra.Command, _ []string) error {
			report, err := c.svc.Collect(cmd.Context())
			if err != nil {
				return err
			}
			printRun(cmd, report)
			return nil
		},
	}
}

func newRetryCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "retry",
		Short: "Re-query only the départements without a raw capture",
		RunE: func(cmd *cobra.Command, _ []string) error {
			report, err := c.svc.Retry(cmd.Context())
			if err != nil {
				return err
			}
			printRun(cmd, report)
			return nil
		},
	}
}

func newAnalyzeCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "analyze",
		Short: "Rebuild the dataset from the raw captures on disk",
		RunE: func(cmd *cobra.Command, _ []string) error {
			report, err := c.svc.Analyze(cmd.Context())
			if err != nil {
				return err
			}
			cmd.Println(report.Summary.Markdown())
			return nil
		},
	}
}

func newStatusCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show which départements are captured and how many players each holds",
		RunE: func(cmd *cobra.Command, _ []string) error {
			status, err := c.svc.Status(cmd.Context())
			if err != nil {
				return err
			}
			printStatus(cmd, status)
			return nil
		},
	}
}

func newUploadCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "upload",
		Short: "Push the export directory to the dataset registry",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := c.svc.Upload(cmd.Context()); err != nil {
				return err
			}
			cmd.Printf("uploaded %s to %s\n", c.cfg.ExportDir, c.cfg.HubRepo)
			return nil
		},
	}
}

func printRun(cmd *cobra.Command, report *app.RunReport) {
	cmd.Printf("run %s\n", report.RunID)
	cmd.Printf("  collected: %s\n", joinOrDash(report.Collected))
	cmd.Printf("  failed:    %s\n", joinOrDash(report.Failed))
	cmd.Printf("  players:   %d (%d dual nationals)\n", report.Summary.Total, report.Summary.Dual)
	if len(report.Summary.Missing) > 0 {
		cmd.Printf("  missing captures: %s (run `idfplayers retry`)\n",
			strings.Join(report.Summary.Missing, ", "))
	}
}

func printStatus(cmd *cobra.Command, status *app.StatusReport) {
	codes := make([]string, 0, len(status.ByDept))
	for code := range status.ByDept {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	for _, code := range codes {
		cmd.Printf("%s  %-22s %d players\n", code, model.DepartmentNames[code], status.ByDept[code])
	}
	cmd.Printf("total: %d players across %d captures\n", status.Total, len(status.Completed))
	if len(status.Missing) > 0 {
		cmd.Printf("missing: %s\n", strings.Join(status.Missing, ", "))
	} else {
		cmd.Println("all configured départements captured")
	}
}

func joinOrDash(items []string) string {
	if len(items) == 0 {
		return "-"
	}
	return strings.Join(items, ", ")
}
