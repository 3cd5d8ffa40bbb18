package commands

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/stockpulse/backend/internal/scheduler"
	"github.com/stockpulse/backend/internal/scheduler/jobs"
)

// schedulerCmd represents the scheduler command
var schedulerCmd = &cobra.Command{
	Use:   "scheduler",
	Short: "Run the scrape and rescrape jobs on a schedule",
	Long: `Starts the background scheduler:

  scrape    - five minutes past every hour
  rescrape  - every 15 minutes

Example:
  go run ./cmd/pulse scheduler
  go run ./cmd/pulse scheduler --run-now`,
	RunE: runScheduler,
}

var schedulerRunNow bool

func init() {
	rootCmd.AddCommand(schedulerCmd)

	schedulerCmd.Flags().BoolVar(&schedulerRunNow, "run-now", false, "run all jobs once at startup")
}

func runScheduler(cmd *cobra.Command, args []string) error {
	d, err := newDeps()
	if err != nil {
		return err
	}
	defer d.Close()

	sched := scheduler.New(d.log)

	if err := sched.AddJob(jobs.NewScrapeJob(d.newScraper(), d.log)); err != nil {
		return err
	}
	if err := sched.AddJob(jobs.NewRescrapeJob(d.newRescraper(), d.log)); err != nil {
		return err
	}

	sched.Start()
	defer sched.Stop()

	if schedulerRunNow {
		for _, name := range sched.JobNames() {
			if err := sched.RunJob(name); err != nil {
				return err
			}
		}
	}

	fmt.Println("Scheduler running, press Ctrl+C to stop")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	return nil
}
