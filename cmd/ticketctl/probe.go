package main

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/xentee/skinticket/internal/probe"
)

type probeFlags struct {
	url     string
	rounds  int
	workers int
	timeout time.Duration
}

func newProbeCmd(flags *rootFlags) *cobra.Command {
	pf := &probeFlags{}
	cmd := &cobra.Command{
		Use:   "probe [query]...",
		Short: "Send concurrent resolve requests to a running bot",
		Long: `Probe checks /healthz, then replays the queries against /resolve
with several workers and reports found, empty, rejected and failed
lookups. Without arguments a built-in query mix is used.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			report, err := probe.Run(cmd.Context(), probe.Config{
				BaseURL: pf.url,
				Queries: args,
				Rounds:  pf.rounds,
				Workers: pf.workers,
				Timeout: pf.timeout,
			}, flags.log.Named("probe"))
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if flags.json {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(report)
			}
			rows := make([][]string, len(report.Results))
			for i, r := range report.Results {
				rows[i] = []string{r.Query, string(r.Outcome), strconv.Itoa(r.Candidates), r.Top, r.Latency.Round(time.Millisecond).String()}
			}
			t := table.New().
				Border(lipgloss.NormalBorder()).
				StyleFunc(func(row, _ int) lipgloss.Style {
					if row == table.HeaderRow {
						return headerStyle
					}
					return cellStyle
				}).
				Headers("QUERY", "OUTCOME", "N", "TOP", "LATENCY").
				Rows(rows...)
			_, err = fmt.Fprintf(out, "%s\nsent %d: found %d, empty %d, rejected %d, failed %d; mean %s, slowest %s, took %s\n",
				t.Render(), report.Sent, report.Found, report.Empty, report.Rejected, report.Failed,
				report.Mean.Round(time.Millisecond), report.Slowest.Round(time.Millisecond), report.Duration.Round(time.Millisecond))
			return err
		},
	}
	cmd.Flags().StringVar(&pf.url, "url", "http://localhost:9080", "admin API base URL")
	cmd.Flags().IntVar(&pf.rounds, "rounds", 1, "times to replay the query list")
	cmd.Flags().IntVar(&pf.workers, "workers", probe.DefaultWorkers, "concurrent requests")
	cmd.Flags().DurationVar(&pf.timeout, "timeout", probe.DefaultTimeout, "per-request timeout")
	return cmd
}

func newStatsCmd(flags *rootFlags) *cobra.Command {
	var url string
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show a running bot's service snapshot",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := probe.NewClient(url, probe.DefaultTimeout).Stats(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if flags.json {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(s)
			}
			_, err = fmt.Fprintf(out, "started=%t uptime=%s sessions=%d queue=%d/%d workers=%d/%d seen=%d\n",
				s.Started, s.Uptime, s.ActiveSessions, s.QueueLength, s.QueueCapacity, s.ActiveWorkers, s.Workers, s.SeenIDs)
			return err
		},
	}
	cmd.Flags().StringVar(&url, "url", "http://localhost:9080", "admin API base URL")
	return cmd
}
