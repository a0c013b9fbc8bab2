package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	service "github.com/xentee/skinticket/internal/app"
	"github.com/xentee/skinticket/internal/config"
	"github.com/xentee/skinticket/internal/domain/prettify"
	"github.com/xentee/skinticket/internal/domain/types"
)

var headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
var cellStyle = lipgloss.NewStyle().Padding(0, 1)

func newResolveCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "resolve <query>",
		Short: "Resolve a query against the pricing site and rank the results",
		Long: `Resolve runs the same pipeline as the wizard's item search:
direct lookup, search fallback, extraction, cleanup and ranking.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			query := strings.TrimSpace(strings.Join(args, " "))

			cfg, err := config.Load(ctx)
			if err != nil {
				return err
			}
			if n := len([]rune(query)); n > cfg.MaxQueryLength {
				return fmt.Errorf("query has %d characters, at most %d allowed", n, cfg.MaxQueryLength)
			}

			log := flags.log
			resolver, err := service.NewResolverFromConfig(cfg, log)
			if err != nil {
				return err
			}
			svc := service.New(resolver, service.OptionsFromConfig(cfg, log)...)
			if err := svc.Start(ctx); err != nil {
				return err
			}
			defer svc.Stop()

			cands := svc.Search(ctx, query)
			return printResolve(cmd.OutOrStdout(), flags.json, types.ResolveResponse{
				Query:      query,
				Count:      len(cands),
				Candidates: types.FromCandidates(cands),
			})
		},
	}
}

func printResolve(w io.Writer, asJSON bool, resp types.ResolveResponse) error {
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(resp)
	}
	if resp.Count == 0 {
		_, err := fmt.Fprintf(w, "no items found for %q\n", resp.Query)
		return err
	}

	rows := make([][]string, len(resp.Candidates))
	for i, c := range resp.Candidates {
		rows[i] = []string{strconv.Itoa(c.Rank), c.Name, c.Category, c.MarketIdentifier}
	}
	t := table.New().
		Border(lipgloss.NormalBorder()).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}).
		Headers("#", "NAME", "CATEGORY", "MARKET ID").
		Rows(rows...)
	_, err := fmt.Fprintln(w, t.Render())
	return err
}

func newPrettifyCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "prettify <raw>...",
		Short: "Clean scraped item names the way the extractor does",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := make(map[string]string, len(args))
			for _, raw := range args {
				out[raw] = prettify.Prettify(raw)
			}
			if flags.json {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(out)
			}
			for _, raw := range args {
				if _, err := fmt.Fprintln(cmd.OutOrStdout(), out[raw]); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
