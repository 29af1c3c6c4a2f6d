package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"

	admindomain "github.com/alcymedia/casting-caly/api/internal/admin/domain"
	mongodoc "github.com/alcymedia/casting-caly/api/internal/infrastructure/mongo"
)

func newSubmissionsCommand(opts *globalOptions) *cobra.Command {
	var (
		limit  int
		format string
	)
	cmd := &cobra.Command{
		Use:   "submissions",
		Short: "List submissions, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withSession(cmd, opts, func(ctx context.Context, s *session) error {
				subs, err := mongodoc.NewAdminSubmissionRepository(s.db, s.collections.Submissions).List(ctx)
				if err != nil {
					return err
				}
				stats := admindomain.ComputeStats(subs, time.Now(), s.location)
				if limit > 0 && len(subs) > limit {
					subs = subs[:limit]
				}
				return renderSubmissions(cmd.OutOrStdout(), subs, stats, s.location, format)
			})
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 0, "show at most this many rows (0 = all)")
	cmd.Flags().StringVar(&format, "format", "table", "output format: table, csv or markdown")
	return cmd
}

func renderSubmissions(w io.Writer, subs []admindomain.Submission, stats admindomain.Stats, loc *time.Location, format string) error {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"#", "Data", "Nome", "Idade", "Telefone", "Província", "Perfil", "Fotos", "CV"})
	for i, s := range subs {
		cv := "não"
		if s.HasCV() {
			cv = "sim"
		}
		t.AppendRow(table.Row{i + 1, admindomain.DisplayTime(s.CreatedAt.In(loc)), s.FullName, s.Age, s.Phone, s.Province, s.ProfileType, len(s.Photos), cv})
	}
	t.AppendFooter(table.Row{"", "Total", stats.Total, "", "Hoje", stats.Today})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 4, Align: text.AlignRight},
		{Number: 8, Align: text.AlignRight},
	})

	switch format {
	case "table":
		t.Render()
	case "csv":
		t.RenderCSV()
	case "markdown":
		t.RenderMarkdown()
	default:
		return fmt.Errorf("unknown format %q", format)
	}
	return nil
}
