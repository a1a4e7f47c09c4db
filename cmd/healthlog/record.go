package main

import (
	"context"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"healthlog/internal/bootstrap"
	recorddto "healthlog/internal/modules/record/dto"
)

func newRecordCmd(opts *globalOptions) *cobra.Command {
	record := &cobra.Command{Use: "record", Short: "Add, list and remove daily records"}
	record.AddCommand(newRecordAddCmd(opts))
	record.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List records, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, opts, func(ctx context.Context, app *bootstrap.App) error {
				records, err := app.RecordCLI.ListRecords(ctx)
				if err != nil {
					return err
				}
				if len(records) == 0 {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no records")
					return nil
				}
				tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
				_, _ = fmt.Fprintln(tw, "DATE\tMEALS\tSLEEP\tSYMPTOMS")
				for _, r := range records {
					_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", r.Date, orDash(strings.Join(r.Meals, ",")), sleepLabel(r.SleepHours), orDash(strings.Join(r.Symptoms, ",")))
				}
				return tw.Flush()
			})
		},
	})
	record.AddCommand(&cobra.Command{
		Use:   "show <date>",
		Short: "Show one record and its active factors",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, opts, func(ctx context.Context, app *bootstrap.App) error {
				r, err := app.RecordCLI.GetRecord(ctx, args[0])
				if err != nil {
					return err
				}
				printRecord(cmd.OutOrStdout(), r)
				factors, err := app.AnalysisCLI.ActiveFactors(ctx, r.Date)
				if err != nil {
					return err
				}
				labels := make([]string, 0, len(factors.Factors))
				for _, f := range factors.Factors {
					labels = append(labels, f.Label)
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "active factors: %s\n", orDash(strings.Join(labels, ", ")))
				return nil
			})
		},
	})

	var today bool
	deleteCmd := &cobra.Command{
		Use:   "delete [date]",
		Short: "Delete the record for a date",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if today == (len(args) == 1) {
				return fmt.Errorf("give either a date or --today")
			}
			return withApp(cmd, opts, func(ctx context.Context, app *bootstrap.App) error {
				var (
					out recorddto.DeleteOutput
					err error
				)
				if today {
					out, err = app.RecordCLI.DeleteToday(ctx)
				} else {
					out, err = app.RecordCLI.DeleteRecord(ctx, args[0])
				}
				if err != nil {
					return err
				}
				if !out.Removed {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "no record for %s\n", out.Date)
					return nil
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", out.Date)
				return nil
			})
		},
	}
	deleteCmd.Flags().BoolVar(&today, "today", false, "delete today's record")
	record.AddCommand(deleteCmd)

	var yes bool
	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete every record",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !yes {
				return fmt.Errorf("refusing to clear without --yes")
			}
			return withApp(cmd, opts, func(ctx context.Context, app *bootstrap.App) error {
				out, err := app.RecordCLI.ClearRecords(ctx)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "cleared %d records\n", out.Removed)
				return nil
			})
		},
	}
	clearCmd.Flags().BoolVar(&yes, "yes", false, "confirm deletion of all records")
	record.AddCommand(clearCmd)
	return record
}

func newRecordAddCmd(opts *globalOptions) *cobra.Command {
	var in recorddto.RecordInput
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add or replace the record for a date",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, opts, func(ctx context.Context, app *bootstrap.App) error {
				out, err := app.RecordCLI.AddRecord(ctx, in)
				if err != nil {
					return err
				}
				verb := "added"
				if out.Replaced {
					verb = "replaced"
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s %s (%s)\n", verb, out.Record.Date, out.Record.ID)
				return nil
			})
		},
	}
	f := cmd.Flags()
	f.StringVar(&in.Date, "date", "", "record date YYYY-MM-DD (default today)")
	f.StringSliceVar(&in.Meals, "meals", nil, "meals taken: breakfast,lunch,dinner,snack")
	f.IntVar(&in.SleepHours, "sleep", 0, "hours slept (0 = not recorded)")
	f.StringVar(&in.Stress, "stress", "", "yes|no")
	f.StringVar(&in.Exercise, "exercise", "", "nothing|light|usually|hard")
	f.StringVar(&in.Bowel, "bowel", "", "yes|no")
	f.StringVar(&in.Commute, "commute", "", "train-walk|train-bus|car|holiday")
	f.StringVar(&in.WorkCount, "work-count", "", "0-1|2-3|4-5|5+|holiday")
	f.StringVar(&in.RelaxTime, "relax", "", "yes|no")
	f.StringVar(&in.FreelanceTime, "freelance", "", "yes|no")
	f.StringVar(&in.AHJ, "ahj", "", "peace|conflict|fear|forgive|love")
	f.StringSliceVar(&in.Symptoms, "symptoms", nil, "headache,fatigue,soreThroat,nasalCongestion,phlegm,stomachPain,eyeFatigue,other")
	return cmd
}

func newReindexCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "reindex",
		Short: "Rebuild the SQLite record index",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, opts, func(ctx context.Context, app *bootstrap.App) error {
				out, err := app.RecordCLI.Reindex(ctx)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "reindex complete: %d records\n", out.Indexed)
				return nil
			})
		},
	}
}

func newStatsCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show record counts from the index",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, opts, func(ctx context.Context, app *bootstrap.App) error {
				out, err := app.RecordCLI.Stats(ctx)
				if err != nil {
					return err
				}
				w := cmd.OutOrStdout()
				_, _ = fmt.Fprintf(w, "records: %d\n", out.Records)
				if out.Records > 0 {
					_, _ = fmt.Fprintf(w, "span: %s .. %s\n", out.FirstDate, out.LastDate)
				}
				for _, s := range out.Symptoms {
					_, _ = fmt.Fprintf(w, "%-16s %d days\n", s.Symptom, s.Days)
				}
				return nil
			})
		},
	}
}

func printRecord(w io.Writer, r recorddto.RecordOutput) {
	_, _ = fmt.Fprintf(w, "date: %s\nid: %s\n", r.Date, r.ID)
	_, _ = fmt.Fprintf(w, "meals: %s\nsleep: %s\n", orDash(strings.Join(r.Meals, ", ")), sleepLabel(r.SleepHours))
	_, _ = fmt.Fprintf(w, "stress: %s\nexercise: %s\nbowel: %s\ncommute: %s\nwork count: %s\n",
		orDash(r.Stress), orDash(r.Exercise), orDash(r.Bowel), orDash(r.Commute), orDash(r.WorkCount))
	_, _ = fmt.Fprintf(w, "relax time: %s\nfreelance time: %s\nahj: %s\n", orDash(r.RelaxTime), orDash(r.FreelanceTime), orDash(r.AHJ))
	_, _ = fmt.Fprintf(w, "symptoms: %s\n", orDash(strings.Join(r.Symptoms, ", ")))
}

func sleepLabel(hours int) string {
	if hours == 0 {
		return "-"
	}
	return fmt.Sprintf("%dh", hours)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
