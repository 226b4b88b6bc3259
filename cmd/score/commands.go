package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/draftasticwrestling/wrestling-boxscore-sub001/internal/adapters/source"
	"github.com/draftasticwrestling/wrestling-boxscore-sub001/internal/domain/aggregate"
	"github.com/draftasticwrestling/wrestling-boxscore-sub001/internal/domain/dedupe"
	"github.com/draftasticwrestling/wrestling-boxscore-sub001/internal/domain/model"
	"github.com/draftasticwrestling/wrestling-boxscore-sub001/internal/domain/participants"
)

var errNoSource = errors.New("one of --events or --db is required")

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "score",
		Short:         "Score a wrestling season for the fantasy league.",
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}
	root.PersistentFlags().String("events", "", "JSON events file")
	root.PersistentFlags().String("db", "", "SQLite database holding events")
	root.PersistentFlags().Bool("json", false, "Print JSON instead of a table")

	root.AddCommand(newSummaryCmd(), newLedgerCmd(), newTotalsCmd(), newWarningsCmd(), newImportCmd())
	return root
}

func newSummaryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Prints season totals per wrestler, highest first.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			res, err := scoreSeason(cmd)
			if err != nil {
				return err
			}
			asJSON, _ := cmd.Flags().GetBool("json")
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), res.Summary)
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
			fmt.Fprintln(w, "RANK\tWRESTLER\tPOINTS")
			rank := 0
			for i, e := range res.Summary {
				if i == 0 || e.TotalPoints != res.Summary[i-1].TotalPoints {
					rank = i + 1
				}
				fmt.Fprintf(w, "%d\t%s\t%d\n", rank, e.WrestlerName, e.TotalPoints)
			}
			return w.Flush()
		},
	}
}

func newLedgerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ledger",
		Short: "Prints one row per wrestler per match with the point breakdown.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			res, err := scoreSeason(cmd)
			if err != nil {
				return err
			}
			if save, _ := cmd.Flags().GetBool("save"); save {
				if err := saveLedger(cmd, res); err != nil {
					return err
				}
			}
			wrestler, _ := cmd.Flags().GetString("wrestler")
			records := res.Records
			if wrestler = strings.TrimSpace(wrestler); wrestler != "" {
				records = records[:0:0]
				for _, r := range res.Records {
					if participants.NamesMatch(r.WrestlerName, wrestler) {
						records = append(records, r)
					}
				}
			}

			asJSON, _ := cmd.Flags().GetBool("json")
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), records)
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "DATE\tEVENT\tORDER\tWRESTLER\tMATCH\tTITLE\tSPECIAL\tMAIN\tBR\tTOTAL\tBREAKDOWN")
			for _, r := range records {
				fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%d\t%d\t%d\t%d\t%d\t%d\t%s\n",
					r.EventDate, r.EventName, r.MatchOrder, r.WrestlerName,
					r.MatchPoints, r.TitlePoints, r.SpecialPoints, r.MainEventPoints, r.BattleRoyalPoints,
					r.TotalPoints, strings.Join(r.Breakdown, "; "))
			}
			return w.Flush()
		},
	}
	cmd.Flags().String("wrestler", "", "Only rows whose wrestler name matches")
	cmd.Flags().Bool("save", false, "Persist the full ledger into --db as a new run")
	return cmd
}

// saveLedger writes every record of res into the --db database under a
// fresh run id and reports the id on stderr.
func saveLedger(cmd *cobra.Command, res aggregate.Result) error {
	dbPath, _ := cmd.Flags().GetString("db")
	if dbPath == "" {
		return errors.New("--save needs --db")
	}
	db, err := source.Open(dbPath)
	if err != nil {
		return err
	}
	defer db.Close()
	runID := uuid.NewString()
	if err := db.SaveLedger(cmd.Context(), runID, res.Records); err != nil {
		return err
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "saved %d ledger records as run %s\n", len(res.Records), runID)
	return nil
}

func newTotalsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "totals",
		Short: "Prints the per-wrestler totals of the ledger persisted in --db.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			dbPath, _ := cmd.Flags().GetString("db")
			if dbPath == "" {
				return errors.New("totals needs --db")
			}
			db, err := source.Open(dbPath)
			if err != nil {
				return err
			}
			defer db.Close()
			runID, totals, err := db.LedgerTotals(cmd.Context())
			if err != nil {
				return err
			}

			asJSON, _ := cmd.Flags().GetBool("json")
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), struct {
					RunID  string               `json:"runId"`
					Totals []model.SummaryEntry `json:"totals"`
				}{runID, totals})
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
			fmt.Fprintf(w, "RUN\t%s\n", runID)
			fmt.Fprintln(w, "RANK\tWRESTLER\tPOINTS")
			rank := 0
			for i, e := range totals {
				if i == 0 || e.TotalPoints != totals[i-1].TotalPoints {
					rank = i + 1
				}
				fmt.Fprintf(w, "%d\t%s\t%d\n", rank, e.WrestlerName, e.TotalPoints)
			}
			return w.Flush()
		},
	}
}

func newWarningsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "warnings",
		Short: "Prints the diagnostics raised while loading and scoring.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			res, err := scoreSeason(cmd)
			if err != nil {
				return err
			}
			asJSON, _ := cmd.Flags().GetBool("json")
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), res.Warnings)
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "KIND\tEVENT\tMATCH\tMESSAGE")
			for _, wr := range res.Warnings {
				fmt.Fprintf(w, "%s\t%s\t%d\t%s\n", wr.Kind, wr.EventName, wr.MatchOrder, wr.Message)
			}
			return w.Flush()
		},
	}
}

func newImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import",
		Short: "Copies the events of --events into the --db database.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			eventsPath, _ := cmd.Flags().GetString("events")
			dbPath, _ := cmd.Flags().GetString("db")
			if eventsPath == "" || dbPath == "" {
				return errors.New("import needs both --events and --db")
			}
			ctx := cmd.Context()
			s, err := source.NewJSONFile(eventsPath).Load(ctx)
			if err != nil {
				return err
			}
			kept, duplicates := dedupe.DropDuplicates(ctx, s.Events)
			db, err := source.Open(dbPath)
			if err != nil {
				return err
			}
			defer db.Close()
			if err := db.SaveEvents(ctx, kept); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "imported %d events into %s (%d duplicates skipped)\n", len(kept), dbPath, len(duplicates))
			return nil
		},
	}
}

// scoreSeason loads the selected source and runs one aggregation pass. Load
// warnings and dropped duplicates are prepended to the scoring warnings.
func scoreSeason(cmd *cobra.Command) (aggregate.Result, error) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	eventsPath, _ := cmd.Flags().GetString("events")
	dbPath, _ := cmd.Flags().GetString("db")

	var s source.Season
	var err error
	switch {
	case eventsPath != "":
		s, err = source.NewJSONFile(eventsPath).Load(ctx)
	case dbPath != "":
		var db *source.DB
		if db, err = source.Open(dbPath); err != nil {
			return aggregate.Result{}, err
		}
		defer db.Close()
		s, err = db.Load(ctx)
	default:
		return aggregate.Result{}, errNoSource
	}
	if err != nil {
		return aggregate.Result{}, err
	}

	kept, duplicates := dedupe.DropDuplicates(ctx, s.Events)
	res := aggregate.ProcessAllMatches(ctx, kept)
	res.Warnings = append(append(s.Warnings, duplicates...), res.Warnings...)
	return res, nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
