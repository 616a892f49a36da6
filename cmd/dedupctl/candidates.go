package main

import (
	"io"
	"os"
	"strconv"

	"github.com/SscSPs/ledger_dedup/internal/apperrors"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List duplicate candidates by descending score",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		all, _ := cmd.Flags().GetBool("all")

		candidates, err := svc.Duplicates.ListCandidates(cmd.Context(), limit, !all)
		if err != nil {
			return err
		}
		return emit(os.Stdout, candidates, func(w io.Writer) { printCandidates(w, candidates) })
	},
}

var showCmd = &cobra.Command{
	Use:   "show <check-id>",
	Short: "Show a candidate with both transactions",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		checkID, err := parseCheckID(args[0])
		if err != nil {
			return err
		}

		detail, err := svc.Duplicates.GetCandidate(cmd.Context(), checkID)
		if err != nil {
			return err
		}
		return emit(os.Stdout, detail, func(w io.Writer) { printCandidateDetail(w, detail) })
	},
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Summarise decisions recorded in the check ledger",
	RunE: func(cmd *cobra.Command, args []string) error {
		stats, err := svc.Duplicates.Stats(cmd.Context())
		if err != nil {
			return err
		}
		return emit(os.Stdout, stats, func(w io.Writer) { printStats(w, stats) })
	},
}

func parseCheckID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.NewValidationError("check ID must be a positive integer, got " + strconv.Quote(raw))
	}
	return id, nil
}

func init() {
	listCmd.Flags().Int("limit", 0, "Maximum number of candidates (0 uses DEDUP_LIST_LIMIT)")
	listCmd.Flags().Bool("all", false, "Include decided candidates")
	rootCmd.AddCommand(listCmd, showCmd, statsCmd)
}
