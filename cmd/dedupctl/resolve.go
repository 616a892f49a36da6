package main

import (
	"io"
	"os"

	"github.com/spf13/cobra"
)

var confirmCmd = &cobra.Command{
	Use:   "confirm <check-id> <duplicate|not_duplicate|skip>",
	Short: "Record a decision on a candidate",
	Long: `Record a decision on a candidate. "duplicate" also marks the transaction with
the higher ID as a duplicate of the other one, in the same database transaction.
"skip" leaves the candidate open for a later decision.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		checkID, err := parseCheckID(args[0])
		if err != nil {
			return err
		}

		outcome, err := svc.Duplicates.Confirm(cmd.Context(), checkID, args[1])
		if err != nil {
			return err
		}
		return emit(os.Stdout, outcome, func(w io.Writer) { printResolution(w, outcome) })
	},
}

var restoreCmd = &cobra.Command{
	Use:   "restore <transaction-id>",
	Short: "Return a transaction marked as duplicate to the totals",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		outcome, err := svc.Duplicates.Restore(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		return emit(os.Stdout, outcome, func(w io.Writer) { printRestore(w, outcome) })
	},
}

func init() {
	rootCmd.AddCommand(confirmCmd, restoreCmd)
}
