package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/SscSPs/ledger_dedup/internal/apperrors"
	"github.com/SscSPs/ledger_dedup/internal/core/domain"
	"github.com/fatih/color"
)

const dateLayout = "2006-01-02"

var (
	cyan   = color.New(color.FgCyan, color.Bold).SprintFunc()
	yellow = color.New(color.FgYellow).SprintFunc()
	green  = color.New(color.FgGreen).SprintFunc()
	red    = color.New(color.FgRed).SprintFunc()
	gray   = color.New(color.FgHiBlack).SprintFunc()
)

// emit prints v as JSON when --json is set, otherwise calls human.
func emit(w io.Writer, v any, human func(io.Writer)) error {
	if jsonOutput {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}
	human(w)
	return nil
}

// printError renders the error kind and message verbatim.
func printError(w io.Writer, err error) {
	kind := apperrors.Kind(err)
	fmt.Fprintf(w, "%s %s: %v\n", red("✗"), kind, err)
	if apperrors.IsRetryable(err) {
		fmt.Fprintf(w, "  %s\n", gray("Nothing was partially applied; the command can be retried."))
	}
}

func decisionColor(d domain.Decision) func(a ...interface{}) string {
	switch d {
	case domain.DecisionDuplicate:
		return red
	case domain.DecisionNotDuplicate:
		return green
	case domain.DecisionSkip:
		return gray
	default:
		return yellow
	}
}

func printDetectResult(w io.Writer, r *domain.DetectionResult) {
	fmt.Fprintf(w, "\n%s\n\n", cyan("=== Duplicate Detection ==="))
	fmt.Fprintf(w, "  Transactions scanned: %d\n", r.TransactionsScanned)
	fmt.Fprintf(w, "  Pairs compared:       %d\n", r.PairsCompared)
	fmt.Fprintf(w, "  Candidates found:     %s (%d new, %d already recorded)\n",
		green(fmt.Sprintf("%d", r.CandidatesFound)), r.NewCandidates, r.ExistingCandidates)

	if len(r.Candidates) > 0 {
		fmt.Fprintln(w)
		for _, c := range r.Candidates {
			fmt.Fprintf(w, "  #%-6d %.4f  %s / %s  %s\n",
				c.CheckID, c.Score, c.First, c.Second, decisionColor(c.Decision)(string(c.Decision)))
		}
	}
	fmt.Fprintln(w)
}

func briefLine(b domain.TransactionBrief) string {
	line := fmt.Sprintf("%s  %s  %12s  %s", b.TransactionID, b.Date.Format(dateLayout), b.Amount.StringFixed(2), b.Description)
	if b.Account != "" {
		line += "  " + gray("["+b.Account+"]")
	}
	if b.IsDuplicate {
		line += "  " + red("(duplicate)")
	}
	return line
}

func printCandidates(w io.Writer, candidates []domain.CandidateSummary) {
	fmt.Fprintf(w, "\n%s\n\n", cyan("=== Duplicate Candidates ==="))
	if len(candidates) == 0 {
		fmt.Fprintf(w, "  %s\n\n", gray("No candidates"))
		return
	}
	for _, c := range candidates {
		fmt.Fprintf(w, "  #%d  score %s  %s\n", c.CheckID, yellow(fmt.Sprintf("%.4f", c.Score)), decisionColor(c.Decision)(string(c.Decision)))
		fmt.Fprintf(w, "    keep: %s\n", briefLine(c.Transaction1))
		fmt.Fprintf(w, "    dup?: %s\n", briefLine(c.Transaction2))
	}
	fmt.Fprintf(w, "\n  Total: %d\n\n", len(candidates))
}

func printTransaction(w io.Writer, label string, t domain.Transaction) {
	fmt.Fprintf(w, "  %s %s\n", yellow(label), t.TransactionID)
	fmt.Fprintf(w, "    Date:        %s\n", t.Date.Format(dateLayout))
	fmt.Fprintf(w, "    Amount:      %s\n", t.Amount.StringFixed(2))
	fmt.Fprintf(w, "    Description: %s\n", t.Description)
	category := t.CategoryMajor
	if t.CategoryMinor != "" {
		category += " / " + t.CategoryMinor
	}
	fmt.Fprintf(w, "    Category:    %s\n", category)
	fmt.Fprintf(w, "    Account:     %s\n", t.Account)
	if t.Memo != "" {
		fmt.Fprintf(w, "    Memo:        %s\n", t.Memo)
	}
	if t.DuplicateOf != nil {
		fmt.Fprintf(w, "    %s\n", red("Marked duplicate of "+*t.DuplicateOf))
	}
}

func printCandidateDetail(w io.Writer, d *domain.CandidateDetail) {
	fmt.Fprintf(w, "\n%s\n\n", cyan(fmt.Sprintf("=== Candidate #%d ===", d.Check.CheckID)))
	fmt.Fprintf(w, "  Score:     %.4f\n", d.Check.Score)
	fmt.Fprintf(w, "  Decision:  %s\n", decisionColor(d.Check.Decision)(string(d.Check.Decision)))
	fmt.Fprintf(w, "  Detected:  %s\n", d.Check.DetectedAt.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(w, "  Apart:     %d days, %s\n", d.DaysApart, d.AmountDiff.StringFixed(2))
	fmt.Fprintln(w)
	printTransaction(w, "Keeper:", d.Transaction1)
	fmt.Fprintln(w)
	printTransaction(w, "Marked if duplicate:", d.Transaction2)
	fmt.Fprintln(w)
	if d.Decidable {
		fmt.Fprintf(w, "  Run 'dedupctl confirm %d <duplicate|not_duplicate|skip>' to decide\n\n", d.Check.CheckID)
	} else {
		fmt.Fprintf(w, "  %s\n\n", gray("Already decided"))
	}
}

func printStats(w io.Writer, s *domain.DuplicateStats) {
	fmt.Fprintf(w, "\n%s\n\n", cyan("=== Duplicate Ledger ==="))
	fmt.Fprintf(w, "  Total:            %d\n", s.Total)
	fmt.Fprintf(w, "  Marked duplicate: %s\n", red(fmt.Sprintf("%d", s.MarkedDuplicate)))
	fmt.Fprintf(w, "  Not duplicate:    %s\n", green(fmt.Sprintf("%d", s.NotDuplicate)))
	fmt.Fprintf(w, "  Skipped:          %s\n", gray(fmt.Sprintf("%d", s.Skipped)))
	fmt.Fprintf(w, "  Pending:          %s\n", yellow(fmt.Sprintf("%d", s.Pending)))
	fmt.Fprintf(w, "  Duplicate rate:   %.1f%%\n\n", s.Rate*100)
}

func printResolution(w io.Writer, o *domain.ResolutionOutcome) {
	msg := fmt.Sprintf("Check #%d recorded as %s", o.CheckID, o.Decision)
	fmt.Fprintf(w, "%s %s\n", green("✓"), msg)
	if o.AffectedTransactionID != nil {
		fmt.Fprintf(w, "  Transaction %s is now excluded from totals\n", *o.AffectedTransactionID)
	}
}

func printRestore(w io.Writer, o *domain.RestoreOutcome) {
	if !o.Restored {
		fmt.Fprintf(w, "%s Transaction %s was not marked as duplicate\n", gray("○"), o.TransactionID)
		return
	}
	var from strings.Builder
	if o.PreviousKeeper != nil {
		from.WriteString(" (was duplicate of " + *o.PreviousKeeper + ")")
	}
	fmt.Fprintf(w, "%s Transaction %s restored%s\n", green("✓"), o.TransactionID, from.String())
}
