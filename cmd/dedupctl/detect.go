package main

import (
	"io"
	"os"

	"github.com/SscSPs/ledger_dedup/internal/apperrors"
	"github.com/SscSPs/ledger_dedup/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var detectCmd = &cobra.Command{
	Use:   "detect",
	Short: "Find candidate duplicate pairs",
	Long: `Score every unresolved transaction pair within the tolerances and record the
ones at or above the minimum score. Pairs already recorded are left untouched,
so running detect again over the same data reports the same count.

Flags left unset fall back to the DEDUP_* configuration defaults.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		req, err := detectRequestFromFlags(cmd.Flags())
		if err != nil {
			return err
		}
		if err := req.Validate(); err != nil {
			return apperrors.NewValidationError(err.Error())
		}

		result, err := svc.Duplicates.Detect(cmd.Context(), req.ToOptions(cfg.Dedup.DetectionParams()))
		if err != nil {
			return err
		}
		return emit(os.Stdout, result, func(w io.Writer) { printDetectResult(w, result) })
	},
}

// detectRequestFromFlags sets only the fields whose flags were given.
func detectRequestFromFlags(flags *pflag.FlagSet) (dto.DetectRequest, error) {
	var req dto.DetectRequest

	if flags.Changed("date-tolerance") {
		days, err := flags.GetInt("date-tolerance")
		if err != nil {
			return req, err
		}
		req.DateToleranceDays = &days
	}
	for flag, dst := range map[string]**decimal.Decimal{
		"amount-abs": &req.AmountToleranceAbs,
		"amount-pct": &req.AmountTolerancePct,
	} {
		if !flags.Changed(flag) {
			continue
		}
		raw, err := flags.GetString(flag)
		if err != nil {
			return req, err
		}
		d, err := decimal.NewFromString(raw)
		if err != nil {
			return req, apperrors.NewValidationError("invalid --" + flag + " value " + raw)
		}
		*dst = &d
	}
	if flags.Changed("min-score") {
		score, err := flags.GetFloat64("min-score")
		if err != nil {
			return req, err
		}
		req.MinSimilarityScore = &score
	}
	ids, err := flags.GetStringSlice("ids")
	if err != nil {
		return req, err
	}
	req.TransactionIDs = ids
	return req, nil
}

func addDetectFlags(flags *pflag.FlagSet) {
	flags.Int("date-tolerance", 0, "Maximum days between two matching transactions")
	flags.String("amount-abs", "0", "Absolute amount tolerance")
	flags.String("amount-pct", "0", "Percent amount tolerance, used when --amount-abs is 0")
	flags.Float64("min-score", 0.5, "Minimum similarity score to record a candidate")
	flags.StringSlice("ids", nil, "Restrict detection to pairs within these transaction IDs")
}

func init() {
	addDetectFlags(detectCmd.Flags())
	rootCmd.AddCommand(detectCmd)
}
