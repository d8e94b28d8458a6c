package cli

import (
	"fmt"
	"strconv"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	domainPred "github.com/turtacn/molsketch/internal/domain/prediction"
)

// NewPredictCmd submits a SMILES string, or a named example molecule, to
// the predictor.
func NewPredictCmd() *cobra.Command {
	var example string

	cmd := &cobra.Command{
		Use:   "predict [smiles]",
		Short: "Predict drug sensitivity for a SMILES string",
		Args:  cobra.MaximumNArgs(1),
		Example: "  molsketch predict CCO\n" +
			"  molsketch predict --example Aspirin --predictor http://localhost:5000",
		RunE: func(cmd *cobra.Command, args []string) error {
			cliCtx, err := GetCLIContext(cmd)
			if err != nil {
				return err
			}
			ctx, cancel := commandContext(cmd, cliCtx)
			defer cancel()

			var res *domainPred.Result
			if len(args) == 1 || example == "" {
				smiles := ""
				if len(args) == 1 {
					smiles = args[0]
				}
				res, err = cliCtx.Predictions.Predict(ctx, smiles)
			} else {
				res, err = cliCtx.Predictions.PredictExample(ctx, example)
			}
			if err != nil {
				return err
			}

			if cliCtx.OutputFormat == OutputJSON {
				return printJSON(cmd, res)
			}
			fmt.Fprint(cmd.OutOrStdout(), FormatTable(
				[]string{"FIELD", "VALUE"},
				[][]string{
					{"SMILES", res.SMILES},
					{"IC50", strconv.FormatFloat(res.IC50, 'f', 4, 64)},
					{"Sensitivity score", strconv.FormatFloat(res.SensitivityScore, 'f', 4, 64)},
					{"Category", res.SensitivityCategory},
				},
			))
			fmt.Fprintf(cmd.OutOrStdout(), "\nSensitivity: %s\n", colorLevel(res.Level))
			return nil
		},
	}

	cmd.Flags().StringVar(&example, "example", "", "predict a named example molecule (see 'molsketch examples')")
	return cmd
}

// NewExamplesCmd lists the example molecules.
func NewExamplesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "examples",
		Short: "List example molecules",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cliCtx, err := GetCLIContext(cmd)
			if err != nil {
				return err
			}
			examples := cliCtx.Predictions.Examples()
			if cliCtx.OutputFormat == OutputJSON {
				return printJSON(cmd, examples)
			}
			rows := make([][]string, 0, len(examples))
			for _, ex := range examples {
				rows = append(rows, []string{ex.Name, ex.Category, ex.SMILES})
			}
			fmt.Fprint(cmd.OutOrStdout(), FormatTable([]string{"NAME", "CATEGORY", "SMILES"}, rows))
			return nil
		},
	}
}

func colorLevel(level domainPred.Level) string {
	switch level {
	case domainPred.LevelHigh:
		return color.GreenString("HIGH")
	case domainPred.LevelModerate:
		return color.YellowString("MODERATE")
	case domainPred.LevelLow:
		return color.RedString("LOW")
	default:
		return string(level)
	}
}

//Personal.AI order the ending
