package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	appSketch "github.com/turtacn/molsketch/internal/application/sketch"
	"github.com/turtacn/molsketch/pkg/errors"
)

// NotationResult is the output of the notation command.
type NotationResult struct {
	Source string `json:"source"`
	SMILES string `json:"smiles"`
	Atoms  int    `json:"atoms"`
	Bonds  int    `json:"bonds"`
}

// NewNotationCmd converts a saved molecule document to SMILES.  The
// document is read from the named file, or from stdin for "-" or no
// argument.
func NewNotationCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "notation [file|-]",
		Short: "Print the SMILES notation of a saved molecule document",
		Args:  cobra.MaximumNArgs(1),
		Example: "  molsketch notation molecule.json\n" +
			"  cat molecule.json | molsketch notation -o json",
		RunE: func(cmd *cobra.Command, args []string) error {
			cliCtx, err := GetCLIContext(cmd)
			if err != nil {
				return err
			}

			source := "-"
			if len(args) == 1 {
				source = args[0]
			}
			data, err := readSource(cmd, source)
			if err != nil {
				return err
			}

			doc, err := appSketch.DecodeDocument(data)
			if err != nil {
				return err
			}
			res := NotationResult{
				Source: source,
				SMILES: doc.Notation(),
				Atoms:  len(doc.Nodes),
				Bonds:  len(doc.Links),
			}
			cliCtx.Logger.Debug("Notation generated")

			if cliCtx.OutputFormat == OutputJSON {
				return printJSON(cmd, res)
			}
			fmt.Fprintln(cmd.OutOrStdout(), res.SMILES)
			return nil
		},
	}
}

func readSource(cmd *cobra.Command, source string) ([]byte, error) {
	if source == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeBadRequest, "failed to read stdin")
		}
		return data, nil
	}
	data, err := os.ReadFile(source)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeNotFound, "failed to read document").WithDetail("path=" + source)
	}
	return data, nil
}

//Personal.AI order the ending
