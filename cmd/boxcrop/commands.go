package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/menta2k/boxcrop"
	"github.com/menta2k/boxcrop/pkg/validate"
)

func (c *cli) cropsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "crops <document>",
		Short: "Save one cropped image per box",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := c.loadDocument(args[0])
			if err != nil {
				return err
			}
			x, err := c.newExporter()
			if err != nil {
				return err
			}
			dir, err := x.DocumentExport().SaveCrops(doc, c.progress)
			if err != nil {
				return err
			}
			c.reportCrops(dir)
			return nil
		},
	}
}

func (c *cli) csvCommand() *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "csv <document>",
		Short: "Write the metadata of every box to a CSV file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := c.loadDocument(args[0])
			if err != nil {
				return err
			}
			x, err := c.newExporter()
			if err != nil {
				return err
			}
			path, err := x.DocumentExport().ExportCSV(doc, output)
			if err != nil {
				return err
			}
			c.logger.Info("Exported metadata", "path", path, "rows", doc.NItems())
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "CSV path (default: document path with .csv extension)")
	return cmd
}

func (c *cli) validateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <document>",
		Short: "Report boxes with missing or duplicated metadata",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := c.loadDocument(args[0])
			if err != nil {
				return err
			}
			x, err := c.newExporter()
			if err != nil {
				return err
			}
			problems := x.DocumentExport().ValidationProblems(doc)
			printProblems(cmd, problems)
			if len(problems) > 0 {
				return fmt.Errorf("%w: %d problems", boxcrop.ErrInvalidDocument, len(problems))
			}
			fmt.Fprintln(cmd.OutOrStdout(), "No problems found")
			return nil
		},
	}
}

func (c *cli) exportCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "export <document>",
		Short: "Validate, save crops and write the CSV file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := c.loadDocument(args[0])
			if err != nil {
				return err
			}
			x, err := c.newExporter()
			if err != nil {
				return err
			}
			result, err := x.Export(doc, c.progress)
			if errors.Is(err, boxcrop.ErrInvalidDocument) {
				printProblems(cmd, result.Problems)
			}
			if err != nil {
				return err
			}
			c.reportCrops(result.CropsDir)
			return nil
		},
	}
}

func printProblems(cmd *cobra.Command, problems []validate.Problem) {
	for _, p := range problems {
		fmt.Fprintln(cmd.OutOrStdout(), p)
	}
}
