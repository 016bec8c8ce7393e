// Package cmd - render command
package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"quote-report/core/catalog"
	"quote-report/core/engine"
	"quote-report/core/input"
	"quote-report/core/output"
	"quote-report/core/ui"
	"quote-report/internal/config"
	"quote-report/internal/logging"
)

var (
	requestFile  string
	requestType  string
	outputFormat string
	outputFile   string
	priceUnit    string
	noColor      bool
)

// renderCmd represents the render command
var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render a quotation from a request file",
	Long: `Read a quotation request and write the categorized report.

The request is JSON or YAML; the format follows the file extension
unless --input-format is given. Use "-" to read standard input.

Examples:
  quote render -f request.json
  quote render -f request.yaml --format csv -o quote.csv
  cat request.json | quote render -f - --price-unit million`,
	Args: cobra.NoArgs,
	RunE: runRender,
}

func init() {
	renderCmd.Flags().StringVarP(&requestFile, "file", "f", "", "request file, or - for stdin")
	renderCmd.Flags().StringVar(&requestType, "input-format", "", "request format (json, yaml)")
	renderCmd.Flags().StringVar(&outputFormat, "format", "", "output format (table, json, csv)")
	renderCmd.Flags().StringVarP(&outputFile, "output", "o", "", "write the report to a file")
	renderCmd.Flags().StringVar(&priceUnit, "price-unit", "", "token price unit (thousand, million)")
	renderCmd.Flags().BoolVar(&noColor, "no-color", false, "disable colors")
	renderCmd.MarkFlagRequired("file")
}

func runRender(cmd *cobra.Command, args []string) error {
	cfg := config.Get()

	req, err := readRequest(cmd.InOrStdin())
	if err != nil {
		return err
	}
	if priceUnit != "" {
		req.PriceUnit = priceUnit
		if err := req.Validate(); err != nil {
			return err
		}
	}

	cat, err := catalog.Load()
	if err != nil {
		return err
	}
	eng := engine.NewEngine(cat, engine.EngineConfigFrom(cfg), logging.Named("engine"))
	r, err := eng.Generate(context.Background(), req)
	if err != nil {
		return err
	}

	format := outputFormat
	if format == "" {
		format = cfg.Output.DefaultFormat
	}
	plain := noColor || cfg.Output.NoColor || outputFile != ""
	formatter, err := output.DefaultRegistry(plain, verbosity()).Get(format)
	if err != nil {
		return err
	}

	var w io.Writer = cmd.OutOrStdout()
	if outputFile != "" {
		f, err := os.Create(outputFile)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		w = f
	}
	if err := formatter.Render(w, r); err != nil {
		return err
	}

	logging.Info("quotation rendered",
		zap.String("format", format),
		zap.String("source", req.Source.Type.String()),
		zap.Int("sections", len(r.Sections)))
	if outputFile != "" {
		ui.NewWriter(cmd.ErrOrStderr(), noColor || cfg.Output.NoColor).Success("wrote %s", outputFile)
	}
	return nil
}

func readRequest(stdin io.Reader) (*input.Request, error) {
	if requestFile != "-" && requestType == "" {
		return input.LoadFile(requestFile)
	}

	format := input.FormatJSON
	if requestType != "" {
		f, err := input.ParseFormat(requestType)
		if err != nil {
			return nil, err
		}
		format = f
	}

	var data []byte
	var err error
	source := input.SourceFile
	if requestFile == "-" {
		data, err = io.ReadAll(stdin)
		source = input.SourceStdin
	} else {
		data, err = os.ReadFile(requestFile)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read request: %w", err)
	}

	req, err := input.Decode(data, format)
	if err != nil {
		return nil, err
	}
	req.Source.Type = source
	req.Source.Path = requestFile
	return req, nil
}
