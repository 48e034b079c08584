// Package main provides the CLI entry point for sheetform-go.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/dustin/go-humanize"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/ukaji3/sheetform-go/internal/server"
	"github.com/ukaji3/sheetform-go/pkg/sheetform"
	"github.com/ukaji3/sheetform-go/pkg/sheetform/output"
)

const envPrefix = "SHEETFORM_"

var (
	decodeOutput   string
	encodeOutput   string
	formOutput     string
	pretty         bool
	mode           string
	sheetsDir      string
	formTitle      string
	maxUpload      string
	logLevel       string
	logJSON        bool
	addr           string
	allowedOrigins []string
)

var log = logrus.New()

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "sheetform",
		Short: "Convert spreadsheets to JSON, JSON to spreadsheets, and spreadsheets to HTML forms",
		Long: `sheetform-go converts Excel workbooks to JSON (with or without formatting),
rebuilds workbooks from that JSON, and renders workbooks as editable HTML forms.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := bindEnv(cmd.Flags()); err != nil {
				return err
			}
			return setupLogging()
		},
	}

	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().BoolVar(&logJSON, "log-json", false, "Emit logs as JSON")
	rootCmd.PersistentFlags().StringVar(&maxUpload, "max-upload", "32MB", "Maximum input size (e.g. 20MB)")

	rootCmd.AddCommand(newDecodeCmd(), newEncodeCmd(), newFormCmd(), newServeCmd())
	return rootCmd
}

func newDecodeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "decode [input.xlsx]",
		Short: "Convert a workbook to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  runDecode,
	}
	cmd.Flags().StringVarP(&decodeOutput, "output", "o", "", "Output file path (default: stdout)")
	cmd.Flags().BoolVar(&pretty, "pretty", false, "Pretty-print JSON output")
	cmd.Flags().StringVar(&mode, "mode", "simple", "Decode mode: simple, formatted")
	cmd.Flags().StringVar(&sheetsDir, "sheets-dir", "", "Directory for per-sheet output files")
	return cmd
}

func newEncodeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "encode [input.json]",
		Short: "Build a workbook from JSON (use - for stdin)",
		Args:  cobra.ExactArgs(1),
		RunE:  runEncode,
	}
	cmd.Flags().StringVarP(&encodeOutput, "output", "o", "converted_data.xlsx", "Output workbook path")
	return cmd
}

func newFormCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "form [input.xlsx]",
		Short: "Render a workbook as an HTML form",
		Args:  cobra.ExactArgs(1),
		RunE:  runForm,
	}
	cmd.Flags().StringVarP(&formOutput, "output", "o", "", "Output file path (default: stdout)")
	cmd.Flags().StringVar(&formTitle, "title", "", "Page title of the form")
	return cmd
}

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the conversions over HTTP",
		Args:  cobra.NoArgs,
		RunE:  runServe,
	}
	cmd.Flags().StringVar(&addr, "addr", ":8000", "Listen address")
	cmd.Flags().StringSliceVar(&allowedOrigins, "allowed-origin", []string{"http://localhost:3000"}, "CORS allowed origin (repeatable)")
	cmd.Flags().StringVar(&formTitle, "title", "", "Page title of rendered forms")
	return cmd
}

// bindEnv fills every flag not given on the command line from SHEETFORM_<FLAG_NAME>.
func bindEnv(fs *pflag.FlagSet) error {
	var err error
	fs.VisitAll(func(f *pflag.Flag) {
		if err != nil || f.Changed {
			return
		}
		name := envPrefix + strings.ToUpper(strings.ReplaceAll(f.Name, "-", "_"))
		if v, ok := os.LookupEnv(name); ok {
			if serr := fs.Set(f.Name, v); serr != nil {
				err = fmt.Errorf("invalid %s: %w", name, serr)
			}
		}
	})
	return err
}

func setupLogging() error {
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}
	log.SetLevel(level)
	log.SetOutput(os.Stderr)
	if logJSON {
		log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	return nil
}

func options() (sheetform.Options, error) {
	limit, err := humanize.ParseBytes(maxUpload)
	if err != nil {
		return sheetform.Options{}, fmt.Errorf("invalid max upload size %q: %w", maxUpload, err)
	}
	return sheetform.Options{
		Logger:        log,
		MaxUploadSize: int64(limit),
		FormTitle:     formTitle,
	}, nil
}

func readInput(path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(os.Stdin)
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", sheetform.ErrFileNotFound, path)
	}
	return data, err
}

// writeOutput writes data to path, or to stdout when path is empty.
func writeOutput(path string, data []byte) error {
	if path == "" {
		_, err := os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func runDecode(cmd *cobra.Command, args []string) error {
	inputPath := args[0]

	opts, err := options()
	if err != nil {
		return err
	}
	if opts.Mode, err = sheetform.ParseMode(mode); err != nil {
		return err
	}

	data, err := readInput(inputPath)
	if err != nil {
		return err
	}
	wb, err := sheetform.Decode(inputPath, data, opts)
	if err != nil {
		return fmt.Errorf("decode failed: %w", err)
	}

	jsonData, err := output.ToJSON(wb, pretty)
	if err != nil {
		return fmt.Errorf("serialization failed: %w", err)
	}
	if decodeOutput != "" || sheetsDir == "" {
		if err := writeOutput(decodeOutput, append(jsonData, '\n')); err != nil {
			return err
		}
	}

	if sheetsDir != "" {
		paths, err := output.WriteSheets(wb, sheetsDir, pretty)
		if err != nil {
			return fmt.Errorf("failed to write sheet files: %w", err)
		}
		log.WithField("files", len(paths)).Info("wrote sheet files to " + filepath.Clean(sheetsDir))
	}
	return nil
}

func runEncode(cmd *cobra.Command, args []string) error {
	opts, err := options()
	if err != nil {
		return err
	}
	payload, err := readInput(args[0])
	if err != nil {
		return err
	}

	res, err := sheetform.Encode(payload, opts)
	if err != nil {
		return fmt.Errorf("encode failed: %w", err)
	}
	for _, w := range res.Warnings {
		log.WithFields(logrus.Fields{
			"sheet":     w.Sheet,
			"cell":      w.Cell,
			"component": w.Component,
		}).Warn(w.Err)
	}
	if err := writeOutput(encodeOutput, res.Data); err != nil {
		return err
	}
	log.WithFields(logrus.Fields{
		"path":     encodeOutput,
		"size":     humanize.Bytes(uint64(len(res.Data))),
		"warnings": len(res.Warnings),
	}).Info("workbook written")
	return nil
}

func runForm(cmd *cobra.Command, args []string) error {
	inputPath := args[0]
	opts, err := options()
	if err != nil {
		return err
	}
	data, err := readInput(inputPath)
	if err != nil {
		return err
	}
	page, err := sheetform.RenderForm(inputPath, data, opts)
	if err != nil {
		return fmt.Errorf("render failed: %w", err)
	}
	return writeOutput(formOutput, []byte(page))
}

func runServe(cmd *cobra.Command, args []string) error {
	opts, err := options()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return server.Run(ctx, server.Config{
		Addr:           addr,
		AllowedOrigins: allowedOrigins,
		MaxUploadSize:  opts.MaxUploadSize,
		FormTitle:      opts.FormTitle,
		Logger:         log,
	})
}
