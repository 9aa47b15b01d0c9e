package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/hnimtadd/tablegrid"
	"github.com/hnimtadd/tablegrid/logger"
	"github.com/hnimtadd/tablegrid/table"
	"github.com/hnimtadd/tablegrid/table/coordinate"
	"github.com/spf13/cobra"
)

type options struct {
	input  string
	output string
	format string
	pretty bool
	debug  bool
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	root := &cobra.Command{
		Use:   "tablegrid",
		Short: "Merge, split, insert and delete cells of an HTML table",
		Long: `tablegrid reads the first <table> of an HTML file ("-" for stdin),
or a JSON snapshot written by --format json, applies one edit and writes the
result as text, HTML or JSON.

Cells are addressed as row,col starting at 0,0.`,
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVar(&opts.input, "input-format", "html", "Input format: html, json")
	root.PersistentFlags().StringVarP(&opts.output, "output", "o", "", "Output file path (default: stdout)")
	root.PersistentFlags().StringVar(&opts.format, "format", "text", "Output format: text, html, json")
	root.PersistentFlags().BoolVar(&opts.pretty, "pretty", false, "Pretty-print JSON output")
	root.PersistentFlags().BoolVar(&opts.debug, "debug", false, "Log table mutations to stderr")

	root.AddCommand(
		renderCmd(opts),
		mergeCmd(opts),
		splitCmd(opts),
		insertColumnCmd(opts),
		deleteColumnCmd(opts),
		insertRowCmd(opts),
		deleteRowCmd(opts),
	)
	return root
}

// editCmd builds a command that loads the input, runs apply and writes the
// table.
func editCmd(opts *options, use, short string, apply func(*tablegrid.Editor) error) *cobra.Command {
	return &cobra.Command{
		Use:   use + " [input.html]",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := load(cmd, opts, args[0])
			if err != nil {
				return err
			}
			if apply != nil {
				if err := apply(e); err != nil {
					return err
				}
			}
			return write(cmd, opts, e)
		},
	}
}

func renderCmd(opts *options) *cobra.Command {
	return editCmd(opts, "render", "Print the table", nil)
}

func mergeCmd(opts *options) *cobra.Command {
	var from, to string
	cmd := editCmd(opts, "merge", "Merge the cells between two slots", func(e *tablegrid.Editor) error {
		if err := selectRange(e, from, to); err != nil {
			return err
		}
		_, err := e.MergeSelection()
		return err
	})
	cmd.Flags().StringVar(&from, "from", "", "First slot, row,col")
	cmd.Flags().StringVar(&to, "to", "", "Second slot, row,col (default: --from)")
	_ = cmd.MarkFlagRequired("from")
	return cmd
}

func splitCmd(opts *options) *cobra.Command {
	var from, to string
	cmd := editCmd(opts, "split", "Split every merged cell between two slots", func(e *tablegrid.Editor) error {
		if err := selectRange(e, from, to); err != nil {
			return err
		}
		_, err := e.SplitSelection()
		return err
	})
	cmd.Flags().StringVar(&from, "from", "", "First slot, row,col")
	cmd.Flags().StringVar(&to, "to", "", "Second slot, row,col (default: --from)")
	_ = cmd.MarkFlagRequired("from")
	return cmd
}

func insertColumnCmd(opts *options) *cobra.Command {
	var at string
	var after bool
	cmd := editCmd(opts, "insert-col", "Insert a column next to a cell", func(e *tablegrid.Editor) error {
		if err := selectRange(e, at, ""); err != nil {
			return err
		}
		if after {
			return e.InsertColumnAfter()
		}
		return e.InsertColumnBefore()
	})
	cmd.Flags().StringVar(&at, "at", "", "Slot, row,col")
	cmd.Flags().BoolVar(&after, "after", false, "Insert right of the cell instead of left")
	_ = cmd.MarkFlagRequired("at")
	return cmd
}

func deleteColumnCmd(opts *options) *cobra.Command {
	var from, to string
	cmd := editCmd(opts, "delete-col", "Delete the columns under a range of slots", func(e *tablegrid.Editor) error {
		if err := selectRange(e, from, to); err != nil {
			return err
		}
		_, err := e.DeleteSelectedColumns()
		return err
	})
	cmd.Flags().StringVar(&from, "from", "", "First slot, row,col")
	cmd.Flags().StringVar(&to, "to", "", "Second slot, row,col (default: --from)")
	_ = cmd.MarkFlagRequired("from")
	return cmd
}

func insertRowCmd(opts *options) *cobra.Command {
	var at string
	var below bool
	cmd := editCmd(opts, "insert-row", "Insert a row next to a cell", func(e *tablegrid.Editor) error {
		if err := selectRange(e, at, ""); err != nil {
			return err
		}
		if below {
			return e.InsertRowBelow()
		}
		return e.InsertRowAbove()
	})
	cmd.Flags().StringVar(&at, "at", "", "Slot, row,col")
	cmd.Flags().BoolVar(&below, "below", false, "Insert below the cell instead of above")
	_ = cmd.MarkFlagRequired("at")
	return cmd
}

func deleteRowCmd(opts *options) *cobra.Command {
	var from, to string
	cmd := editCmd(opts, "delete-row", "Delete the rows under a range of slots", func(e *tablegrid.Editor) error {
		if err := selectRange(e, from, to); err != nil {
			return err
		}
		_, err := e.DeleteSelectedRows()
		return err
	})
	cmd.Flags().StringVar(&from, "from", "", "First slot, row,col")
	cmd.Flags().StringVar(&to, "to", "", "Second slot, row,col (default: --from)")
	_ = cmd.MarkFlagRequired("from")
	return cmd
}

func selectRange(e *tablegrid.Editor, from, to string) error {
	a, err := parsePoint(from)
	if err != nil {
		return err
	}
	b := a
	if to != "" {
		if b, err = parsePoint(to); err != nil {
			return err
		}
	}
	return e.Select(a, b)
}

// parsePoint reads "row,col".
func parsePoint(s string) (coordinate.Point, error) {
	rowText, colText, ok := strings.Cut(s, ",")
	if !ok {
		return coordinate.Point{}, fmt.Errorf("invalid slot %q: want row,col", s)
	}
	r, err := strconv.Atoi(strings.TrimSpace(rowText))
	if err != nil {
		return coordinate.Point{}, fmt.Errorf("invalid row in %q: %w", s, err)
	}
	c, err := strconv.Atoi(strings.TrimSpace(colText))
	if err != nil {
		return coordinate.Point{}, fmt.Errorf("invalid column in %q: %w", s, err)
	}
	return coordinate.NewPoint(r, c), nil
}

func load(cmd *cobra.Command, opts *options, path string) (*tablegrid.Editor, error) {
	level := logger.WarnLevel
	if opts.debug {
		level = logger.DebugLevel
	}
	editorOpts := tablegrid.Options{
		Logger: logger.New(logger.Options{Buffer: cmd.ErrOrStderr(), Level: level}),
	}

	var in io.Reader = cmd.InOrStdin()
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("opening input: %w", err)
		}
		defer f.Close()
		in = f
	}

	var (
		e   *tablegrid.Editor
		err error
	)
	switch opts.input {
	case "html":
		e, err = tablegrid.LoadHTML(in, editorOpts)
	case "json":
		var s table.Snapshot
		if err = json.NewDecoder(in).Decode(&s); err == nil {
			e, err = tablegrid.LoadSnapshot(s, editorOpts)
		}
	default:
		return nil, fmt.Errorf("invalid input format: %s (must be html or json)", opts.input)
	}
	if err != nil {
		return nil, fmt.Errorf("loading table: %w", err)
	}
	return e, nil
}

func write(cmd *cobra.Command, opts *options, e *tablegrid.Editor) error {
	var buf bytes.Buffer
	switch opts.format {
	case "text":
		buf.WriteString(e.DumpString())
		buf.WriteString("\n")
	case "html":
		if err := e.WriteHTML(&buf); err != nil {
			return err
		}
		buf.WriteString("\n")
	case "json":
		enc := json.NewEncoder(&buf)
		if opts.pretty {
			enc.SetIndent("", "  ")
		}
		if err := enc.Encode(e.Table().Snapshot()); err != nil {
			return fmt.Errorf("serialization failed: %w", err)
		}
	default:
		return fmt.Errorf("invalid format: %s (must be text, html, or json)", opts.format)
	}

	if opts.output != "" {
		if err := os.WriteFile(opts.output, buf.Bytes(), 0644); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		return nil
	}
	_, err := cmd.OutOrStdout().Write(buf.Bytes())
	return err
}
