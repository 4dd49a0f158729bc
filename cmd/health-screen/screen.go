package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/RahulAnswer/health-app/internal/config"
	"github.com/RahulAnswer/health-app/internal/domain/screening"
	"github.com/RahulAnswer/health-app/internal/platform/format"
	"github.com/RahulAnswer/health-app/pkg/labs"
)

// cliOptions are the flags shared by the offline commands.
type cliOptions struct {
	output    string
	modules   []string
	overrides string
	sets      []string
}

func (o *cliOptions) bindOutput(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&o.output, "output", "o", string(format.Table), "output format: table, markdown, json or yaml")
}

func newCLIService(modules []string) (*screening.Service, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	logger := newLogger(cfg, os.Stderr)
	if len(modules) == 0 {
		modules = cfg.ModuleIDs()
	}
	return screening.NewService(screening.DefaultRegistry(), modules, nil, logger)
}

func newScreenCmd() *cobra.Command {
	var opts cliOptions
	cmd := &cobra.Command{
		Use:   "screen [file|-]",
		Short: "Screen a lab report and print the consolidated result",
		Long: "Reads report text from a file, or from stdin when the argument is \"-\" or missing,\n" +
			"extracts the lab values, runs the selected modules and prints the report.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := format.ParseOutput(opts.output)
			if err != nil {
				return err
			}
			text, err := readInput(cmd, args)
			if err != nil {
				return err
			}
			overrides, err := loadOverrides(opts.overrides)
			if err != nil {
				return err
			}
			if err := applyAssignments(&overrides, opts.sets); err != nil {
				return err
			}
			svc, err := newCLIService(nil)
			if err != nil {
				return err
			}
			report, err := svc.Screen(context.Background(), screening.Request{
				Text:      text,
				Overrides: overrides,
				Modules:   opts.modules,
			})
			if err != nil {
				return err
			}
			return writeReport(cmd.OutOrStdout(), report, out)
		},
	}
	opts.bindOutput(cmd)
	cmd.Flags().StringSliceVarP(&opts.modules, "modules", "m", nil, "modules to run, in order (default from MODULES)")
	cmd.Flags().StringVar(&opts.overrides, "overrides", "", "YAML or JSON file with name, sex, age, labs and flags overrides")
	cmd.Flags().StringArrayVar(&opts.sets, "set", nil, "override one value, e.g. --set alt_ul=42 --set sex=F --set smoker=1")
	return cmd
}

func newExtractCmd() *cobra.Command {
	var opts cliOptions
	cmd := &cobra.Command{
		Use:   "extract [file|-]",
		Short: "Show the values extracted from a lab report",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := format.ParseOutput(opts.output)
			if err != nil {
				return err
			}
			text, err := readInput(cmd, args)
			if err != nil {
				return err
			}
			svc, err := newCLIService(nil)
			if err != nil {
				return err
			}
			view := svc.ExtractView(context.Background(), text)
			switch out {
			case format.Table, format.Markdown:
				return screening.WriteExtractionTable(cmd.OutOrStdout(), view, out == format.Markdown)
			}
			return format.Encode(cmd.OutOrStdout(), view, out)
		},
	}
	opts.bindOutput(cmd)
	return cmd
}

func newModulesCmd() *cobra.Command {
	var opts cliOptions
	cmd := &cobra.Command{
		Use:   "modules",
		Short: "List the screening modules",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := format.ParseOutput(opts.output)
			if err != nil {
				return err
			}
			svc, err := newCLIService(nil)
			if err != nil {
				return err
			}
			mods := svc.Catalogue()
			switch out {
			case format.Table, format.Markdown:
				tb := format.NewTable(out == format.Markdown)
				tb.Header("ID", "Title", "Enabled")
				for _, m := range mods {
					tb.Row(m.ID, m.Title, m.Enabled)
				}
				_, err := fmt.Fprintln(cmd.OutOrStdout(), tb.String())
				return err
			}
			return format.Encode(cmd.OutOrStdout(), map[string][]screening.ModuleInfo{"modules": mods}, out)
		},
	}
	opts.bindOutput(cmd)
	return cmd
}

func newPatternsCmd() *cobra.Command {
	var opts cliOptions
	cmd := &cobra.Command{
		Use:   "patterns",
		Short: "List the field extraction patterns in precedence order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := format.ParseOutput(opts.output)
			if err != nil {
				return err
			}
			svc, err := newCLIService(nil)
			if err != nil {
				return err
			}
			patterns := screening.Patterns(svc.Extractor().Registry())
			switch out {
			case format.Table, format.Markdown:
				tb := format.NewTable(out == format.Markdown)
				tb.Header("Key", "Kind", "Labels", "Unit")
				tb.Columns(format.Column{Number: 3, MaxWidth: 48})
				for _, p := range patterns {
					tb.Row(p.Key, p.Kind, strings.Join(p.Labels, ", "), p.Unit)
				}
				_, err := fmt.Fprintln(cmd.OutOrStdout(), tb.String())
				return err
			}
			return format.Encode(cmd.OutOrStdout(), map[string][]screening.PatternInfo{"patterns": patterns}, out)
		},
	}
	opts.bindOutput(cmd)
	return cmd
}

func writeReport(w io.Writer, r *screening.Report, out format.Output) error {
	switch out {
	case format.Table, format.Markdown:
		return r.WriteTable(w, out == format.Markdown)
	}
	return format.Encode(w, r, out)
}

// readInput returns the report text from the file argument or stdin.
func readInput(cmd *cobra.Command, args []string) (string, error) {
	var (
		b   []byte
		err error
	)
	if len(args) == 0 || args[0] == "-" {
		b, err = io.ReadAll(cmd.InOrStdin())
	} else {
		b, err = os.ReadFile(args[0])
	}
	if err != nil {
		return "", fmt.Errorf("read report: %w", err)
	}
	if strings.TrimSpace(string(b)) == "" {
		return "", fmt.Errorf("report text is empty")
	}
	return string(b), nil
}

// loadOverrides decodes an overrides file. JSON is accepted since it is
// valid YAML. Unknown top-level keys are rejected.
func loadOverrides(path string) (screening.Overrides, error) {
	var o screening.Overrides
	if path == "" {
		return o, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return o, fmt.Errorf("open overrides: %w", err)
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&o); err != nil && err != io.EOF {
		return o, fmt.Errorf("decode overrides %s: %w", path, err)
	}
	return o, nil
}

// applyAssignments folds --set key=value pairs into o. name, sex and age
// set demographics; flag keys set flags; anything else is a lab. Keys match
// the vocabulary ignoring case and are stored in its spelling.
func applyAssignments(o *screening.Overrides, sets []string) error {
	for _, s := range sets {
		key, val, ok := strings.Cut(s, "=")
		key = strings.TrimSpace(key)
		val = strings.TrimSpace(val)
		if !ok || key == "" || val == "" {
			return fmt.Errorf("--set %q: want key=value", s)
		}
		if known, found := labs.Lookup(key); found {
			key = known
		}
		switch strings.ToLower(key) {
		case "name":
			o.Name = &val
			continue
		case "sex":
			o.Sex = &val
			continue
		}
		n, err := strconv.ParseFloat(val, 64)
		if err != nil {
			return fmt.Errorf("--set %s: %q is not a number", key, val)
		}
		switch {
		case strings.EqualFold(key, "age"):
			o.Age = &n
		case screening.IsFlag(key):
			if o.Flags == nil {
				o.Flags = make(map[string]float64)
			}
			o.Flags[key] = n
		default:
			if o.Labs == nil {
				o.Labs = make(map[string]float64)
			}
			o.Labs[key] = n
		}
	}
	return nil
}
