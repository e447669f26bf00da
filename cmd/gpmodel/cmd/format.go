package cmd

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	jsoniter "github.com/json-iterator/go"
	"github.com/oneconcern/gpmodel/pkg/script"
	"gopkg.in/yaml.v2"
)

const (
	formatTable = "table"
	formatJSON  = "json"
	formatYAML  = "yaml"
)

// Formatter writes some data to w
type Formatter interface {
	Format(w io.Writer, data interface{}) error
}

// FormatterFunc is a function acting as a Formatter
type FormatterFunc func(w io.Writer, data interface{}) error

// Format data
func (f FormatterFunc) Format(w io.Writer, data interface{}) error {
	return f(w, data)
}

var formatters = map[string]Formatter{
	formatTable: FormatterFunc(reportTable),
	formatJSON: FormatterFunc(func(w io.Writer, data interface{}) error {
		enc := jsoniter.ConfigCompatibleWithStandardLibrary.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(data)
	}),
	formatYAML: FormatterFunc(func(w io.Writer, data interface{}) error {
		enc := yaml.NewEncoder(w)
		if err := enc.Encode(data); err != nil {
			return err
		}
		return enc.Close()
	}),
}

func formatterFor(name string) (Formatter, error) {
	f, ok := formatters[name]
	if !ok {
		known := make([]string, 0, len(formatters))
		for k := range formatters {
			known = append(known, k)
		}
		sort.Strings(known)
		return nil, fmt.Errorf("unknown output format %q, expected one of: %s", name, strings.Join(known, ", "))
	}
	return f, nil
}

func reportTable(w io.Writer, data interface{}) error {
	report := data.(*script.Report)
	table := uitable.New()
	table.MaxColWidth = 80
	table.Wrap = true

	table.AddRow("STEP", "OP", "TARGET", "CHANGES", "STATUS")
	for _, e := range report.Edits {
		table.AddRow(e.Step, e.Op, e.Target, changesString(e.Changes), statusString(e))
	}
	if _, err := fmt.Fprintln(w, table); err != nil {
		return err
	}

	if report.Changes != nil {
		fmt.Fprintln(w, color.HiBlackString("consolidated:"), changesString(*report.Changes))
	}
	fmt.Fprintln(w, color.HiBlackString("events:"), strconv.Itoa(report.Events))
	return nil
}

func statusString(e script.EditResult) string {
	switch e.Status {
	case script.StatusOK:
		return color.GreenString(string(e.Status))
	case script.StatusFailed:
		return color.RedString(string(e.Status)) + " " + color.HiBlackString(e.Error)
	default:
		return color.YellowString(string(e.Status))
	}
}

func changesString(c script.Changes) string {
	parts := make([]string, 0, len(c.Added)+len(c.Deleted)+len(c.Updated))
	for _, name := range c.Added {
		parts = append(parts, "+"+name)
	}
	for _, name := range c.Deleted {
		parts = append(parts, "-"+name)
	}
	for _, name := range c.Updated {
		parts = append(parts, "~"+name)
	}
	if len(parts) == 0 {
		return "-"
	}
	return strings.Join(parts, " ")
}
