package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	jmespath "github.com/jmespath-community/go-jmespath"
	"gopkg.in/yaml.v3"
)

const (
	formatTable = "table"
	formatJSON  = "json"
	formatYAML  = "yaml"
)

type outputOptions struct {
	Format string
	Query  string
}

func (o *outputOptions) validate() error {
	o.Format = strings.ToLower(strings.TrimSpace(o.Format))
	switch o.Format {
	case formatTable, formatJSON, formatYAML:
	default:
		return fmt.Errorf("%w: unknown output format %q (want table, json or yaml)", errUsage, o.Format)
	}
	if o.Query != "" {
		if _, err := jmespath.Compile(o.Query); err != nil {
			return fmt.Errorf("%w: invalid --query: %w", errUsage, err)
		}
		// A query result has no fixed shape, so it is never rendered as a table.
		if o.Format == formatTable {
			o.Format = formatJSON
		}
	}
	return nil
}

// render writes v in the selected format. table is used for the table format
// and receives a tabwriter that is flushed afterwards.
func (cc *commandContext) render(v any, table func(tw *tabwriter.Writer) error) error {
	if cc.Output.Format == formatTable || cc.Output.Format == "" {
		tw := tabwriter.NewWriter(cc.Stdout, 0, 0, 2, ' ', 0)
		if err := table(tw); err != nil {
			return err
		}
		return tw.Flush()
	}

	data, err := queryable(v, cc.Output.Query)
	if err != nil {
		return err
	}
	return encode(cc.Stdout, cc.Output.Format, data)
}

// queryable converts v to plain JSON values and applies query when set.
func queryable(v any, query string) (any, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode output: %w", err)
	}
	var data any
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("decode output: %w", err)
	}
	if query == "" {
		return data, nil
	}
	res, err := jmespath.Search(query, data)
	if err != nil {
		return nil, fmt.Errorf("apply query: %w", err)
	}
	return res, nil
}

func encode(w io.Writer, format string, data any) error {
	switch format {
	case formatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(data); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	default:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(data); err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
		return nil
	}
}

// message renders a one-line result such as a server confirmation.
func (cc *commandContext) message(msg string) error {
	return cc.render(map[string]string{"message": msg}, func(tw *tabwriter.Writer) error {
		return writeln(tw, msg)
	})
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
