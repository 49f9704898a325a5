package options

import (
	"encoding/json"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/tidwall/gjson"

	"tableflip.dev/bizdesk/pkg/record"
)

// RecordOptions carry the fields of a record being written.
type RecordOptions struct {
	Pairs []string
	JSON  string
	Merge bool
	// Strict enforces the collection's required fields.
	Strict bool
}

func AddRecordArgs(cmd *cobra.Command, o *RecordOptions) {
	cmd.Flags().StringArrayVarP(&o.Pairs, "set", "s", nil,
		`A field to write as name=value, repeatable. Example: --set "Client Name=Acme".`)
	cmd.Flags().StringVar(&o.JSON, "json", "",
		`The record as a JSON object; --set pairs are applied on top.`)
	cmd.Flags().BoolVar(&o.Merge, "merge", true,
		"Keep stored fields that are not given.")
	cmd.Flags().BoolVar(&o.Strict, "strict", true,
		"Require the collection's mandatory fields.")
}

// Record builds the record from --json then --set.
func (o *RecordOptions) Record() (record.Record, error) {
	r := record.Record{}
	if raw := strings.TrimSpace(o.JSON); raw != "" {
		if !gjson.Valid(raw) || !gjson.Parse(raw).IsObject() {
			return nil, errors.New("--json must be a JSON object")
		}
		if err := json.Unmarshal([]byte(raw), &r); err != nil {
			return nil, errors.Wrap(err, "--json")
		}
	}
	for _, p := range o.Pairs {
		name, value, ok := strings.Cut(p, "=")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, errors.Errorf("invalid --set %q, want name=value", p)
		}
		r[name] = value
	}
	if len(r) == 0 {
		return nil, errors.New("nothing to write, use --set or --json")
	}
	return r, nil
}
