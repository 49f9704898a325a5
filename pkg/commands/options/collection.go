// Package options defines shared flag helpers for CLI commands.
package options

import (
	"github.com/spf13/cobra"

	"tableflip.dev/bizdesk/pkg/collection"
)

// CollectionOptions selects a collection and the fields to work with.
type CollectionOptions struct {
	Key    string
	Fields string
}

// AddCollectionArgs wires the collection flag on the provided command.
func AddCollectionArgs(cmd *cobra.Command, o *CollectionOptions, def string) {
	cmd.Flags().StringVarP(&o.Key, "collection", "c", def,
		"Collection key or alias, for example Clients, Employees or domains.")
	_ = cmd.RegisterFlagCompletionFunc("collection", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return CollectionKeys(), cobra.ShellCompDirectiveNoFileComp
	})
}

// AddFieldsArg registers the comma separated field list.
func AddFieldsArg(cmd *cobra.Command, o *CollectionOptions, usage string) {
	cmd.Flags().StringVarP(&o.Fields, "fields", "f", "", usage)
}

// FieldList splits Fields.
func (o *CollectionOptions) FieldList() []string {
	return collection.ParseFields(o.Fields)
}

// CollectionKeys lists the registered collection keys.
func CollectionKeys() []string {
	metas := collection.Known()
	keys := make([]string, 0, len(metas))
	for _, m := range metas {
		keys = append(keys, m.Key)
	}
	return keys
}
