package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jpatchlabs/jsonpatch"
)

func newDiffCmd() *cobra.Command {
	var invertible bool

	cmd := &cobra.Command{
		Use:   "diff <a.json> <b.json>",
		Short: "Print the JSON Patch sequence that transforms a into b",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := readValue(args[0])
			if err != nil {
				return err
			}
			b, err := readValue(args[1])
			if err != nil {
				return err
			}
			patch := jsonpatch.Compare(a, b, invertible)
			raw, err := json.Marshal(patch)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), string(raw))
			return err
		},
	}
	cmd.Flags().BoolVar(&invertible, "invertible", false, "prepend a test before every mutating step")
	return cmd
}

func newGetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "get <doc.json> <pointer>",
		Short: "Resolve a JSON Pointer against a document and print the value",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := readValue(args[0])
			if err != nil {
				return err
			}
			v, err := jsonpatch.GetValueByPointer(doc, args[1])
			if err != nil {
				return err
			}
			return printValue(cmd.OutOrStdout(), v)
		},
	}
	return cmd
}

func newValidateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <patch.json> [doc.json]",
		Short: "Validate a JSON Patch sequence, optionally against a document",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			patch, err := readPatch(args[0])
			if err != nil {
				return err
			}
			var doc jsonpatch.Value
			if len(args) == 2 {
				doc, err = readValue(args[1])
				if err != nil {
					return err
				}
			}
			if err := jsonpatch.Validate(patch, doc); err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), "ok")
			return err
		},
	}
	return cmd
}
