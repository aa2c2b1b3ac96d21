package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jpatchlabs/jsonpatch"
)

func newApplyCmd() *cobra.Command {
	var mutate bool
	var validate bool

	cmd := &cobra.Command{
		Use:   "apply <doc.json> <patch.json>",
		Short: "Apply a JSON Patch sequence to a document and print the result",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := readValue(args[0])
			if err != nil {
				return err
			}
			patch, err := readPatch(args[1])
			if err != nil {
				return err
			}
			results, err := jsonpatch.ApplyPatch(doc, patch, jsonpatch.ApplyOptions{
				Validate: validate,
				Mutate:   mutate,
				BanProto: true,
			})
			if err != nil {
				return err
			}
			final := doc
			if len(results) > 0 {
				final = results[len(results)-1].NewDocument
			}
			return printValue(cmd.OutOrStdout(), final)
		},
	}
	cmd.Flags().BoolVar(&mutate, "mutate", true, "mutate the document in place instead of cloning")
	cmd.Flags().BoolVar(&validate, "validate", false, "validate each operation before applying it")
	return cmd
}

func readValue(path string) (jsonpatch.Value, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return jsonpatch.ParseValue(data)
}

func readPatch(path string) (jsonpatch.Patch, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return jsonpatch.DecodePatch(data)
}

func printValue(w interface{ Write([]byte) (int, error) }, v jsonpatch.Value) error {
	raw, err := jsonpatch.MarshalValue(v)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(raw))
	return err
}
