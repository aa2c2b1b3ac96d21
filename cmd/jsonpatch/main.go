// Command jsonpatch applies, diffs, validates and queries RFC 6902 JSON
// patches against files on disk, exercising the library's whole public
// surface the way a small cobra-driven CLI does in the rest of the pack.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "jsonpatch",
		Short: "Apply, diff, validate and query RFC 6902 JSON patches",
	}
	root.AddCommand(newApplyCmd())
	root.AddCommand(newDiffCmd())
	root.AddCommand(newGetCmd())
	root.AddCommand(newValidateCmd())
	return root
}
