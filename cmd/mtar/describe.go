package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/meigma/mtar"
)

func newDescribeCommand(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "describe ARCHIVE",
		Short: "Print the OCI layer descriptor of an archive as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			desc, err := mtar.DescribeFile(args[0])
			if err != nil {
				return fmt.Errorf("%s: %w", args[0], err)
			}
			enc := json.NewEncoder(c.out)
			enc.SetIndent("", "  ")
			return enc.Encode(desc)
		},
	}
}
