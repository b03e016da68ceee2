//go:build !ebiten

package main

import "github.com/spf13/cobra"

func newFireworksCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "fireworks [effect]",
		Short: "Open the fireworks window (needs the ebiten build tag)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return &exitError{
				code: 2,
				msg: "The fireworks window requires the ebiten build tag.\n" +
					"Re-run with `go run -tags ebiten ./cmd/proveit fireworks`, or try `proveit term`.",
			}
		},
	}
}
