package main

import (
	"time"

	"github.com/spf13/cobra"
)

type sweepOutput struct {
	Swept      int   `json:"swept"`
	DurationMS int64 `json:"duration_ms"`
}

func newSweepCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Mark tenants whose paid period has lapsed as expired",
		RunE: func(cmd *cobra.Command, args []string) error {
			pool, err := connectDB(cmd.Context())
			if err != nil {
				return err
			}
			defer pool.Close()

			ctx := poolContext(cmd.Context(), pool)
			start := time.Now()
			swept, err := newSubscriptionService().SweepExpired(ctx)
			if err != nil {
				return err
			}

			return writeJSON(sweepOutput{
				Swept:      swept,
				DurationMS: time.Since(start).Milliseconds(),
			})
		},
	}
	return cmd
}
