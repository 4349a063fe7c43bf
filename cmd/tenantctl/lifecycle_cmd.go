package main

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

type lifecycleOutput struct {
	ID     string `json:"id"`
	Status string `json:"status"`
	Plan   string `json:"plan"`
}

func newSuspendCmd() *cobra.Command {
	var tenantID string

	cmd := &cobra.Command{
		Use:   "suspend",
		Short: "Suspend a tenant, blocking all access until reactivated",
		RunE: func(cmd *cobra.Command, args []string) error {
			tid, err := uuid.Parse(tenantID)
			if err != nil {
				return fmt.Errorf("invalid --tenant: %w", err)
			}

			pool, err := connectDB(cmd.Context())
			if err != nil {
				return err
			}
			defer pool.Close()

			ctx := poolContext(cmd.Context(), pool)
			updated, err := newSubscriptionService().Suspend(ctx, tid)
			if err != nil {
				return err
			}

			return writeJSON(lifecycleOutput{
				ID:     updated.ID().String(),
				Status: string(updated.Status()),
				Plan:   string(updated.Tier()),
			})
		},
	}

	cmd.Flags().StringVar(&tenantID, "tenant", "", "Tenant UUID (required)")
	_ = cmd.MarkFlagRequired("tenant")
	return cmd
}

func newReactivateCmd() *cobra.Command {
	var tenantID string

	cmd := &cobra.Command{
		Use:   "reactivate",
		Short: "Lift a tenant suspension",
		RunE: func(cmd *cobra.Command, args []string) error {
			tid, err := uuid.Parse(tenantID)
			if err != nil {
				return fmt.Errorf("invalid --tenant: %w", err)
			}

			pool, err := connectDB(cmd.Context())
			if err != nil {
				return err
			}
			defer pool.Close()

			ctx := poolContext(cmd.Context(), pool)
			updated, err := newSubscriptionService().Reactivate(ctx, tid)
			if err != nil {
				return err
			}

			return writeJSON(lifecycleOutput{
				ID:     updated.ID().String(),
				Status: string(updated.Status()),
				Plan:   string(updated.Tier()),
			})
		},
	}

	cmd.Flags().StringVar(&tenantID, "tenant", "", "Tenant UUID (required)")
	_ = cmd.MarkFlagRequired("tenant")
	return cmd
}
