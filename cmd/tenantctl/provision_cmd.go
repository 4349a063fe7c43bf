package main

import (
	"github.com/spf13/cobra"
)

type provisionOutput struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Domain string `json:"domain"`
	Plan   string `json:"plan"`
	Status string `json:"status"`
}

func newProvisionCmd() *cobra.Command {
	var (
		name   string
		domain string
	)

	cmd := &cobra.Command{
		Use:   "provision",
		Short: "Create a tenant on the trial plan",
		RunE: func(cmd *cobra.Command, args []string) error {
			pool, err := connectDB(cmd.Context())
			if err != nil {
				return err
			}
			defer pool.Close()

			ctx := poolContext(cmd.Context(), pool)
			created, err := newTenantService().Provision(ctx, name, domain)
			if err != nil {
				return err
			}

			return writeJSON(provisionOutput{
				ID:     created.ID().String(),
				Name:   created.Name(),
				Domain: created.Domain(),
				Plan:   string(created.Tier()),
				Status: string(created.Status()),
			})
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Tenant display name (required)")
	cmd.Flags().StringVar(&domain, "domain", "", "Tenant domain")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}
