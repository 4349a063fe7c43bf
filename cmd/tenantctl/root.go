package main

import "github.com/spf13/cobra"

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tenantctl",
		Short: "Tenant lifecycle operations for operators",
	}
	cmd.AddCommand(newProvisionCmd())
	cmd.AddCommand(newSweepCmd())
	cmd.AddCommand(newSuspendCmd())
	cmd.AddCommand(newReactivateCmd())
	return cmd
}

func execute() {
	_ = newRootCmd().Execute()
}
