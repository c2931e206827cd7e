package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gyeh/medload/internal/db"
	"github.com/gyeh/medload/internal/exitcode"
	"github.com/gyeh/medload/internal/ingest"
	"github.com/gyeh/medload/internal/logging"
)

var provisionCmd = &cobra.Command{
	Use:   "provision",
	Short: "Declare access roles and collection indexes",
	RunE:  runProvision,
}

func init() {
	provisionCmd.Flags().BoolVar(&cfg.SkipRoles, "skip-roles", false, "Do not declare access roles")
	provisionCmd.Flags().BoolVar(&cfg.SkipIndexes, "skip-indexes", false, "Do not declare collection indexes")
	rootCmd.AddCommand(provisionCmd)
}

func runProvision(cmd *cobra.Command, args []string) error {
	log := logging.Setup(cfg.LogFormat, cfg.LogLevel)
	ctx := context.Background()

	client, target := connect(ctx, log)
	defer client.Disconnect(context.Background())

	res, err := ingest.Provision(ctx, target, cfg.SkipRoles, cfg.SkipIndexes, log)
	if err != nil {
		log.Error().Err(err).Msg("provisioning failed")
		client.Disconnect(context.Background())
		os.Exit(exitcode.DBConnError)
	}

	for _, r := range res.Roles.Results {
		if r.Err != nil {
			fmt.Printf("  %-18s %s: %v\n", r.Role, r.Outcome, r.Err)
			continue
		}
		fmt.Printf("  %-18s %s\n", r.Role, r.Outcome)
	}
	fmt.Printf("Roles: %d created, %d existing, %d failed; %d indexes ensured\n",
		res.Roles.Count(db.RoleCreated), res.Roles.Count(db.RoleExists),
		res.Roles.Count(db.RoleFailed), len(res.Indexes))
	return nil
}
