package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/orderdesk/delivery/config"
	"github.com/orderdesk/delivery/pkg/database"
)

// withDB loads config, connects, runs fn and disconnects.
func withDB(fn func(ctx context.Context) error) error {
	if err := config.Load(); err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := database.Connect(ctx, config.MongoURI(), config.MongoDatabase()); err != nil {
		return err
	}
	defer database.Disconnect(context.Background()) //nolint:errcheck
	return fn(ctx)
}

var dbIndexesCmd = &cobra.Command{
	Use:   "db:indexes",
	Short: "Create the items and orders indexes",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(ctx context.Context) error {
			db, err := database.DB()
			if err != nil {
				return err
			}
			if err := database.EnsureIndexes(ctx, db); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Indexes are in place.")
			return nil
		})
	},
}

var dbPingCmd = &cobra.Command{
	Use:   "db:ping",
	Short: "Check that MongoDB is reachable",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(ctx context.Context) error {
			start := time.Now()
			if err := database.Ping(ctx); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "MongoDB %s reachable (%s)\n", config.MongoDatabase(), time.Since(start).Round(time.Millisecond))
			return nil
		})
	},
}
