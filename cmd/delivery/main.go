// Command delivery runs the item and order record service.
//
//	delivery serve        start the HTTP server
//	delivery route:list   print the mounted routes
//	delivery db:indexes   create the collection indexes
//	delivery db:ping      check the MongoDB connection
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:           "delivery",
	Short:         "Menu item and order record service",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(routeListCmd)
	rootCmd.AddCommand(dbIndexesCmd)
	rootCmd.AddCommand(dbPingCmd)
}
