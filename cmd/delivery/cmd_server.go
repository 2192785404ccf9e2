package main

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/orderdesk/delivery/config"
	"github.com/orderdesk/delivery/internal/kernel"
	"github.com/orderdesk/delivery/internal/server"
	"github.com/orderdesk/delivery/pkg/storage"
)

var serveCmd = &cobra.Command{
	Use:     "serve",
	Aliases: []string{"run", "start"},
	Short:   "Start the HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return server.Start()
	},
}

var routeListCmd = &cobra.Command{
	Use:   "route:list",
	Short: "List all mounted routes",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.Load(); err != nil {
			return err
		}
		return printRoutes(os.Stdout)
	},
}

// printRoutes builds the kernel without a database; handlers are mounted
// but never invoked.
func printRoutes(out io.Writer) error {
	disk := storage.NewLocalDisk(config.UploadsDir(), config.PublicURL()+"/uploads")
	k, err := kernel.NewHTTPKernel(kernel.Deps{
		Disk:         disk,
		DefaultImage: config.DefaultImage(),
		Uploads:      disk,
	})
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "METHOD\tPATH\tNAME")
	fmt.Fprintln(w, "------\t----\t----")
	for _, ri := range k.Routes() {
		fmt.Fprintf(w, "%s\t%s\t%s\n", ri.Method, ri.Path, ri.Name)
	}
	return w.Flush()
}
