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
	Use:   "vastra",
	Short: "Vastra — multi-tenant storefront CLI",
	Long:  "Vastra runs a multi-tenant e-commerce storefront and its admin back office. Use this CLI to serve, seed, and manage the deployment.",
}

func init() {
	// Server
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(routeListCmd)

	// Database
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(indexCmd)

	// Administration
	rootCmd.AddCommand(adminCreateCmd)

	// Workers
	rootCmd.AddCommand(queueWorkCmd)
}
