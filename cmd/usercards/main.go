package main

import (
	"os"

	"github.com/h2hsecure/usercards/cmd/usercards/apps"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "usercards",
	Short: "Render a remote user list as a grid of cards",
	Long:  apps.AppDescription,
}

func main() {
	rootCmd.PersistentFlags().StringVar(&apps.CfgFile, "config", "/etc/usercards.yaml", "config file")

	rootCmd.AddCommand(apps.ServeCmd)
	rootCmd.AddCommand(apps.FetchCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(2)
	}
}
