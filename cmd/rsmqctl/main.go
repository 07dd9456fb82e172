// Command rsmqctl is an operator CLI for an rsmq deployment: it creates and
// inspects queues, sends and drains messages, and can run the admin HTTP
// server (see "rsmqctl serve").
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "rsmqctl",
	Short: "Operate an rsmq queue namespace",
	Long: `rsmqctl is the operator CLI for an rsmq deployment.
It creates and inspects queues, sends and drains messages by hand, and can
run the admin HTTP server that exposes queue metrics and health.`,
}

func init() {
	rootCmd.PersistentFlags().String("env-file", "", "optional .env file to load before reading environment variables")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
