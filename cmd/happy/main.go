// Command happy runs the Happy API and talks to it.
//
//	happy serve                      run the HTTP API (migrates first)
//	happy migrate                    apply database migrations
//	happy orphanages list            list registered orphanages
//	happy orphanages show <id>       show one orphanage
//	happy orphanages create ...      register an orphanage with photos
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:           "happy",
	Short:         "Happy connects volunteers with orphanages",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func main() {
	rootCmd.AddCommand(serveCmd, migrateCmd, orphanagesCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
