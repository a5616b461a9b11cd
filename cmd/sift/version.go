// Version command for the sift CLI.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/sift/pkg/sift"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the sift version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("sift", sift.Version)
	},
}
