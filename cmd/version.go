package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bigfeelings/bigfeelings/internal/store"
)

// version is set via -ldflags at build time.
var version = "(devel)"

var versionCmd = &cobra.Command{
	Use:         "version",
	Short:       "Print the current version",
	Annotations: map[string]string{annotationNoServices: "true"},
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(out(cmd), "bigfeelings", version)
		fmt.Fprintln(out(cmd), "data format", store.CurrentFormat)
	},
}
