package cmd

import (
	"context"
	"fmt"

	"github.com/jpfielding/pgm.go/pkg/kernel"
	"github.com/spf13/cobra"
)

// NewKernelsCmd lists the spatial filter catalog
func NewKernelsCmd(ctx context.Context) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "kernels [name]",
		Short: "list spatial filter kernels",
		Long:  "Lists the named kernel catalog, or prints one kernel's constant and weights.",
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog := kernel.Default()
			out := cmd.OutOrStdout()
			if len(args) == 0 {
				for _, name := range catalog.Names() {
					k, _ := catalog.Get(name)
					w, h := k.Size()
					fmt.Fprintf(out, "%-16s %dx%d\n", name, w, h)
				}
				return nil
			}
			k, ok := catalog.Get(args[0])
			if !ok {
				return fmt.Errorf("unknown kernel %q", args[0])
			}
			fmt.Fprint(out, k.String())
			return nil
		},
	}
	return cmd
}
