package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"flavorcheck/internal/enums"
	"flavorcheck/internal/services"
)

func newEnumsCommand() *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:         "enums [DOMAIN]",
		Short:       "List the platform enumerations used to label codes",
		Args:        cobra.MaximumNArgs(1),
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			domains := enums.Domains()
			if len(args) == 1 {
				d, ok := enums.ParseDomain(args[0])
				if !ok {
					names := make([]string, 0, len(domains))
					for _, known := range domains {
						names = append(names, string(known))
					}
					return services.Wrap(services.ErrValidation, "cli", "enums",
						fmt.Sprintf("unknown domain %q (known: %s)", args[0], strings.Join(names, ", ")), nil)
				}
				domains = []enums.Domain{d}
			}

			if jsonOut {
				payload := make(map[enums.Domain][]enums.Entry, len(domains))
				for _, d := range domains {
					payload[d] = enums.Table(d)
				}
				return writeJSON(cmd.OutOrStdout(), payload)
			}

			out := cmd.OutOrStdout()
			p := newPalette(false)
			for i, d := range domains {
				if i > 0 {
					fmt.Fprintln(out)
				}
				for _, line := range renderSectionHeader(string(d), p) {
					fmt.Fprintln(out, line)
				}
				rows := [][]string{}
				for _, e := range enums.Table(d) {
					rows = append(rows, []string{strconv.Itoa(e.Code), e.Label, enums.Display(e.Label)})
				}
				fmt.Fprintln(out, renderTable([]column{right("Code"), left("Label"), left("Display")}, rows))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit the tables as JSON")
	return cmd
}
