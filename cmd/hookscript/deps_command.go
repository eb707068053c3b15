package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"hookscript/internal/deps"
)

func newDepsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "deps",
		Short: "Check external binaries used by the pipeline",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			statuses := deps.Check(cmd.Context(), deps.Requirements(cfg))
			p := newStatusPrinter(cmd.OutOrStdout())
			p.section("Dependencies")
			reportDependencies(p, statuses)
			if missing := deps.Missing(statuses); len(missing) > 0 {
				return fmt.Errorf("%d required dependency(ies) missing", len(missing))
			}
			return nil
		},
	}
}

func reportDependencies(p *statusPrinter, statuses []deps.Status) {
	var missing []string
	for _, dep := range statuses {
		if dep.Available {
			p.line(dep.Name, statusOK, fmt.Sprintf("%s (%s)", dep.Version, dep.Path))
			continue
		}
		detail := strings.TrimSpace(dep.Detail)
		if detail == "" {
			detail = "not available"
		}
		kind := statusError
		if dep.Optional {
			kind = statusWarn
			detail += " (optional)"
		} else {
			missing = append(missing, dep.Name)
		}
		p.line(dep.Name, kind, detail)
	}
	if len(missing) > 0 {
		p.line("Missing dependencies", statusError, strings.Join(missing, ", "))
	}
}
