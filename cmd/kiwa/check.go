package main

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Xnn511/kiwa/internal/bootstrap"
	"github.com/Xnn511/kiwa/internal/platform/config"
)

var errContentIncomplete = errors.New("content check failed")

func newCheckCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Validate configuration, catalog and translations",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := root.load(cmd)
			if err != nil {
				var verr *config.ValidationError
				if errors.As(err, &verr) {
					fmt.Fprintf(cmd.OutOrStdout(), "invalid config fields: %s\n", strings.Join(verr.Fields(), ", "))
				}
				return err
			}
			c, err := bootstrap.Open(cfg)
			if err != nil {
				return err
			}
			report := c.Check()
			printReport(cmd.OutOrStdout(), report)
			if !report.OK() {
				return errContentIncomplete
			}
			return nil
		},
	}
}

func printReport(w io.Writer, report bootstrap.Report) {
	if report.OK() {
		fmt.Fprintln(w, "content ok")
		return
	}
	for _, item := range sortedKeys(report.UnknownTags) {
		fmt.Fprintf(w, "item %s: unknown tags %s\n", item, strings.Join(report.UnknownTags[item], ", "))
	}
	for _, lang := range sortedKeys(report.Missing) {
		fmt.Fprintf(w, "locale %s: missing %s\n", lang, strings.Join(report.Missing[lang], ", "))
	}
}

func sortedKeys(m map[string][]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
