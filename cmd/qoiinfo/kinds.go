package main

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/gomantics/qoi"
	"github.com/gomantics/qoi/internal/config"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

type kindEntry struct {
	Code      int    `json:"code"`
	Label     string `json:"label"`
	Retryable bool   `json:"retryable"`
}

func newKindsCmd(a *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "kinds",
		Short: "List the error kinds qoiinfo can report",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			kinds := qoi.Kinds()
			w := cmd.OutOrStdout()

			output := a.cfg.Output
			if cmd.Flags().Changed("json") {
				output = config.OutputText
				if asJSON {
					output = config.OutputJSON
				}
			}

			if output == config.OutputJSON {
				entries := make([]kindEntry, 0, len(kinds))
				for _, k := range kinds {
					entries = append(entries, kindEntry{Code: int(k), Label: k.String(), Retryable: k.Retryable()})
				}
				enc := json.NewEncoder(w)
				enc.SetIndent("", "  ")
				return enc.Encode(entries)
			}

			data := pterm.TableData{{"Code", "Label", "Retryable"}}
			for _, k := range kinds {
				data = append(data, []string{strconv.Itoa(int(k)), k.String(), strconv.FormatBool(k.Retryable())})
			}
			table, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
			if err != nil {
				return fmt.Errorf("render table: %w", err)
			}
			_, err = fmt.Fprintln(w, table)
			return err
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print kinds as JSON")
	return cmd
}
