package main

import (
	"fmt"
	"slices"
	"strconv"

	"github.com/spf13/cobra"

	"luqy/internal/abspl"
	"luqy/internal/archive"
	"luqy/internal/measurement"
)

func newShowCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:         "show ENTRY.json",
		Short:       "Display an archived entry",
		Args:        cobra.ExactArgs(1),
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := archive.Read(args[0])
			if err != nil {
				return err
			}
			if jsonOutput {
				return writeJSON(cmd, m)
			}
			printEntry(cmd, m)
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Print the entry as JSON")
	return cmd
}

func printEntry(cmd *cobra.Command, m *measurement.Measurement) {
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, renderTable("Entry", []string{"Key", "Value"}, [][]string{
		{"ID", m.ID},
		{"Name", m.Name},
		{"Method", m.Method},
		{"Data file", m.DataFile},
		{"Created", m.CreatedAt.Format("2006-01-02 15:04:05 MST")},
	}, nil))

	var settings [][]string
	if s := m.Settings; s != nil {
		for _, field := range abspl.SettingFields() {
			if field.IsText() {
				if s.SubcellDescription != nil {
					settings = append(settings, []string{field.Name(), *s.SubcellDescription, ""})
				}
				continue
			}
			if q := s.Setting(field); q != nil {
				settings = append(settings, []string{field.Name(), formatFloat(q.Value), q.Unit})
			}
		}
	}
	if len(settings) == 0 {
		fmt.Fprintln(out, "No settings")
	} else {
		fmt.Fprintln(out, renderTable("Settings", []string{"Field", "Value", "Unit"}, settings,
			[]columnAlignment{alignLeft, alignRight, alignLeft}))
	}

	for i := range m.Results {
		r := &m.Results[i]
		rows := make([][]string, 0, len(abspl.ResultFields())+2)
		for _, field := range abspl.ResultFields() {
			if q := r.Value(field); q != nil {
				rows = append(rows, []string{field.Name(), formatFloat(q.Value), q.Unit})
			}
		}
		rows = append(rows, []string{"points", strconv.Itoa(r.Points()), ""})
		if r.Points() > 0 {
			rows = append(rows, []string{
				"wavelength range",
				formatFloat(slices.Min(r.Wavelength)) + " - " + formatFloat(slices.Max(r.Wavelength)),
				measurement.UnitWavelength,
			})
		}
		fmt.Fprintln(out, renderTable(fmt.Sprintf("Result %d", i+1), []string{"Field", "Value", "Unit"}, rows,
			[]columnAlignment{alignLeft, alignRight, alignLeft}))
	}
}
