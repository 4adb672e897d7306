package main

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"themeapp/internal/prefs"
	"themeapp/internal/theme"
	"themeapp/models"
)

func newThemeCmd(e env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "theme",
		Short: "Read and write persisted visitor themes",
	}

	cmd.AddCommand(newThemeGetCmd(e))
	cmd.AddCommand(newThemeSetCmd(e))
	cmd.AddCommand(newThemeImportCmd(e))

	return cmd
}

func newThemeGetCmd(e env) *cobra.Command {
	return &cobra.Command{
		Use:   "get <visitor>",
		Short: "Print the theme a visitor will see",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDatabase(cmd, e, func(database *gorm.DB) error {
				value, ok, err := prefs.Lookup(cmd.Context(), database, args[0], theme.StorageKey)
				if err != nil {
					return err
				}
				id := models.NormalizeTheme(value)
				source := "stored"
				if !ok || !models.ValidTheme(value) {
					source = "default"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s (%s)\n", args[0], id, theme.ByID(id).Label, source)
				return nil
			})
		},
	}
}

func newThemeSetCmd(e env) *cobra.Command {
	return &cobra.Command{
		Use:   "set <visitor> <theme>",
		Short: "Persist a theme for a visitor",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			visitor, value := args[0], strings.TrimSpace(args[1])
			if !models.ValidTheme(value) {
				return fmt.Errorf("unknown theme %q (want one of %s)", value, themeList())
			}
			return withDatabase(cmd, e, func(database *gorm.DB) error {
				if err := prefs.Assign(cmd.Context(), database, visitor, theme.StorageKey, value); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", visitor, value)
				return nil
			})
		},
	}
}

func newThemeImportCmd(e env) *cobra.Command {
	return &cobra.Command{
		Use:   "import <csv>",
		Short: "Bulk assign themes from a visitor,theme CSV file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			file, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("locate csv: %w", err)
			}
			defer file.Close()

			records, err := readAssignments(file)
			if err != nil {
				return fmt.Errorf("read csv: %w", err)
			}

			return withDatabase(cmd, e, func(database *gorm.DB) error {
				err := database.Transaction(func(tx *gorm.DB) error {
					for idx, rec := range records {
						if err := prefs.Assign(cmd.Context(), tx, rec.visitor, theme.StorageKey, rec.theme.String()); err != nil {
							return fmt.Errorf("row %d (%s): %w", idx+2, rec.visitor, err)
						}
					}
					return nil
				})
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "imported %d preferences\n", len(records))
				return nil
			})
		},
	}
}

type assignment struct {
	visitor string
	theme   models.ThemeID
}

// readAssignments parses a CSV with visitor and theme columns. Every row must
// name a visitor and one of the known themes.
func readAssignments(r io.Reader) ([]assignment, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, errors.New("csv is empty")
	}

	visitorCol, themeCol := -1, -1
	for idx, name := range rows[0] {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "visitor":
			visitorCol = idx
		case "theme":
			themeCol = idx
		}
	}
	if visitorCol < 0 || themeCol < 0 {
		return nil, errors.New("csv header must include visitor and theme columns")
	}

	records := make([]assignment, 0, len(rows)-1)
	for idx, row := range rows[1:] {
		if visitorCol >= len(row) || themeCol >= len(row) {
			return nil, fmt.Errorf("row %d: missing columns", idx+2)
		}
		visitor := strings.TrimSpace(row[visitorCol])
		value := strings.TrimSpace(row[themeCol])
		if visitor == "" {
			return nil, fmt.Errorf("row %d: visitor is empty", idx+2)
		}
		if !models.ValidTheme(value) {
			return nil, fmt.Errorf("row %d: unknown theme %q", idx+2, value)
		}
		records = append(records, assignment{visitor: visitor, theme: models.ThemeID(value)})
	}
	return records, nil
}

func themeList() string {
	ids := models.Themes()
	names := make([]string, len(ids))
	for i, id := range ids {
		names[i] = id.String()
	}
	return strings.Join(names, ", ")
}
