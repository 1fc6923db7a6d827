package main

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/jchantrell/discedit/internal/database"
	"github.com/jchantrell/discedit/internal/utils"
)

var strgCmd = &cobra.Command{
	Use:   "strg",
	Short: "Read and edit STRG string tables",
}

var strgInfoCmd = &cobra.Command{
	Use:   "info FILE",
	Short: "Show the languages and string count of a table",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		lt, err := loadTable(args[0])
		if err != nil {
			return err
		}
		defer lt.Close()

		fmt.Printf("Size:      %s\n", utils.Bytes(lt.size))
		fmt.Printf("Strings:   %s\n", utils.Number(int64(lt.table.Len())))
		fmt.Printf("Languages:")
		for _, lang := range lt.table.Languages() {
			fmt.Printf(" %s", lang)
		}
		fmt.Println()
		return nil
	},
}

var strgDumpCmd = &cobra.Command{
	Use:   "dump FILE",
	Short: "Print every string of a language",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		lt, err := loadTable(args[0])
		if err != nil {
			return err
		}
		defer lt.Close()

		strs, err := lt.table.Strings(currentLanguage())
		if err != nil {
			return err
		}
		for i, s := range strs {
			fmt.Printf("%d\t%q\n", i, s)
		}
		return nil
	},
}

var strgSetCmd = &cobra.Command{
	Use:   "set FILE",
	Short: "Replace one string of a language",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		index, _ := cmd.Flags().GetInt("index")
		text, _ := cmd.Flags().GetString("text")
		out, _ := cmd.Flags().GetString("output")

		lt, err := loadTable(args[0])
		if err != nil {
			return err
		}
		defer lt.Close()

		lang := currentLanguage()
		old, err := lt.table.String(lang, index)
		if err != nil {
			return err
		}
		if err := lt.table.SetString(lang, index, text); err != nil {
			return err
		}
		slog.Info("Replaced string", "language", lang, "index", index, "old", old, "new", text)
		return lt.save(outputPath(args[0], out))
	},
}

var strgInsertCmd = &cobra.Command{
	Use:   "insert FILE",
	Short: "Insert a string into every language",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		index, _ := cmd.Flags().GetInt("index")
		text, _ := cmd.Flags().GetString("text")
		out, _ := cmd.Flags().GetString("output")

		lt, err := loadTable(args[0])
		if err != nil {
			return err
		}
		defer lt.Close()

		if index < 0 {
			index = lt.table.Len()
		}
		if err := lt.table.InsertString(index, text); err != nil {
			return err
		}
		slog.Info("Inserted string", "index", index, "languages", len(lt.table.Languages()), "strings", lt.table.Len())
		return lt.save(outputPath(args[0], out))
	},
}

var strgExportCmd = &cobra.Command{
	Use:   "export FILE",
	Short: "Export every string to the SQLite database",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		start := time.Now()

		lt, err := loadTable(args[0])
		if err != nil {
			return err
		}
		defer lt.Close()

		var rows []database.StringRow
		for _, lang := range lt.table.Languages() {
			strs, err := lt.table.Strings(lang)
			if err != nil {
				return fmt.Errorf("reading %s strings: %w", lang, err)
			}
			for i, s := range strs {
				rows = append(rows, database.StringRow{Language: lang.String(), Index: i, Text: s})
			}
		}

		db, err := database.NewDatabase(database.DefaultDatabaseOptions(cfg.Database))
		if err != nil {
			return fmt.Errorf("opening database: %w", err)
		}
		defer db.Close()

		if err := db.CreateSchema(ctx); err != nil {
			return err
		}

		inserter := database.NewBulkInserter(db, nil)
		id, err := inserter.RegisterTable(ctx, database.TableInfo{
			Source:    lt.img.Path(),
			Offset:    lt.offset,
			Size:      int(lt.size),
			Languages: len(lt.table.Languages()),
			Strings:   lt.table.Len(),
		})
		if err != nil {
			return err
		}

		progress := utils.NewProgress(len(rows), "Exporting strings", cfg.Progress)
		err = inserter.InsertStrings(ctx, id, rows, progress.Update)
		progress.Finish()
		if err != nil {
			return err
		}

		elapsed := time.Since(start)
		slog.Info("Export complete",
			"database", db.Path(),
			"rows", utils.Number(int64(len(rows))),
			"rate", utils.Rate(float64(len(rows))/elapsed.Seconds()),
			"duration", utils.Duration(elapsed))
		return nil
	},
}

// outputPath defaults edits to overwrite the input
func outputPath(in, out string) string {
	if out == "" {
		return in
	}
	return out
}

func init() {
	rootCmd.AddCommand(strgCmd)
	strgCmd.AddCommand(strgInfoCmd, strgDumpCmd, strgSetCmd, strgInsertCmd, strgExportCmd)

	for _, c := range []*cobra.Command{strgSetCmd, strgInsertCmd} {
		c.Flags().Int("index", 0, "string index")
		c.Flags().String("text", "", "new string")
		c.Flags().StringP("output", "o", "", "output path (default: overwrite FILE)")
		c.MarkFlagRequired("text")
	}
	strgSetCmd.MarkFlagRequired("index")
	strgInsertCmd.Flags().Lookup("index").Usage = "insert before this index (-1 appends)"
}
