package main

import (
	"fmt"
	"log/slog"
	"maps"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jchantrell/discedit/internal/database"
)

var queryCmd = &cobra.Command{
	Use:   "query [SQL]",
	Short: "Query the export database",
	Long: `Query runs SQL against the database written by "strg export", or lists
its tables with their row counts.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		listTables, _ := cmd.Flags().GetBool("tables")
		query, _ := cmd.Flags().GetString("sql")
		if query == "" && len(args) > 0 {
			query = args[0]
		}

		db, err := database.NewDatabase(database.DefaultDatabaseOptions(cfg.Database))
		if err != nil {
			return fmt.Errorf("opening database: %w", err)
		}
		defer db.Close()

		if listTables {
			tables, err := db.Tables(ctx)
			if err != nil {
				return fmt.Errorf("listing tables: %w", err)
			}
			fmt.Println("Available tables:")
			for _, name := range slices.Sorted(maps.Keys(tables)) {
				fmt.Printf("  %-20s %d rows\n", name, tables[name])
			}
			return nil
		}

		if query == "" {
			return fmt.Errorf("no query provided, use --sql or --tables")
		}
		slog.Debug("Executing SQL query", "query", query)

		rows, err := db.Query(ctx, query)
		if err != nil {
			return fmt.Errorf("executing query: %w", err)
		}
		defer rows.Close()

		columns, err := rows.Columns()
		if err != nil {
			return fmt.Errorf("getting column names: %w", err)
		}
		fmt.Println(strings.Join(columns, "\t"))
		sep := make([]string, len(columns))
		for i, col := range columns {
			sep[i] = strings.Repeat("-", len(col))
		}
		fmt.Println(strings.Join(sep, "\t"))

		values := make([]any, len(columns))
		ptrs := make([]any, len(columns))
		for i := range values {
			ptrs[i] = &values[i]
		}
		for rows.Next() {
			if err := rows.Scan(ptrs...); err != nil {
				return fmt.Errorf("scanning row: %w", err)
			}
			cells := make([]string, len(values))
			for i, v := range values {
				switch v := v.(type) {
				case nil:
					cells[i] = "NULL"
				case []byte:
					cells[i] = string(v)
				default:
					cells[i] = fmt.Sprint(v)
				}
			}
			fmt.Println(strings.Join(cells, "\t"))
		}
		return rows.Err()
	},
}

func init() {
	rootCmd.AddCommand(queryCmd)
	queryCmd.Flags().Bool("tables", false, "list tables and row counts")
	queryCmd.Flags().String("sql", "", "SQL statement to run")
}
