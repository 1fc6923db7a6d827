package main

import (
	"bytes"
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/jchantrell/discedit/internal/utils"
)

var verifyCmd = &cobra.Command{
	Use:   "verify FILE",
	Short: "Check that a table re-encodes to its original bytes",
	Long: `Verify decodes the selected string table and encodes it again without
making any edits. It fails unless the output is byte-identical to the input.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		start := time.Now()
		lt, err := loadTable(args[0])
		if err != nil {
			return err
		}
		defer lt.Close()

		region, err := lt.img.Region(lt.offset, lt.size)
		if err != nil {
			return err
		}
		got, err := lt.table.Bytes()
		if err != nil {
			return fmt.Errorf("encoding table: %w", err)
		}
		want := region.Bytes()
		if !bytes.Equal(got, want) {
			if len(got) != len(want) {
				return fmt.Errorf("re-encoded table is %s, original is %s", utils.Bytes(int64(len(got))), utils.Bytes(int64(len(want))))
			}
			i := 0
			for got[i] == want[i] {
				i++
			}
			return fmt.Errorf("re-encoded table differs at byte %d (0x%02x, want 0x%02x)", lt.offset+int64(i), got[i], want[i])
		}

		slog.Info("Table round-trips", "path", args[0], "size", utils.Bytes(lt.size), "duration", utils.Duration(time.Since(start)))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(verifyCmd)
}
