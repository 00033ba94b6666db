package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dshills/tabstorm/internal/buffer"
	"github.com/dshills/tabstorm/internal/tab"
	"github.com/dshills/tabstorm/internal/tab/cursor"
	"github.com/dshills/tabstorm/internal/tab/tuning"
)

func transposeCmd() *cobra.Command {
	var amount int
	var inPlace bool

	cmd := &cobra.Command{
		Use:   "transpose FILE",
		Short: "Transpose every staff by a number of semitones",
		Long: `Transpose rewrites every fretted note in every staff, shifting it by
the given number of semitones and wrapping the fret into 0..11.
Embellishments, barlines, and the surrounding text are untouched.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if amount == 0 {
				return fmt.Errorf("nothing to do: -n is 0")
			}
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			b := buffer.FromString(string(data))
			if err := transposeAll(b, amount); err != nil {
				return err
			}
			if inPlace {
				return os.WriteFile(args[0], []byte(b.Text()), 0o644)
			}
			fmt.Print(b.Text())
			return nil
		},
	}
	cmd.Flags().IntVarP(&amount, "semitones", "n", 0, "semitones to shift, negative for down")
	cmd.Flags().BoolVarP(&inPlace, "write", "w", false, "rewrite the file instead of printing")
	return cmd
}

func transposeAll(b *buffer.Buffer, amount int) error {
	var deltas [tab.StringCount]int
	for i := range deltas {
		deltas[i] = amount
	}

	top, ok := cursor.NextStaffTop(b, 0)
	for ok {
		last := tab.CellCount(b.Line(top)) - 1
		if err := tuning.Transpose(b, top, 0, last, deltas); err != nil {
			return err
		}
		top, ok = cursor.NextStaffTop(b, top+tab.StringCount)
	}
	return nil
}
