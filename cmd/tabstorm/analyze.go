package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/dshills/tabstorm/internal/buffer"
	"github.com/dshills/tabstorm/internal/tab"
	"github.com/dshills/tabstorm/internal/tab/chord"
	"github.com/dshills/tabstorm/internal/tab/cursor"
	"github.com/dshills/tabstorm/internal/tab/tuning"
)

func analyzeCmd() *cobra.Command {
	var twelveTone bool

	cmd := &cobra.Command{
		Use:   "analyze FILE",
		Short: "Name the chords in a tab file",
		Long: `Analyze walks every staff in the file and names the chord in each
column holding fretted notes. The root search starts from the lowest
string, so voicings read bass-up the way chord charts do.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			return analyze(buffer.FromString(string(data)), twelveTone)
		},
	}
	cmd.Flags().BoolVar(&twelveTone, "twelve-tone", false, "append the numeric pitch spelling")
	return cmd
}

func analyze(b *buffer.Buffer, twelveTone bool) error {
	name := color.New(color.FgGreen, color.Bold).SprintFunc()
	unknown := color.New(color.FgRed).SprintFunc()
	note := color.New(color.FgYellow).SprintFunc()

	an := chord.New(b, chord.WithTwelveTone(twelveTone))
	staffNum := 0

	top, ok := cursor.NextStaffTop(b, 0)
	for ok {
		staffNum++
		tn, err := tuning.Learn(b, top)
		if err != nil {
			fmt.Printf("staff %d: %v\n", staffNum, err)
			top, ok = cursor.NextStaffTop(b, top+tab.StringCount)
			continue
		}

		cells := tab.CellCount(b.Line(top))
		for c := 0; c < cells; c++ {
			an.Reset()
			ctx := cursor.Context{TopLine: top, String: tab.StringCount - 1, Cell: c}
			res, err := an.Analyze(ctx, tn)
			if errors.Is(err, chord.ErrNoNotesInChord) {
				continue
			}
			if err != nil {
				return err
			}

			label := name(res.Name)
			if res.Name == "" || res.Name[len(res.Name)-1] == '?' {
				label = unknown(res.Name)
			}
			fmt.Printf("staff %d cell %2d: %s%s  %s\n",
				staffNum, c, label, note(res.Disclaimer), res.Spelling)
		}
		top, ok = cursor.NextStaffTop(b, top+tab.StringCount)
	}

	if staffNum == 0 {
		fmt.Println("no staves found")
	}
	return nil
}
