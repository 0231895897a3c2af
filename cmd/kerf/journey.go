package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hejijunhao/kerf/internal/engine"
	"github.com/hejijunhao/kerf/internal/render"
)

var journeyCmd = &cobra.Command{
	Use:   "journey <logfile> <identifier>",
	Short: "Reconstruct one actor's request timeline",
	Long: `Journey matches the identifier as a case-insensitive substring
against every identifier value in the log (user IDs, usernames, emails,
trace/request/session IDs, IP addresses) and prints the matching
entries in timestamp order, plus the success-to-failure breakdown.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		content, err := loadDocument(args[0])
		if err != nil {
			return err
		}
		identifier := args[1]

		eng := engine.New(engine.WithLogger(log))
		eng.Load(content)

		seq, ok, err := eng.ErrorSequence(identifier)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if !ok {
			fmt.Fprintf(out, "no entries match %q\n", identifier)
			return nil
		}
		fmt.Fprintln(out, render.ErrorSequenceBlock(seq))

		entries, err := eng.Journey(identifier)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, "Detailed Journey:")
		fmt.Fprint(out, render.JourneyBlock(entries))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(journeyCmd)
}
