package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hejijunhao/kerf/internal/config"
	"github.com/hejijunhao/kerf/internal/engine"
	"github.com/hejijunhao/kerf/internal/render"
)

var (
	showDigest bool
	query      string
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <logfile>",
	Short: "Parse a log file and print analysis reports",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		content, err := loadDocument(args[0])
		if err != nil {
			return err
		}

		eng := engine.New(engine.WithLogger(log))
		eng.Load(content)

		stats, err := eng.Statistics()
		if err != nil {
			return err
		}
		summary, err := eng.APISummary()
		if err != nil {
			return err
		}
		patterns, err := eng.CommonPatterns()
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "STATISTICS:")
		fmt.Fprintln(out, render.StatisticsTable(stats))
		fmt.Fprintln(out, "API SUMMARY:")
		fmt.Fprintln(out, render.APISummaryTable(summary))
		fmt.Fprintln(out, render.PatternsBlock(patterns))

		if query != "" {
			if err := printQueryContext(cmd, eng); err != nil {
				return err
			}
		}
		if showDigest {
			d, err := eng.Digest(cfg.Analysis.MaxContextEntries)
			if err != nil {
				return err
			}
			fmt.Fprintln(out, d)
		}
		return nil
	},
}

// printQueryContext prints the query-relevant entry sample and, when
// the query names a known actor, that actor's journey.
func printQueryContext(cmd *cobra.Command, eng *engine.Engine) error {
	out := cmd.OutOrStdout()
	sampleCap := config.ParseDepth(cfg.Analysis.Depth).SampleCap()

	if actor, ok, err := eng.ResolveActor(query); err != nil {
		return err
	} else if ok {
		fmt.Fprintf(out, "USER JOURNEY ANALYSIS FOR: %s\n", actor)
		seq, found, err := eng.ErrorSequence(actor)
		if err != nil {
			return err
		}
		if found {
			fmt.Fprintln(out, render.ErrorSequenceBlock(seq))
		}
		entries, err := eng.Journey(actor)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, "Detailed Journey:")
		fmt.Fprintln(out, render.JourneyBlock(entries))
	}

	entries, err := eng.RelevantEntries(query, sampleCap)
	if err != nil {
		return err
	}
	fmt.Fprintln(out, render.RelevantEntriesBlock(entries))
	return nil
}

func init() {
	analyzeCmd.Flags().BoolVar(&showDigest, "digest", false, "print the AI analysis context digest")
	analyzeCmd.Flags().StringVar(&query, "query", "", "rank entries by relevance to this question")
	rootCmd.AddCommand(analyzeCmd)
}
