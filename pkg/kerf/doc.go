// Package kerf provides a log analysis engine that parses unstructured
// application log text into structured entries and answers queries
// about them: per-identifier journeys, error sequences, aggregate
// statistics, and failure-pattern reports.
//
// Quick start:
//
//	a := kerf.New(kerf.WithDepth("deep"))
//	a.Load(logText)
//
//	stats, _ := a.Statistics()
//	fmt.Println(stats.TotalLogs, stats.Errors)
//
//	journey, _ := a.Journey("john123")
//	for _, e := range journey {
//	    fmt.Println(e.LineNumber, e.Level, e.Raw)
//	}
//
// An Analyzer holds one document at a time; Load replaces the previous
// document atomically. All queries are read-only and safe to run
// concurrently against a loaded document.
package kerf
