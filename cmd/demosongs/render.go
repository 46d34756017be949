package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/mattn/go-isatty"

	"demosongs/internal/descstore"
	"demosongs/internal/harvest"
	"demosongs/internal/songs"
)

func isTerminal(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// writeSection prints a titled table on terminals and tab separated
// "key<TAB>value" lines otherwise.
func writeSection(out io.Writer, title string, headers []string, rows [][]string) {
	if isTerminal(out) {
		fmt.Fprintln(out, title)
		fmt.Fprintln(out, renderTable(headers, rows, nil))
		return
	}
	fmt.Fprintf(out, "# %s\n", title)
	for _, row := range rows {
		fmt.Fprintln(out, strings.Join(row, "\t"))
	}
}

func strategyRows(report songs.Report) [][]string {
	rows := make([][]string, 0, len(songs.Strategies))
	for _, strategy := range songs.Strategies {
		rows = append(rows, []string{strategy.String(), strconv.Itoa(report.Strategies[strategy])})
	}
	return rows
}

func verdictRows(report songs.Report) [][]string {
	rows := make([][]string, 0, len(songs.Verdicts))
	for _, verdict := range songs.Verdicts {
		rows = append(rows, []string{verdict.String(), strconv.Itoa(report.Verdicts[verdict])})
	}
	return rows
}

func renderReport(out io.Writer, summary *harvest.Summary) {
	totals := [][]string{
		{"run", summary.RunID},
		{"source", summary.Source},
		{"descriptions", strconv.Itoa(summary.Videos)},
		{"candidates", strconv.Itoa(summary.Report.Candidates)},
		{"titles", strconv.Itoa(len(summary.Titles))},
		{"duration", summary.Duration.Round(time.Millisecond).String()},
	}
	if summary.OutputPath != "" {
		totals = append(totals, []string{"output", summary.OutputPath})
	}
	if summary.DumpDir != "" {
		totals = append(totals, []string{"dump", fmt.Sprintf("%s (%d files)", summary.DumpDir, summary.Dumped)})
	}
	writeSection(out, "Summary", []string{"Field", "Value"}, totals)
	writeSection(out, "Strategies", []string{"Strategy", "Descriptions"}, strategyRows(summary.Report))
	writeSection(out, "Filter", []string{"Verdict", "Candidates"}, verdictRows(summary.Report))
}

func renderTables(out io.Writer, tables *songs.Tables) {
	writeSection(out, "Tables", []string{"Field", "Value"}, [][]string{
		{"identifiers", strings.Join(tables.Identifiers(), ", ")},
		{"exclusions", strconv.Itoa(tables.ExclusionCount())},
	})
}

func renderCacheStats(out io.Writer, stats descstore.Stats) {
	fetched := "never"
	if !stats.FetchedAt.IsZero() {
		fetched = stats.FetchedAt.Local().Format("2006-01-02 15:04:05")
	}
	runID := stats.RunID
	if runID == "" {
		runID = "-"
	}
	writeSection(out, "Description cache", []string{"Field", "Value"}, [][]string{
		{"path", stats.Path},
		{"run", runID},
		{"fetched", fetched},
		{"descriptions", strconv.Itoa(stats.Count)},
	})

	if len(stats.Channels) == 0 {
		return
	}
	rows := make([][]string, 0, len(stats.Channels))
	for _, channel := range stats.Channels {
		rows = append(rows, []string{channel.ChannelID, strconv.Itoa(channel.Count)})
	}
	writeSection(out, "Channels", []string{"Channel", "Descriptions"}, rows)
}
