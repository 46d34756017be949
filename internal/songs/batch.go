package songs

// DescriptionReport records how one description was handled.
type DescriptionReport struct {
	Index      int
	Strategy   Strategy
	Candidates int
}

// Report summarizes a batch run.
type Report struct {
	Descriptions []DescriptionReport
	Strategies   map[Strategy]int
	Candidates   int
	Verdicts     FilterStats
}

// Result is the output of Process.
type Result struct {
	Titles []string
	Report Report
}

// ExtractAll runs Extract over every description in order and concatenates
// the candidates, description order first, line order second.
func ExtractAll(t *Tables, descriptions []string) ([]string, []DescriptionReport) {
	var candidates []string
	reports := make([]DescriptionReport, 0, len(descriptions))
	for i, description := range descriptions {
		strategy, lines := Extract(t, description)
		reports = append(reports, DescriptionReport{
			Index:      i,
			Strategy:   strategy,
			Candidates: len(lines),
		})
		candidates = append(candidates, lines...)
	}
	return candidates, reports
}

// Process extracts candidates from every description and runs a single
// filter pass over all of them, so dedup spans the whole batch.
func Process(t *Tables, descriptions []string) Result {
	candidates, reports := ExtractAll(t, descriptions)
	titles, verdicts := FilterWithStats(t, candidates)

	strategies := make(map[Strategy]int, len(Strategies))
	for _, report := range reports {
		strategies[report.Strategy]++
	}

	return Result{
		Titles: titles,
		Report: Report{
			Descriptions: reports,
			Strategies:   strategies,
			Candidates:   len(candidates),
			Verdicts:     verdicts,
		},
	}
}
