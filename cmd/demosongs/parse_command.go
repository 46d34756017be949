package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"demosongs/internal/catalog"
	"demosongs/internal/songs"
)

func newParseCommand() *cobra.Command {
	var showCandidates bool

	cmd := &cobra.Command{
		Use:   "parse [FILE|-]",
		Short: "Extract song titles from a single description",
		Long: "Run the extractor on one description read from FILE or stdin and print the\n" +
			"accepted titles, one per line. The chosen strategy is reported on stderr.",
		Args:        cobra.MaximumNArgs(1),
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			source := "-"
			if len(args) == 1 {
				source = strings.TrimSpace(args[0])
			}
			description, err := readDescription(cmd.InOrStdin(), source)
			if err != nil {
				return err
			}

			tables := songs.DefaultTables()
			strategy, candidates := songs.Extract(tables, catalog.NormalizeText(description))

			acc := songs.NewAccumulator()
			verdicts := make([]songs.Verdict, len(candidates))
			for i, candidate := range candidates {
				song := songs.Normalize(candidate)
				verdicts[i] = songs.Check(tables, song, acc)
				if verdicts[i] == songs.Accepted {
					acc.Add(song)
				}
			}

			fmt.Fprintf(cmd.ErrOrStderr(), "strategy: %s (%d candidates, %d accepted)\n",
				strategy, len(candidates), acc.Len())

			out := cmd.OutOrStdout()
			if showCandidates {
				fmt.Fprintln(out, "# candidates")
				for i, candidate := range candidates {
					fmt.Fprintf(out, "%s\t%s\n", verdicts[i], candidate)
				}
				fmt.Fprintln(out, "# titles")
			}
			for _, title := range acc.Titles() {
				fmt.Fprintln(out, title)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&showCandidates, "candidates", false, "Also print raw candidates with their verdict")
	return cmd
}

func readDescription(stdin io.Reader, source string) (string, error) {
	if source == "" || source == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(source)
	if err != nil {
		return "", fmt.Errorf("read description: %w", err)
	}
	return string(data), nil
}
