package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"slices"
	"strings"
	"time"

	"stepsearch/config"
	"stepsearch/engine"
	"stepsearch/experiments"
	"stepsearch/problem"
	"stepsearch/searcher"

	"github.com/muesli/termenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	configPath string
	interval   time.Duration
	algorithms []string
	outDir     string
	outFile    string
	maxSteps   int

	rootCmd = &cobra.Command{
		Use:   "stepsearch",
		Short: "Step through classic search algorithms one node at a time",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
			zerolog.SetGlobalLevel(cfg.Level())
			loaded = cfg
			return nil
		},
		SilenceUsage: true,
	}

	runCmd = &cobra.Command{
		Use:   "run",
		Short: "Run the configured algorithm and print every touched node",
		RunE:  runSearch,
	}

	compareCmd = &cobra.Command{
		Use:   "compare",
		Short: "Run several algorithms on the configured problem and write a CSV report",
		RunE:  runCompare,
	}

	exportCmd = &cobra.Command{
		Use:   "export",
		Short: "Write the search tree in the interchange format",
		RunE:  runExport,
	}

	loaded config.Config
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "YAML config file (env STEPSEARCH_* overrides it)")

	rootCmd.AddCommand(runCmd)
	runCmd.Flags().DurationVar(&interval, "interval", 0, "Delay between steps, 0 to fast-forward")

	rootCmd.AddCommand(compareCmd)
	compareCmd.Flags().StringSliceVar(&algorithms, "algorithms", kindNames(searcher.Kinds), "Algorithms to compare")
	compareCmd.Flags().StringVar(&outDir, "out", "experiments", "Directory for reports")

	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringVarP(&outFile, "output", "o", "-", "Output file, - for stdout")
	exportCmd.Flags().IntVar(&maxSteps, "steps", 0, "Steps to take before exporting, 0 to run to termination")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runSearch(cmd *cobra.Command, args []string) error {
	session, err := engine.NewSession(loaded)
	if err != nil {
		return err
	}
	if session.Algorithm == nil {
		return fmt.Errorf("no %q search for the %s problem", loaded.Search.Algorithm, loaded.Problem.Kind)
	}

	out := termenv.NewOutput(os.Stdout)
	show := func(n *searcher.Node) bool {
		if n != nil {
			fmt.Fprintln(out, describe(out, session, n))
		}
		return true
	}

	if interval > 0 {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		if err := session.Play(ctx, interval, show); err != nil {
			log.Warn().Msgf("stopped: %v", err)
		}
	} else {
		for !session.Status().Terminal() {
			show(session.Step())
		}
	}

	summarize(out, session)
	return nil
}

func runCompare(cmd *cobra.Command, args []string) error {
	kinds := make([]searcher.Kind, 0, len(algorithms))
	for _, name := range algorithms {
		kinds = append(kinds, searcher.Kind(strings.TrimSpace(name)))
	}
	dir, err := experiments.Run(outDir, "compare", loaded, kinds)
	if err != nil {
		return err
	}
	log.Info().Msgf("report written to %s", dir)
	return nil
}

func runExport(cmd *cobra.Command, args []string) error {
	session, err := engine.NewSession(loaded)
	if err != nil {
		return err
	}
	if session.Algorithm == nil {
		return fmt.Errorf("no %q search for the %s problem", loaded.Search.Algorithm, loaded.Problem.Kind)
	}

	if maxSteps > 0 {
		for i := 0; i < maxSteps && !session.Status().Terminal(); i++ {
			session.Step()
		}
	} else {
		for !session.Status().Terminal() {
			session.FastForward()
		}
	}

	w := os.Stdout
	if outFile != "-" {
		f, err := os.Create(outFile)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		w = f
	}
	return problem.EncodeTree(w, session.Export())
}

func describe(out *termenv.Output, session *engine.Session, n *searcher.Node) string {
	status := session.Status()
	color := "6"
	switch status {
	case searcher.Completed:
		color = "2"
	case searcher.Failed:
		color = "1"
	}
	prefix := out.String(fmt.Sprintf("%-9s", status)).Foreground(out.Color(color))

	line := fmt.Sprintf("%s %s %s  g=%g h=%g depth=%d", prefix, n.ID, n.Name, n.G, n.H, n.Depth)
	switch {
	case n.Pruned:
		line += out.String(" pruned by " + n.PrunedBy).Faint().String()
	case n.Cutoff:
		line += out.String(" cutoff").Faint().String()
	case n.Evaluated:
		line += fmt.Sprintf(" value=%g", n.Value)
	case n.Visits > 0:
		line += fmt.Sprintf(" visits=%d mean=%.3f", n.Visits, n.Mean())
	}
	return line
}

func summarize(out *termenv.Output, session *engine.Session) {
	fmt.Fprintln(out, out.String(session.Status().String()).Bold())
	attrs := session.Algorithm.Attributes()
	keys := make([]string, 0, len(attrs))
	for key := range attrs {
		keys = append(keys, key)
	}
	slices.Sort(keys)
	for _, key := range keys {
		fmt.Fprintf(out, "  %s: %g\n", key, attrs[key])
	}

	goal := session.Goal()
	if goal == nil {
		return
	}
	moves := make([]string, 0, goal.Depth)
	for _, action := range goal.Path() {
		if session.Config.Problem.Kind == problem.KindPuzzle {
			moves = append(moves, problem.DirectionName(action))
		} else {
			moves = append(moves, fmt.Sprint(int(action)))
		}
	}
	fmt.Fprintf(out, "  path (%d): %s\n", len(moves), strings.Join(moves, " "))
}

func kindNames(kinds []searcher.Kind) []string {
	names := make([]string, len(kinds))
	for i, kind := range kinds {
		names[i] = string(kind)
	}
	return names
}
