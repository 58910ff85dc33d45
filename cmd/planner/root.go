package main

import (
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/lvlath-planner/sasplan/planio"
	"github.com/lvlath-planner/sasplan/search"
)

var (
	searchSpec        string
	planFile          string
	previousPortfolio int
	gateUnitCost      bool
	gateNonUnitCost   bool
	gateAlways        bool
	bound             int64
	seed              int64
	useCache          bool
	timeLimit         time.Duration
	lazy              bool

	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "planner [task-file]",
	Short: "Solve a grounded SAS+ planning task (spec.md §4.9)",
	Long: `planner reads a grounded SAS+ task (spec.md §6's line-oriented format)
from task-file, or from stdin when no file is given, runs the search
configuration named by --search, and writes the resulting plan.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlanner,
}

func init() {
	flags := rootCmd.Flags()
	flags.StringVar(&searchSpec, "search", "astar(blind())", "search algorithm specification")
	flags.StringVar(&planFile, "internal-plan-file", planio.DefaultFileName, "plan output filename")
	flags.IntVar(&previousPortfolio, "internal-previous-portfolio-plans", 0, "anytime-portfolio numbering offset")
	flags.BoolVar(&gateUnitCost, "if-unit-cost", false, "only run if the task is unit cost")
	flags.BoolVar(&gateNonUnitCost, "if-non-unit-cost", false, "only run if the task is non-unit cost")
	flags.BoolVar(&gateAlways, "always", false, "always run regardless of cost type (default when no gate flag is given)")
	flags.Int64Var(&bound, "bound", -1, "skip successors whose g would reach or exceed this cost (-1: unbounded)")
	flags.Int64Var(&seed, "seed", 0, "PRNG seed for any sampling open list")
	flags.BoolVar(&useCache, "cache", false, "memoise heuristic evaluations per state (heuristic/cache)")
	flags.DurationVar(&timeLimit, "time-limit", 0, "wall-clock search budget, e.g. 30s (0: unbounded)")
	flags.BoolVar(&lazy, "lazy", false, "defer heuristic evaluation until a successor is popped, not when it is generated")
}

// Execute runs rootCmd and returns the documented exit code (spec.md §6)
// for the caller to pass to os.Exit; it is the single exit funnel of
// spec.md §7 — every error returned from RunE is translated here, never
// left for cobra's own default stderr-and-exit-1 behaviour.
func Execute() search.ExitCode {
	var zerr error
	logger, zerr = zap.NewProduction()
	if zerr != nil {
		logger = zap.NewNop()
	}
	defer logger.Sync()

	rootCmd.SilenceUsage = true
	rootCmd.SilenceErrors = true

	if err := rootCmd.Execute(); err != nil {
		return exitFunnel(err)
	}

	return search.ExitSuccess
}
