// Command gamesman is the headless CLI of spec.md §6: solve, analyze,
// query, getstart, and getrandom sub-commands driving one game's
// solver manager against an on-disk database. Grounded on the
// teacher's cmd/chessplay-uci (a thin main.go wiring one protocol
// handler onto one engine), generalized from a single UCI loop to
// urfave/cli/v2's sub-command dispatch since there is no longer one
// protocol to run forever but five independent one-shot operations.
package main

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"os"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/gamesmanone/core/internal/errkind"
	"github.com/gamesmanone/core/internal/manager"
	"github.com/gamesmanone/core/internal/storage"
	"github.com/gamesmanone/core/internal/tiersolver"
	"github.com/gamesmanone/core/internal/types"
)

var (
	dataPathFlag = &cli.StringFlag{Name: "data-path", Value: defaultDataPath(), Usage: "directory holding the solved databases"}
	outputFlag   = &cli.StringFlag{Name: "output", Aliases: []string{"o"}, Usage: "write output to this file instead of stdout"}
	forceFlag    = &cli.BoolFlag{Name: "force", Aliases: []string{"f"}, Usage: "re-solve tiers already present on disk"}
	quietFlag    = &cli.BoolFlag{Name: "quiet", Aliases: []string{"q"}, Usage: "suppress progress output"}
	verboseFlag  = &cli.BoolFlag{Name: "verbose", Aliases: []string{"v"}, Usage: "emit tier-by-tier progress"}
)

// defaultDataPath resolves the platform-specific data directory
// (internal/storage.GetDatabaseDir) for the --data-path flag's
// default, falling back to a working-directory-relative path if the
// platform lookup fails (e.g. no home directory available).
func defaultDataPath() string {
	dir, err := storage.GetDatabaseDir()
	if err != nil {
		return "./gamesman-data"
	}
	return dir
}

func main() {
	app := &cli.App{
		Name:    "gamesman",
		Usage:   "strongly solve finite two-player perfect-information games",
		Version: "0.1.0",
		Flags:   []cli.Flag{dataPathFlag, outputFlag, forceFlag, quietFlag, verboseFlag},
		Commands: []*cli.Command{
			solveCommand,
			analyzeCommand,
			queryCommand,
			getstartCommand,
			getrandomCommand,
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitCode(err))
	}
}

// exitCode maps err to the process exit code spec.md §6 requires
// ("non-zero error codes are surfaced from the core's error
// taxonomy"). CLI-local argument errors (unknown game/variant) are
// InvalidArgument; everything else is classified by errkind.Of.
func exitCode(err error) int {
	if err == nil {
		return 0
	}
	if isArgError(err) {
		return errkind.InvalidArgument.ExitCode()
	}
	return errkind.Of(err).ExitCode()
}

// buildLogger honors -v/--verbose and -q/--quiet (spec.md §6), wiring
// go.uber.org/zap's SugaredLogger the way SPEC_FULL.md's Ambient Stack
// describes for solver progress.
func buildLogger(c *cli.Context) *zap.SugaredLogger {
	if c.Bool("quiet") {
		return zap.NewNop().Sugar()
	}
	cfg := zap.NewDevelopmentConfig()
	if !c.Bool("verbose") {
		cfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	}
	logger, err := cfg.Build()
	if err != nil {
		return zap.NewNop().Sugar()
	}
	return logger.Sugar()
}

// openManager parses <game> [<variant>] off the command's first two
// positional arguments and returns an initialized Manager ready for
// Solve/Analyze/queries.
func openManager(c *cli.Context) (*manager.Manager, error) {
	name := c.Args().Get(0)
	variant := c.Args().Get(1)
	g, err := lookupGame(name, variant)
	if err != nil {
		return nil, err
	}

	m := manager.New()
	if err := m.Init(g, c.String("data-path")); err != nil {
		return nil, err
	}
	m.SetLogger(buildLogger(c))
	return m, nil
}

var solveCommand = &cli.Command{
	Name:      "solve",
	Usage:     "strongly solve a game and write its tier databases to disk",
	ArgsUsage: "<game> [<variant>]",
	Action: func(c *cli.Context) error {
		m, err := openManager(c)
		if err != nil {
			return err
		}
		defer m.Close()

		err = m.Solve(tiersolver.Options{Force: c.Bool("force"), Verbose: c.Bool("verbose")})
		if err != nil {
			return err
		}
		if !c.Bool("quiet") {
			fmt.Println("solve complete")
		}
		return nil
	},
}

var analyzeCommand = &cli.Command{
	Name:      "analyze",
	Usage:     "print aggregate statistics over a solved game's tiers",
	ArgsUsage: "<game> [<variant>]",
	Action: func(c *cli.Context) error {
		m, err := openManager(c)
		if err != nil {
			return err
		}
		defer m.Close()

		stats, err := m.Analyze()
		if err != nil {
			return err
		}
		return writeOutput(c, stats.Summary()+"\n")
	},
}

var queryCommand = &cli.Command{
	Name:      "query",
	Usage:     "print the JSON value/remoteness/moves for one position",
	ArgsUsage: "<game> <variant> <position>",
	Action: func(c *cli.Context) error {
		m, err := openManager(c)
		if err != nil {
			return err
		}
		defer m.Close()

		tp, err := parseTierPosition(c.Args().Get(2))
		if err != nil {
			return err
		}

		probe, err := m.Disk().NewProbe()
		if err != nil {
			return err
		}
		defer probe.Close()

		resp := buildQueryResponse(m.Game(), probe, tp)
		body, err := json.MarshalIndent(resp, "", "  ")
		if err != nil {
			return err
		}
		return writeOutput(c, string(body)+"\n")
	},
}

var getstartCommand = &cli.Command{
	Name:      "getstart",
	Usage:     "print the game's initial position",
	ArgsUsage: "<game> [<variant>]",
	Action: func(c *cli.Context) error {
		m, err := openManager(c)
		if err != nil {
			return err
		}
		defer m.Close()

		tp := m.Game().InitialPosition()
		return writeOutput(c, tp.String()+"\n")
	},
}

var getrandomCommand = &cli.Command{
	Name:      "getrandom",
	Usage:     "print a random legal position reachable from the start",
	ArgsUsage: "<game> [<variant>]",
	Action: func(c *cli.Context) error {
		m, err := openManager(c)
		if err != nil {
			return err
		}
		defer m.Close()

		tp := randomPosition(m.Game())
		return writeOutput(c, tp.String()+"\n")
	},
}

// randomPosition walks a bounded number of random legal moves from the
// initial position, stopping early at a terminal position.
func randomPosition(g interface {
	InitialPosition() types.TierPosition
	GenerateMoves(types.TierPosition) []types.Move
	DoMove(types.TierPosition, types.Move) types.TierPosition
}) types.TierPosition {
	tp := g.InitialPosition()
	const maxPlies = 64
	for i := 0; i < maxPlies; i++ {
		moves := g.GenerateMoves(tp)
		if len(moves) == 0 {
			break
		}
		tp = g.DoMove(tp, moves[rand.Intn(len(moves))])
	}
	return tp
}

// writeOutput sends body to -o/--output's file when set, else stdout.
func writeOutput(c *cli.Context, body string) error {
	path := c.String("output")
	if path == "" {
		fmt.Print(body)
		return nil
	}
	return os.WriteFile(path, []byte(body), 0o644)
}
