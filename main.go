// Command blockfall runs the Blockfall falling-block game.
//
// Commands:
//  1. "play" (default) – plays in the terminal with keyboard input and optional sound
//  2. "mcp" – runs an MCP stdio server so an agent can drive sessions through tools
//  3. "rulesets" – lists, validates and shows the progression of ruleset files
//
// Flags control the ruleset directory, the piece seed, debug logging and a
// log file. Each global flag can also be set from the environment or a .env file.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/joho/godotenv"
	"github.com/urfave/cli/v3"

	"github.com/wricardo/blockfall/game/config"
	"github.com/wricardo/blockfall/game/service"
	"github.com/wricardo/blockfall/game/session"
	"github.com/wricardo/blockfall/transport/mcp"
	"github.com/wricardo/blockfall/transport/sound"
	"github.com/wricardo/blockfall/transport/terminal"
	"github.com/wricardo/blockfall/validate"
)

// Version information
const (
	Version = "1.0.0"
	AppName = "Blockfall"
)

const (
	sessionMaxAge         = 24 * time.Hour
	sessionCleanupEvery   = 1 * time.Hour
	defaultProgressionCap = 30
)

var errInvalidRulesets = errors.New("some rulesets have errors")

// main loads the environment and runs the command tree.
func main() {
	// Load .env file if it exists (ignore error if not found)
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Warning: Error loading .env file: %v", err)
	}

	if err := newApp().Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", strings.ToLower(AppName), err)
		os.Exit(1)
	}
}

// newApp builds the command tree. Flags on the root are inherited by every command.
func newApp() *cli.Command {
	return &cli.Command{
		Name:    "blockfall",
		Usage:   "a falling-block puzzle game for the terminal and MCP agents",
		Version: Version,
		Flags: append([]cli.Flag{
			&cli.StringFlag{
				Name:    "config-dir",
				Value:   "configs",
				Usage:   "directory containing ruleset files",
				Sources: cli.EnvVars("BLOCKFALL_CONFIG_DIR", "CONFIG_DIR"),
			},
			&cli.StringFlag{
				Name:    "ruleset",
				Usage:   "default ruleset for new sessions (default: classic)",
				Sources: cli.EnvVars("BLOCKFALL_RULESET"),
			},
			&cli.Int64Flag{
				Name:    "seed",
				Usage:   "piece sequence seed: the nth session of a run uses seed+n-1, so runs replay; 0 seeds from the clock",
				Sources: cli.EnvVars("BLOCKFALL_SEED"),
			},
			&cli.BoolFlag{
				Name:    "debug",
				Usage:   "enable debug logging",
				Sources: cli.EnvVars("BLOCKFALL_DEBUG"),
			},
			&cli.StringFlag{
				Name:    "log-file",
				Usage:   "write logs to this file (play discards logs without it)",
				Sources: cli.EnvVars("BLOCKFALL_LOG_FILE"),
			},
		}, playFlags()...),
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			if cmd.Bool("debug") {
				log.SetFlags(log.LstdFlags | log.Lshortfile)
			} else {
				log.SetFlags(log.LstdFlags)
			}
			return ctx, nil
		},
		Action: runPlay,
		Commands: []*cli.Command{
			{
				Name:   "play",
				Usage:  "play in the terminal",
				Action: runPlay,
			},
			{
				Name:   "mcp",
				Usage:  "run an MCP stdio server",
				Action: runStdioMCP,
			},
			{
				Name:  "rulesets",
				Usage: "inspect ruleset files",
				Commands: []*cli.Command{
					{
						Name:   "list",
						Usage:  "list available rulesets",
						Action: runRulesetsList,
					},
					{
						Name:      "validate",
						Usage:     "validate ruleset files (default: every file in --config-dir)",
						ArgsUsage: "[file...]",
						Action:    runRulesetsValidate,
					},
					{
						Name:      "show",
						Usage:     "show a ruleset's level progression",
						ArgsUsage: "<name>",
						Flags: []cli.Flag{
							&cli.IntFlag{Name: "levels", Value: defaultProgressionCap, Usage: "maximum levels to show"},
						},
						Action: runRulesetsShow,
					},
					{
						Name:      "create",
						Usage:     "write a new ruleset file derived from an existing ruleset",
						ArgsUsage: "<name>",
						Flags: []cli.Flag{
							&cli.StringFlag{Name: "from", Value: config.DefaultRulesetName, Usage: "ruleset to start from"},
							&cli.StringFlag{Name: "description", Usage: "description of the new ruleset"},
							&cli.IntFlag{Name: "width", Usage: "board width"},
							&cli.IntFlag{Name: "height", Usage: "board height"},
							&cli.IntFlag{Name: "lines-per-level", Usage: "cleared lines per level"},
							&cli.IntFlag{Name: "base-gravity-ms", Usage: "gravity interval at level 1"},
							&cli.IntFlag{Name: "gravity-step-ms", Usage: "gravity speed-up per level"},
							&cli.IntFlag{Name: "min-gravity-ms", Usage: "fastest gravity interval"},
							&cli.BoolFlag{Name: "force", Usage: "overwrite an existing ruleset"},
						},
						Action: runRulesetsCreate,
					},
				},
			},
			{
				Name:  "version",
				Usage: "show version information",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					fmt.Fprintf(cmd.Root().Writer, "%s v%s\n", AppName, Version)
					return nil
				},
			},
		},
	}
}

func playFlags() []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{
			Name:    "sound",
			Usage:   "play sound effects",
			Sources: cli.EnvVars("BLOCKFALL_SOUND"),
		},
		&cli.DurationFlag{
			Name:  "frame",
			Value: terminal.DefaultFrameInterval,
			Usage: "frame interval",
		},
	}
}

// initializeServices wires the config and session managers into the game service.
// A non-empty ruleset becomes the default for sessions created without one.
func initializeServices(configDir, ruleset string, seed int64) (service.GameService, *session.Manager, error) {
	configManager, err := config.NewManager(configDir)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create config manager: %w", err)
	}
	if ruleset != "" {
		if err := configManager.SetDefault(ruleset); err != nil {
			return nil, nil, fmt.Errorf("failed to set default ruleset: %w", err)
		}
	}

	sessionManager := session.NewManager(session.WithSeed(seed))
	return service.NewGameService(sessionManager, configManager), sessionManager, nil
}

// sessionCleanupRoutine periodically removes sessions that have not been accessed
// within sessionMaxAge, until ctx is done.
func sessionCleanupRoutine(ctx context.Context, manager *session.Manager, every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			removed := manager.CleanupExpiredSessions(sessionMaxAge)
			if removed > 0 {
				log.Printf("Cleaned up %d expired sessions", removed)
			}
		}
	}
}

// runPlay starts a session and runs the terminal game until the player quits.
func runPlay(ctx context.Context, cmd *cli.Command) error {
	logOut := io.Discard
	if path := cmd.String("log-file"); path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		defer f.Close()
		logOut = f
	}
	// The screen owns the terminal; stray log lines would corrupt it
	log.SetOutput(logOut)
	defer log.SetOutput(os.Stderr)

	svc, _, err := initializeServices(cmd.String("config-dir"), cmd.String("ruleset"), cmd.Int64("seed"))
	if err != nil {
		return err
	}

	info, err := svc.CreateSession(ctx, "")
	if err != nil {
		return err
	}

	var player sound.Player = sound.Nop{}
	if cmd.Bool("sound") {
		speaker, err := sound.NewSpeaker()
		if err != nil {
			log.Printf("Sound disabled: %v", err)
		} else {
			player = speaker
		}
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("failed to create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("failed to initialize screen: %w", err)
	}
	defer screen.Fini()

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := terminal.NewApp(svc, screen, info.ID, terminal.Options{
		FrameInterval: cmd.Duration("frame"),
		Sound:         player,
	})
	if err != nil {
		return err
	}

	log.Printf("Starting %s v%s (session %s, ruleset %s)", AppName, Version, info.ID, info.RulesetName)
	return app.Run(ctx)
}

// runStdioMCP serves the MCP tools over stdin/stdout.
func runStdioMCP(ctx context.Context, cmd *cli.Command) error {
	// stdout carries the protocol
	log.SetOutput(os.Stderr)

	svc, sessions, err := initializeServices(cmd.String("config-dir"), cmd.String("ruleset"), cmd.Int64("seed"))
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	go sessionCleanupRoutine(ctx, sessions, sessionCleanupEvery)

	log.Printf("Starting %s v%s MCP stdio server", AppName, Version)
	return mcp.NewServer(svc, Version).ServeStdio()
}

func runRulesetsList(ctx context.Context, cmd *cli.Command) error {
	svc, _, err := initializeServices(cmd.String("config-dir"), "", 0)
	if err != nil {
		return err
	}

	rulesets, err := svc.ListRulesets(ctx)
	if err != nil {
		return err
	}

	w := cmd.Root().Writer
	for _, info := range rulesets {
		source := info.Filename
		if source == "" {
			source = "built-in"
		}
		fmt.Fprintf(w, "%-10s %2dx%-3d %-14s %s\n", info.RulesetID, info.Width, info.Height, source, info.Description)
	}
	return nil
}

func runRulesetsValidate(ctx context.Context, cmd *cli.Command) error {
	var results []validate.Result
	if files := cmd.Args().Slice(); len(files) > 0 {
		for _, file := range files {
			results = append(results, validate.File(file))
		}
	} else {
		var err error
		results, err = validate.Dir(cmd.String("config-dir"))
		if err != nil {
			return err
		}
	}

	if !validate.WriteReport(cmd.Root().Writer, results) {
		return errInvalidRulesets
	}
	return nil
}

func runRulesetsShow(ctx context.Context, cmd *cli.Command) error {
	name := cmd.Args().First()
	if name == "" {
		return errors.New("ruleset name required")
	}
	levels := cmd.Int("levels")
	if levels < 1 {
		return fmt.Errorf("--levels must be at least 1, got %d", levels)
	}

	svc, _, err := initializeServices(cmd.String("config-dir"), "", 0)
	if err != nil {
		return err
	}

	rules, err := svc.LoadRuleset(ctx, name)
	if err != nil {
		return err
	}

	validate.WriteProgression(cmd.Root().Writer, rules, levels)
	return nil
}

func runRulesetsCreate(ctx context.Context, cmd *cli.Command) error {
	name := cmd.Args().First()
	if name == "" {
		return errors.New("ruleset name required")
	}

	svc, _, err := initializeServices(cmd.String("config-dir"), "", 0)
	if err != nil {
		return err
	}

	if _, err := svc.LoadRuleset(ctx, name); err == nil && !cmd.Bool("force") {
		return fmt.Errorf("ruleset %s already exists (use --force to overwrite)", name)
	}

	base, err := svc.LoadRuleset(ctx, cmd.String("from"))
	if err != nil {
		return err
	}

	rules := *base
	rules.LineScores = append([]int(nil), base.LineScores...)
	rules.Name = name
	if cmd.IsSet("description") {
		rules.Description = cmd.String("description")
	}
	for flag, field := range map[string]*int{
		"width":           &rules.Width,
		"height":          &rules.Height,
		"lines-per-level": &rules.LinesPerLevel,
		"base-gravity-ms": &rules.BaseGravityMs,
		"gravity-step-ms": &rules.GravityStepMs,
		"min-gravity-ms":  &rules.MinGravityMs,
	} {
		if cmd.IsSet(flag) {
			*field = cmd.Int(flag)
		}
	}

	if err := svc.SaveRuleset(ctx, name, &rules); err != nil {
		return err
	}

	fmt.Fprintf(cmd.Root().Writer, "Created ruleset %s (%dx%d) in %s\n", name, rules.Width, rules.Height, cmd.String("config-dir"))
	return nil
}
