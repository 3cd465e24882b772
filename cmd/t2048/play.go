package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-2048/internal/platform/tui"
	"github.com/vovakirdan/tui-2048/internal/storage"
)

var flagSize int

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a game",
	Long: `Deal a board and start playing right away.

Controls:
  Arrows/WASD/hjkl  - Slide tiles
  R                 - Restart (after game over)
  Esc/B             - Back to menu
  Ctrl+S            - Save a screenshot
  Q/Ctrl+C          - Quit

Examples:
  t2048 play
  t2048 play --size 5
  t2048 play --seed 42
  t2048 play --config ./my-2048.yaml`,
	Args: cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		return runApp(true)
	},
}

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start with the interactive menu",
	Long: `Start in interactive menu mode.

Use arrow keys or j/k to navigate, left/right to change the board size,
Enter to select. After a game you return to the menu to play again.

Examples:
  t2048 menu
  t2048 menu --fps 30
  t2048 menu --db ./results.db`,
	Args: cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		return runApp(false)
	},
}

func init() {
	playCmd.Flags().IntVar(&flagSize, "size", 0, "Board size (overrides config)")
}

func runApp(startInGame bool) error {
	gameCfg, err := loadGameConfig()
	if err != nil {
		return err
	}
	if flagSize != 0 {
		gameCfg.Board.Size = flagSize
		if err := gameCfg.Validate(); err != nil {
			return err
		}
	}

	// The UI owns the terminal; logs go to --log-file or nowhere
	logger, closeLog, err := newLogger(io.Discard, "t2048")
	if err != nil {
		return err
	}
	defer closeLog()

	// Get terminal size; unknown sizes fall back to the defaults
	width, height, _ := term.GetSize(int(os.Stdout.Fd()))

	// Open result storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open results database: %v\n", err)
		// Continue without storage - game still works
		store = nil
	}
	if store != nil {
		defer store.Close()
	}

	err = tui.Run(tui.AppOptions{
		Game:        gameCfg,
		Runtime:     tui.RuntimeFor(width, height, flagFPS, flagSeed),
		Store:       store,
		Logger:      logger,
		StartInGame: startInGame,
	})
	if err != nil {
		return fmt.Errorf("running game: %w", err)
	}
	return nil
}
