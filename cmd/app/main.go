package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"grove/config"
	"grove/internal/doctor"
	"grove/internal/game"
	"grove/internal/journal"
	"grove/internal/timeutil"
	"grove/internal/tui"
	"grove/version"
)

var startLabelFlag string

var rootCmd = &cobra.Command{
	Use:   "grove",
	Short: "A terminal adventure in the Whispering Grove",
	RunE: func(cmd *cobra.Command, args []string) error {
		if !term.IsTerminal(int(os.Stdin.Fd())) {
			return fmt.Errorf("grove needs an interactive terminal")
		}

		if err := setupLogging(); err != nil {
			return err
		}

		prefs, err := config.LoadPreferences()
		if err != nil {
			log.Printf("preferences unreadable, starting fresh: %v", err)
		}

		worldPath, err := resolveWorldPath(prefs)
		if err != nil {
			return err
		}
		world, err := game.LoadWorld(worldPath)
		if err != nil {
			return fmt.Errorf("load world: %w", err)
		}

		opts := tui.Options{
			World:      world,
			WorldPath:  worldPath,
			Prefill:    prefs.PlayerName,
			StartLabel: startLabelFlag,
			RememberName: func(name string) {
				prefs.PlayerName = name
				if err := config.SavePreferences(prefs); err != nil {
					log.Printf("preferences not saved: %v", err)
				}
			},
		}

		if dbPath, err := config.GetDatabasePath(); err == nil {
			store, err := journal.Open(dbPath)
			if err != nil {
				// Play on without persistence rather than refusing to start.
				log.Printf("journal store unavailable: %v", err)
			} else {
				opts.Store = store
				defer store.Close()
			}
		}

		watcher, err := game.WatchWorld(worldPath)
		if err != nil {
			log.Printf("world watching disabled: %v", err)
		} else {
			opts.Watcher = watcher
			defer watcher.Close()
		}

		return tui.Start(opts)
	},
}

var worldsCmd = &cobra.Command{
	Use:   "worlds",
	Short: "Work with world files",
}

var worldsValidateCmd = &cobra.Command{
	Use:   "validate [path]",
	Short: "Parse and validate a world file",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var path string
		if len(args) == 1 {
			path = args[0]
		} else {
			prefs, _ := config.LoadPreferences()
			resolved, err := resolveWorldPath(prefs)
			if err != nil {
				return err
			}
			path = resolved
		}

		world, err := game.LoadWorld(path)
		if err != nil {
			return err
		}
		fmt.Printf("%s: ok (%q, %d scenes, entry %q)\n", path, world.Name, len(world.Scenes), world.EntryScene)
		return nil
	},
}

var worldsPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the active world file path",
	RunE: func(cmd *cobra.Command, args []string) error {
		prefs, _ := config.LoadPreferences()
		path, err := resolveWorldPath(prefs)
		if err != nil {
			return err
		}
		fmt.Println(path)
		return nil
	},
}

var journalCmd = &cobra.Command{
	Use:   "journal",
	Short: "Browse recorded sessions",
}

var journalListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recorded sessions",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()

		sessions, err := store.Sessions(context.Background())
		if err != nil {
			return err
		}
		if len(sessions) == 0 {
			fmt.Println("No sessions recorded yet.")
			return nil
		}
		now := time.Now().UTC()
		for _, s := range sessions {
			player := s.Player
			if player == "" {
				player = "traveler"
			}
			fmt.Printf("%s  %-16s  %s  %s\n", s.ID, timeutil.FormatRelativeTime(s.StartedAt, now), player, s.World)
		}
		return nil
	},
}

var journalShowCmd = &cobra.Command{
	Use:   "show <session-id>",
	Short: "Print a session's transcript",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()

		events, err := store.Events(context.Background(), args[0])
		if err != nil {
			return err
		}
		if len(events) == 0 {
			fmt.Printf("No events recorded for session %s.\n", args[0])
			return nil
		}
		for _, e := range events {
			fmt.Printf("%s  %-7s  %s\n", e.At.Format(time.RFC3339), e.Kind, e.Payload)
		}
		return nil
	},
}

var journalClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete all recorded sessions",
	RunE: func(cmd *cobra.Command, args []string) error {
		confirmed := false
		form := huh.NewForm(huh.NewGroup(
			huh.NewConfirm().
				Title("Delete all recorded sessions?").
				Description("This cannot be undone.").
				Value(&confirmed),
		))
		if err := form.Run(); err != nil {
			return err
		}
		if !confirmed {
			fmt.Println("Nothing deleted.")
			return nil
		}

		store, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()

		if err := store.Clear(context.Background()); err != nil {
			return err
		}
		fmt.Println("Journal cleared.")
		return nil
	},
}

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check that grove is ready to play",
	Run: func(cmd *cobra.Command, args []string) {
		report := doctor.GenerateReport()
		for _, check := range report.Checks {
			fmt.Printf("[%-4s] %-8s %s\n", check.Status, check.Name, check.Summary)
			for _, action := range check.Actions {
				fmt.Printf("       → %s\n", action)
			}
		}
		os.Exit(report.ExitCode())
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the grove version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(version.Get())
	},
}

// resolveWorldPath picks the world file: an explicit preference wins,
// otherwise the default location, seeded with the embedded world on first
// run.
func resolveWorldPath(prefs config.Preferences) (string, error) {
	if prefs.WorldPath != "" {
		return prefs.WorldPath, nil
	}
	path, err := config.GetWorldPath()
	if err != nil {
		return "", err
	}
	if err := game.EnsureWorldFile(path); err != nil {
		return "", err
	}
	return path, nil
}

func openStore() (*journal.Store, error) {
	dbPath, err := config.GetDatabasePath()
	if err != nil {
		return nil, err
	}
	return journal.Open(dbPath)
}

// setupLogging sends the standard logger to a file; stdout belongs to the
// TUI while it runs.
func setupLogging() error {
	logPath, err := config.GetTUILogPath()
	if err != nil {
		return err
	}
	logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return err
	}
	log.SetOutput(logFile)
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
	return nil
}

func main() {
	rootCmd.Flags().StringVar(&startLabelFlag, "start-label", "", "label for the welcome screen's start control")

	worldsCmd.AddCommand(worldsValidateCmd, worldsPathCmd)
	journalCmd.AddCommand(journalListCmd, journalShowCmd, journalClearCmd)
	rootCmd.AddCommand(worldsCmd, journalCmd, doctorCmd, versionCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
