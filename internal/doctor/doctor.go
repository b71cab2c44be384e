// Package doctor checks that a grove installation is in working order:
// config directory, world file, journal database, and terminal capability.
package doctor

import (
	"fmt"
	"os"

	"github.com/muesli/termenv"
	"golang.org/x/term"

	"grove/config"
	"grove/internal/game"
	"grove/internal/journal"
)

type Status string

const (
	StatusOK   Status = "OK"
	StatusWarn Status = "WARN"
	StatusFail Status = "FAIL"
)

type CheckResult struct {
	Name    string
	Status  Status
	Summary string
	Actions []string
}

type Report struct {
	Checks []CheckResult
}

func (r Report) HasFailures() bool {
	for _, check := range r.Checks {
		if check.Status == StatusFail {
			return true
		}
	}
	return false
}

func (r Report) ExitCode() int {
	if r.HasFailures() {
		return 1
	}
	return 0
}

func GenerateReport() Report {
	return Report{Checks: []CheckResult{
		checkConfigDir(),
		checkWorld(),
		checkDatabase(),
		checkTerminal(),
	}}
}

func checkConfigDir() CheckResult {
	dir, err := config.GetConfigDir()
	if err != nil {
		return CheckResult{
			Name:    "config",
			Status:  StatusFail,
			Summary: fmt.Sprintf("config directory unavailable: %v", err),
		}
	}
	return CheckResult{
		Name:    "config",
		Status:  StatusOK,
		Summary: dir,
	}
}

func checkWorld() CheckResult {
	path, err := config.GetWorldPath()
	if err != nil {
		return CheckResult{Name: "world", Status: StatusFail, Summary: err.Error()}
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return CheckResult{
			Name:    "world",
			Status:  StatusWarn,
			Summary: "no world file yet; the embedded world will be written on first run",
			Actions: []string{"run `grove` once, or `grove worlds path`"},
		}
	}
	world, err := game.LoadWorld(path)
	if err != nil {
		return CheckResult{
			Name:    "world",
			Status:  StatusFail,
			Summary: fmt.Sprintf("world file does not validate: %v", err),
			Actions: []string{fmt.Sprintf("fix %s or delete it to restore the default", path)},
		}
	}
	return CheckResult{
		Name:    "world",
		Status:  StatusOK,
		Summary: fmt.Sprintf("%q (%d scenes)", world.Name, len(world.Scenes)),
	}
}

func checkDatabase() CheckResult {
	path, err := config.GetDatabasePath()
	if err != nil {
		return CheckResult{Name: "journal", Status: StatusFail, Summary: err.Error()}
	}
	store, err := journal.Open(path)
	if err != nil {
		return CheckResult{
			Name:    "journal",
			Status:  StatusFail,
			Summary: fmt.Sprintf("journal database unusable: %v", err),
		}
	}
	store.Close()
	return CheckResult{Name: "journal", Status: StatusOK, Summary: path}
}

func checkTerminal() CheckResult {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return CheckResult{
			Name:    "terminal",
			Status:  StatusWarn,
			Summary: "stdout is not a terminal",
		}
	}
	profile := termenv.ColorProfile()
	if profile != termenv.TrueColor {
		return CheckResult{
			Name:    "terminal",
			Status:  StatusWarn,
			Summary: "terminal lacks TrueColor; gradients fall back to solid colors",
		}
	}
	return CheckResult{Name: "terminal", Status: StatusOK, Summary: "TrueColor"}
}
