// Package main provides the entry point for the EngiVibe drawing studio.
package main

import (
	"flag"
	"log"
	"os"
	"time"

	"github.com/CarryCash/EngiVibe-2.5-Pro/internal/app"
	"github.com/CarryCash/EngiVibe-2.5-Pro/internal/generate"
	"github.com/CarryCash/EngiVibe-2.5-Pro/internal/version"
	"github.com/CarryCash/EngiVibe-2.5-Pro/ui/mainwindow"

	fyneapp "fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/dialog"
)

const appTitle = "EngiVibe Studio"

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	apiKey := flag.String("key", "", "drawing service API key (defaults to ANTHROPIC_API_KEY)")
	model := flag.String("model", generate.DefaultModel, "drawing service model")
	dev := flag.Bool("dev", false, "watch the binary and offer to restart on rebuild")
	flag.Parse()

	key := *apiKey
	if key == "" {
		key = os.Getenv("ANTHROPIC_API_KEY")
	}
	if key == "" {
		log.Println("no API key set; drawing generation will fail until one is provided")
	}

	log.Printf("Starting %s v%s", appTitle, version.Version)

	fyneApp := fyneapp.New()
	fyneApp.Settings().SetTheme(&app.StudioTheme{})

	state := app.NewState()
	generator := generate.NewService(key, *model)

	win := mainwindow.New(fyneApp, state, generator)

	if *dev {
		setupHotReload(win)
	}

	win.ShowAndRun()
}

// setupHotReload configures automatic restart detection when the binary is
// recompiled.
func setupHotReload(win *mainwindow.MainWindow) {
	reloader := app.NewHotReloader(2 * time.Second)
	if reloader == nil {
		log.Println("Hot reload: unable to determine executable path")
		return
	}

	log.Printf("Hot reload: watching %s (modified %s)",
		reloader.ExecPath(), reloader.StartupTime().Format("15:04:05"))

	reloader.OnNewBinary(func() {
		log.Println("Hot reload: newer binary detected")
		dialog.ShowConfirm("New Version Available",
			"The application binary has been updated.\nRestart now?",
			func(restart bool) {
				if restart {
					log.Println("Hot reload: restarting...")
					if err := reloader.Restart(); err != nil {
						log.Printf("Hot reload: restart failed: %v", err)
					}
					return
				}
				reloader.ResetBaseline()
				reloader.Start()
			}, win)
	})

	reloader.Start()
}
