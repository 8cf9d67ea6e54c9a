package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"runcat/internal/config"
	"runcat/internal/engine"
	"runcat/internal/server"
	"runcat/internal/tray"
	"runcat/internal/utils"
)

// runApp wires configuration, engine, control API, and tray together and
// blocks until the tray exits.
func runApp() error {
	paths := utils.NewPaths(utils.DefaultRoot())
	paths.Deploy()

	settings, settingsErr := config.LoadSettings(paths)

	logger := utils.NewLogger(settings.Logging.File)
	defer logger.Close()
	if settingsErr != nil {
		logger.Writef("Settings: %v (continuing with defaults)", settingsErr)
	}

	state := config.LoadState(paths.StateFile(), logger)

	eng := engine.New(engine.Options{
		AssetsDir: settings.Assets.Dir,
		State:     state,
		Renderer:  tray.IconRenderer{},
		Logger:    logger,
	})

	var api *server.Server
	if settings.API.Enabled {
		if os.Getenv("GIN_MODE") == "" {
			gin.SetMode(gin.ReleaseMode)
		}
		api = server.New(eng, logger)
	}

	hideConsoleWindow()

	// Let SIGINT/SIGTERM unwind through the tray loop so teardown runs once.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-quit
		logger.Write("Signal received, shutting down")
		tray.Quit()
	}()

	var startErr error
	tray.Run(eng, logger,
		func() error {
			if err := eng.Start(); err != nil {
				startErr = err
				return err
			}
			if api != nil {
				api.Start(settings.API.Host, settings.API.Port)
			}
			return nil
		},
		func() {
			eng.Stop()
			if api != nil {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				api.Shutdown(ctx)
			}
		},
	)

	return startErr
}
