package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"go.uber.org/zap"

	"github.com/ytget/yt-batch/internal/batch"
	"github.com/ytget/yt-batch/internal/cli"
	"github.com/ytget/yt-batch/internal/config"
	"github.com/ytget/yt-batch/internal/download"
	"github.com/ytget/yt-batch/internal/history"
	"github.com/ytget/yt-batch/internal/logger"
	"github.com/ytget/yt-batch/internal/platform"
	"github.com/ytget/yt-batch/internal/resolver"
	"github.com/ytget/yt-batch/internal/ui"
)

// Version is set during build via -ldflags "-X main.version=X.Y.Z"
var version = "dev"

const (
	AppID       = "com.ytget.yt-batch"
	AppName     = "YT Batch"
	ProgramName = "yt-batch"
)

func main() {
	os.Exit(run())
}

func run() int {
	env, err := config.LoadEnv(config.DefaultEnvFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		return cli.ExitFailure
	}
	if err := logger.Init(env.LogMode); err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		return cli.ExitFailure
	}
	defer logger.Sync()

	args := os.Args[1:]
	if cli.IsHelp(args) {
		cli.Usage(os.Stdout, ProgramName)
		return cli.ExitOK
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("starting",
		zap.String("function", "main.run"),
		zap.String("version", version),
		zap.Bool("cli", len(args) > 0),
	)

	store, err := history.Open(env.HistoryPath)
	if err != nil {
		logger.Warn("history unavailable, keeping it in memory",
			zap.String("function", "main.run"),
			zap.String("path", env.HistoryPath),
			zap.Error(err),
		)
		store = history.NewStore(nil)
	}
	defer store.Close()

	ffmpegPath, err := platform.LocateFFmpeg(ctx, env.FFmpegLocation)
	if err != nil {
		logger.Warn("ffmpeg not found",
			zap.String("function", "main.run"),
			zap.Error(err),
		)
	}

	if err := download.EnsureInstalled(ctx); err != nil {
		logger.Warn("yt-dlp install check failed",
			zap.String("function", "main.run"),
			zap.Error(err),
		)
	}

	fetcher := download.NewService(download.WithFFmpegLocation(ffmpegPath))
	res := resolver.NewDefault()
	lister := platform.NewPlaylistLister()
	lister.SetTimeout(env.ResolveTimeout)

	if len(args) > 0 {
		outputDir, err := platform.GetHomeDownloadsDir()
		if err != nil {
			outputDir = filepath.Join(".", config.FallbackDownloadsDir)
		}
		return cli.Run(ctx, ProgramName, args, os.Stdout, cli.Deps{
			Resolver:         res,
			Expander:         lister,
			Fetcher:          fetcher,
			History:          store,
			DefaultOutputDir: outputDir,
			ResolveTimeout:   env.ResolveTimeout,
			ResolveParallel:  env.ResolveParallel,
		})
	}

	runGUI(ctx, env, store, fetcher, res, lister, ffmpegPath)
	return cli.ExitOK
}

func runGUI(
	ctx context.Context,
	env *config.Env,
	store *history.Store,
	fetcher download.Fetcher,
	res resolver.Resolver,
	lister resolver.PlaylistExpander,
	ffmpegPath string,
) {
	myApp := app.NewWithID(AppID)

	myWindow := myApp.NewWindow(fmt.Sprintf("%s v%s", AppName, version))
	myWindow.Resize(fyne.NewSize(ui.WindowWidth, ui.WindowHeight))

	settings := config.NewSettings(myApp)
	if err := platform.CreateDirectoryIfNotExists(settings.GetDownloadDirectory()); err != nil {
		logger.Warn("failed to ensure downloads dir",
			zap.String("function", "main.runGUI"),
			zap.Error(err),
		)
	}

	orch := batch.NewOrchestrator(fetcher, store, batch.WithNotifier(ui.NewNotifier(myApp)))

	// Closing the window cancels the run context so an active fetch stops
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	myWindow.SetOnClosed(cancel)

	ui.NewRootUI(ctx, myApp, myWindow, ui.Deps{
		Settings:        settings,
		Resolver:        res,
		Expander:        lister,
		Orchestrator:    orch,
		History:         store,
		FFmpegPath:      ffmpegPath,
		ResolveTimeout:  env.ResolveTimeout,
		ResolveParallel: env.ResolveParallel,
	})

	myWindow.ShowAndRun()
}
