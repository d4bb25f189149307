// logdemo writes a few records through a drainlog Manager with console,
// debugger and daily file sinks while a background flusher drains them.
//
// Usage:
//
//	logdemo [--config drainlog.yaml [--watch]] [--dir ./logs] [--interval 1s] [--duration 1s]
//
// Without --config the Manager carries three sinks: "console" at notice,
// "debugger" at debug and "log" at info writing {dir}/Test.log. With
// --config the sinks come from the file and --watch re-applies levels and
// options when the file changes.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/urfave/cli/v3"
	"go.uber.org/multierr"
	"golang.org/x/sync/errgroup"

	"github.com/philipp01105/drainlog/config"
	"github.com/philipp01105/drainlog/handler/consolehandler"
	"github.com/philipp01105/drainlog/handler/debughandler"
	"github.com/philipp01105/drainlog/handler/filehandler"
	"github.com/philipp01105/drainlog/logger"
)

// Version can be set with -ldflags "-X main.Version=..."
var Version = "0.1.0-dev"

type account struct {
	loginname string
	nickname  string
}

func (a account) AppendLog(dst []byte) []byte {
	dst = append(dst, "\naccount : "...)
	dst = append(dst, a.loginname...)
	dst = append(dst, "\nnickname : "...)
	return append(dst, a.nickname...)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := createApp().Run(ctx, os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "logdemo: %v\n", err)
		stop()
		os.Exit(1)
	}
}

func createApp() *cli.Command {
	return &cli.Command{
		Name:    "logdemo",
		Usage:   "write sample records through a drainlog Manager",
		Version: Version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "YAML or JSON sink configuration",
			},
			&cli.BoolFlag{
				Name:  "watch",
				Usage: "re-apply the configuration when the file changes",
			},
			&cli.StringFlag{
				Name:  "dir",
				Usage: "directory of the default file sink",
				Value: filehandler.DefaultDirectory,
			},
			&cli.DurationFlag{
				Name:    "interval",
				Aliases: []string{"i"},
				Usage:   "flush interval; overrides flush_interval from --config",
			},
			&cli.DurationFlag{
				Name:    "duration",
				Aliases: []string{"d"},
				Usage:   "how long the flusher runs before shutdown",
				Value:   time.Second,
			},
		},
		Action: run,
	}
}

func run(ctx context.Context, cmd *cli.Command) error {
	m, interval, err := newManager(cmd)
	if err != nil {
		return err
	}
	if cmd.IsSet("interval") {
		interval = cmd.Duration("interval")
	}

	if path := cmd.String("config"); path != "" && cmd.Bool("watch") {
		w, err := config.Watch(path, m, config.WithOnReload(func(_ *config.Config, err error) {
			if err != nil {
				m.Errorf("config reload : %s\n", logger.Err(err))
				return
			}
			m.Noticef("config reload : %s\n", logger.String(path))
		}))
		if err != nil {
			return closeManager(m, err)
		}
		w.StartAsync()
		defer func() { _ = w.Stop() }()
	}

	runCtx, cancel := context.WithTimeout(ctx, cmd.Duration("duration"))
	defer cancel()

	g, gctx := errgroup.WithContext(runCtx)
	g.Go(func() error {
		err := m.Run(gctx, interval)
		m.Noticef("thread : %s\n", logger.String("end"))
		return err
	})

	m.Noticef("test : %s\n", logger.String("aaa"))
	m.Noticef("account : %s\n", logger.Custom(account{loginname: "tester", nickname: "player1"}))

	return closeManager(m, g.Wait())
}

// newManager builds the Manager from --config or the built-in sink set.
// The returned interval is zero unless the configuration names one.
func newManager(cmd *cli.Command) (*logger.Manager, time.Duration, error) {
	if path := cmd.String("config"); path != "" {
		cfg, err := config.Load(path)
		if err != nil {
			return nil, 0, err
		}
		m, err := cfg.Build()
		if err != nil {
			return nil, 0, err
		}
		return m, cfg.FlushInterval, nil
	}

	m := logger.NewBuilder().
		WithLevel(logger.DebugLevel).
		WithOptions(logger.OptionTime, logger.OptionDate, logger.OptionDay, logger.OptionThread, logger.OptionLevel).
		WithSink("console", consolehandler.New(logger.NoticeLevel)).
		WithSink("debugger", debughandler.New(logger.DebugLevel)).
		WithSink("log", filehandler.New(logger.InfoLevel, "Test", filehandler.WithDirectory(cmd.String("dir")))).
		Build()
	return m, 0, nil
}

func closeManager(m *logger.Manager, err error) error {
	return multierr.Append(err, m.Close())
}
