package main

import (
	"context"
	"errors"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/vancomm/minesweeper-engine/internal/board"
	"github.com/vancomm/minesweeper-engine/internal/config"
	"github.com/vancomm/minesweeper-engine/internal/logging"
	"github.com/vancomm/minesweeper-engine/internal/session"
)

var (
	log = logrus.New()

	configPath string
	boardFlag  string
)

func init() {
	const usage = "config file path"
	flag.StringVar(&configPath, "config", "", usage)
	flag.StringVar(&configPath, "c", "", usage+" (shorthand)")
	flag.StringVar(&boardFlag, "board", "",
		`board preset ("beginner"), seed ("9:9:10") or query ("width=9&height=9&mine_count=10")`)
}

func loadConfig() config.Config {
	cfg := config.Default()
	if configPath != "" {
		if err := config.Read(configPath, &cfg); err != nil {
			log.Fatalf("unable to read config %s: %s", configPath, err.Error())
		}
	}
	cfg.ApplyEnv()
	if boardFlag != "" {
		cfg.Board = config.Board{Preset: boardFlag}
	}
	return cfg
}

func main() {
	mainCtx, stop := signal.NotifyContext(
		context.Background(),
		os.Interrupt, syscall.SIGTERM,
	)
	defer stop()

	flag.Parse()

	cfg := loadConfig()

	if err := logging.Setup(cfg, log, board.Log, session.Log); err != nil {
		log.Fatal("unable to set up logging: ", err)
	}

	log.Info("starting up, mode = ", cfg.Mode)
	log.WithFields(cfg.Fields()).Debug("config")

	params, err := cfg.Params()
	if err != nil {
		log.Fatal(err)
	}

	sess, err := session.New(params, cfg.Rand())
	if err != nil {
		log.Fatal("unable to create board: ", err)
	}

	log.WithField("seed", params.Seed()).Info("ready to play on stdin")

	g, gCtx := errgroup.WithContext(mainCtx)
	g.Go(func() error {
		defer stop()
		return sess.Serve(gCtx, os.Stdin, os.Stdout)
	})
	g.Go(func() error {
		<-gCtx.Done()
		log.WithField("status", sess.Status()).Info("shutting down")
		return nil
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		log.Printf("exit reason: %s\n", err)
	}
}
