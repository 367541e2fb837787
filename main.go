package main

import (
	"context"
	"database/sql"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/hangman-bot/assets"
	"github.com/robalobadob/hangman-bot/internal/bot"
	"github.com/robalobadob/hangman-bot/internal/config"
	"github.com/robalobadob/hangman-bot/internal/httpserver"
	"github.com/robalobadob/hangman-bot/internal/render"
	"github.com/robalobadob/hangman-bot/internal/stats"
	"github.com/robalobadob/hangman-bot/internal/store"
	"github.com/robalobadob/hangman-bot/internal/telegram"
	"github.com/robalobadob/hangman-bot/internal/words"
)

func main() {
	cfg, cfgErr := config.Load()
	setupLogging(cfg.LogLevel, cfg.LogFormat)
	if cfgErr != nil {
		log.Fatal().Err(cfgErr).Msg("invalid configuration")
	}

	if err := words.Init(); err != nil {
		log.Fatal().Err(err).Msg("failed to load word list")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := run(ctx, cfg)
	stop()
	if err != nil {
		log.Fatal().Err(err).Msg("bot exited")
	}
	log.Info().Msg("bye")
}

func run(ctx context.Context, cfg config.Config) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	ledger, db, err := openLedger(cfg.DBPath)
	if err != nil {
		return err
	}
	if db != nil {
		defer db.Close()
	}

	renderer, err := render.New()
	if err != nil {
		return err
	}
	var images *render.Images
	if cfg.SendImages {
		if images, err = render.NewImages(renderer.Frames(), cfg.ImageCacheSize); err != nil {
			return err
		}
	}

	tg, err := telegram.New(cfg.BotToken, cfg.TelegramTimeout)
	if err != nil {
		return err
	}
	if err := tg.SetCommands(bot.Menu()); err != nil {
		log.Warn().Err(err).Msg("command menu not published")
	}

	rooms := store.NewRegistry(cfg.CodeLength, cfg.DefaultLives)
	b := bot.New(bot.Options{
		Registry: rooms,
		Renderer: renderer,
		Images:   images,
		Ledger:   ledger,
		Sender:   tg,
	})

	srv := httpserver.New(rooms, ledger)
	srvDone := make(chan struct{})
	go func() {
		defer close(srvDone)
		if err := srv.Start(ctx, cfg.Addr()); err != nil {
			log.Error().Err(err).Msg("http server exited")
		}
	}()

	log.Info().
		Int("words", words.Count()).
		Bool("images", images != nil).
		Bool("stats", ledger.Enabled()).
		Msg("hangman bot started")
	err = tg.Run(ctx, b)
	cancel()
	<-srvDone
	return err
}

// openLedger opens the stats database, or returns stats.Nop when path is empty.
func openLedger(path string) (stats.Ledger, *sql.DB, error) {
	if path == "" {
		log.Info().Msg("DB_PATH not set, stats ledger disabled")
		return stats.Nop{}, nil, nil
	}
	db, err := stats.Open(path)
	if err != nil {
		return nil, nil, err
	}
	if err := stats.Migrate(db, assets.Migrations()); err != nil {
		_ = db.Close()
		return nil, nil, err
	}
	return stats.NewStore(db), db, nil
}
