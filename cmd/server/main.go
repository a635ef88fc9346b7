// cmd/server/main.go

// 本服務提供 XAF 示範網銀的 JSON API：儀表板、帳戶、交易紀錄與轉帳。
// 此檔案負責載入設定、初始化模組（bank, server, storage），
// 並啟動 HTTP 伺服器；收到 SIGINT/SIGTERM 時優雅關閉。

package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"

	"github.com/ashu-nk/ashu-afric-test/internal/bank"
	"github.com/ashu-nk/ashu-afric-test/internal/config"
	"github.com/ashu-nk/ashu-afric-test/internal/logging"
	"github.com/ashu-nk/ashu-afric-test/internal/money"
	"github.com/ashu-nk/ashu-afric-test/internal/navigation"
	"github.com/ashu-nk/ashu-afric-test/internal/server"
	"github.com/ashu-nk/ashu-afric-test/internal/storage"
	"github.com/ashu-nk/ashu-afric-test/internal/transfer"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fallback := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
		fallback.Fatal().Err(err).Msg("load config")
	}

	log, err := logging.New(cfg.LogLevel, cfg.LogFormat, os.Stderr)
	if err != nil {
		fallback := zerolog.New(os.Stderr)
		fallback.Fatal().Err(err).Msg("init logger")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

// run 啟動 HTTP 伺服器並阻塞至 ctx 結束後完成優雅關閉。
func run(ctx context.Context, cfg config.Config, log zerolog.Logger) error {
	validator := transfer.NewValidator(cfg.Locale())

	// 初始化帳戶儲存庫：有種子檔則載入，否則使用內建模擬帳戶
	b := bank.NewBank(bank.Options{Validator: validator, Latency: cfg.FetchLatency})
	accts := bank.DefaultAccounts()
	if cfg.SeedFile != "" {
		seed, err := storage.LoadSeed(cfg.SeedFile)
		if err != nil {
			return err
		}
		if accts, err = bank.FromSeed(seed); err != nil {
			return err
		}
		log.Info().Str("file", cfg.SeedFile).Int("accounts", len(accts)).Msg("seed loaded")
	}
	b.Load(accts)

	formatter := money.NewFormatter(cfg.CurrencyLabel, cfg.Separator())
	s := server.NewServer(b, server.Options{
		Formatter: &formatter,
		Validator: validator,
		Guard:     navigation.NewGuard(cfg.LoginPath, cfg.PublicPaths, nil),
		Logger:    &log,
	})

	srv := &http.Server{Addr: cfg.HTTPAddr, Handler: s.Router()}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", cfg.HTTPAddr).Str("locale", cfg.Locale().String()).Msg("bank server running")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
