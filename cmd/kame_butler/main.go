package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"kame_butler/internal/bot"
	"kame_butler/internal/config"
	"kame_butler/internal/line"
	"kame_butler/internal/llm"
	"kame_butler/internal/llm/provider"
	"kame_butler/internal/llm/provider/cohere"
	"kame_butler/internal/llm/provider/gemini"
	"kame_butler/internal/msglog"
	"kame_butler/internal/notify"
	"kame_butler/internal/search"
	"kame_butler/internal/store"
	"kame_butler/internal/util"
)

func main() {
	envFile := flag.String("env", "", "Path to .env file (default: data/.env)")
	flag.Parse()

	config.LoadEnvironment(*envFile)
	cfg := config.LoadConfig()

	// シグナルハンドリング（SIGINT, SIGTERM）
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	persona := config.InitializePersona(ctx)

	storage := initStorage(cfg)
	defer storage.Close() //nolint:errcheck

	primary, err := gemini.NewClient(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
	if err != nil {
		log.Fatal("Geminiクライアント初期化エラー: ", err)
	}
	defer primary.Close() //nolint:errcheck

	var secondary provider.Provider
	if cfg.CohereAPIKey != "" {
		secondary = cohere.NewClient(cfg.CohereAPIKey, cfg.CohereModel)
	} else {
		log.Printf("CO_API_KEY未設定: フォールバックプロバイダなしで起動します")
	}

	searcher := search.NewRakutenClient(cfg.RakutenApplicationID, cfg.RakutenAffiliateID, cfg.OutboundTimeout)
	dispatcher := llm.NewDispatcher(primary, secondary, searcher, cfg.LLMTimeout)

	msgLogger := initMessageLogger(ctx, cfg)
	defer msgLogger.Close() //nolint:errcheck

	notifier := notify.NewNotifier(cfg.SlackToken, cfg.SlackErrorChannelID)
	replier := line.NewClient(cfg.ChannelAccessToken, cfg.OutboundTimeout)

	b := bot.New(cfg, persona, storage, dispatcher, replier, msgLogger, notifier)

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	b.RegisterRoutes(router)

	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.Printf("Kame Butler listening on port %s", cfg.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("サーバ起動エラー: ", err)
		}
	}()

	<-ctx.Done()
	log.Println("終了シグナルを受信: HTTPサーバを停止します")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("サーバ停止エラー: %v", err)
	}
	log.Println("HTTPサーバを停止しました")
}

// initStorage はRedis設定があればRedisを、なければインメモリストアを使う
func initStorage(cfg *config.Config) store.ProfileStorage {
	if cfg.RedisURL == "" {
		log.Printf("REDIS_URL未設定: インメモリストアで起動します（再起動で消えます）")
		return store.NewMemoryProfileStore()
	}

	storage, err := store.NewRedisProfileStore(cfg.RedisURL, cfg.RedisPrefix)
	if err != nil {
		log.Fatal("Redisストア初期化エラー: ", err)
	}
	log.Printf("Redisストア接続完了 (prefix: %s)", cfg.RedisPrefix)
	return storage
}

// initMessageLogger はSheets設定があればスプレッドシートへ、なければローカルJSONLへ記録する
func initMessageLogger(ctx context.Context, cfg *config.Config) msglog.Logger {
	if cfg.SpreadsheetID != "" && cfg.GoogleCredentials != nil {
		logger, err := msglog.NewSheetsLogger(ctx, cfg.SpreadsheetID, cfg.GoogleCredentials)
		if err != nil {
			log.Printf("Sheetsロガー初期化エラー（ローカルファイルに切り替えます）: %v", err)
		} else {
			log.Printf("メッセージログ: スプレッドシート (%s)", cfg.SpreadsheetID)
			return logger
		}
	}

	path := util.DataFilePath(cfg.MessageLogFile)
	log.Printf("メッセージログ: ローカルファイル (%s)", path)
	return msglog.NewFileLogger(path)
}
