package config

import (
	"encoding/base64"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"kame_butler/internal/util"
)

type Config struct {
	// LINE
	ChannelAccessToken string
	ChannelSecret      string

	// LLMプロバイダ
	GeminiAPIKey string
	GeminiModel  string
	CohereAPIKey string
	CohereModel  string

	// 商品検索
	RakutenApplicationID string
	RakutenAffiliateID   string

	// 永続化
	RedisURL    string
	RedisPrefix string

	// メッセージログ
	SpreadsheetID     string
	GoogleCredentials []byte // サービスアカウントJSON（復号済み）
	MessageLogFile    string

	// 通知
	SlackToken          string
	SlackErrorChannelID string

	// サーバ設定
	Port string

	// 外部呼び出しのタイムアウト
	LLMTimeout      time.Duration
	OutboundTimeout time.Duration
}

// LoadEnvironment は.envを読み込む。見つからなくても起動は続行する
// （コンテナ環境では環境変数が直接渡されるため）。
func LoadEnvironment(envFile string) {
	if envFile == "" {
		envFile = util.FindDataFile(".env")
	}
	if envFile == "" {
		envFile = ".env"
	}

	if err := godotenv.Load(envFile); err != nil {
		log.Printf(".envファイルなし（環境変数を直接使用します）: %s", envFile)
		return
	}
	log.Printf(".envファイルを読み込みました: %s", envFile)
}

func LoadConfig() *Config {
	return &Config{
		ChannelAccessToken: requireEnv("CHANNEL_ACCESS"),
		ChannelSecret:      os.Getenv("CHANNEL_SECRET"),

		GeminiAPIKey: requireEnv("GEMINI_API_KEY"),
		GeminiModel:  envWithDefault("GEMINI_MODEL", "gemini-2.0-flash"),
		CohereAPIKey: os.Getenv("CO_API_KEY"),
		CohereModel:  envWithDefault("COHERE_MODEL", "command-r-plus"),

		RakutenApplicationID: os.Getenv("RAKUTEN_APPLICATION_ID"),
		RakutenAffiliateID:   os.Getenv("RAKUTEN_AFFILIATE_ID"),

		RedisURL:    os.Getenv("REDIS_URL"),
		RedisPrefix: envWithDefault("REDIS_PREFIX", "kame_butler:profiles"),

		SpreadsheetID:     os.Getenv("SPREADSHEET_ID"),
		GoogleCredentials: decodeCredentials(os.Getenv("CREDENTIALS")),
		MessageLogFile:    envWithDefault("MESSAGE_LOG_FILE", "messages.jsonl"),

		SlackToken:          os.Getenv("SLACK_TOKEN"),
		SlackErrorChannelID: os.Getenv("SLACK_ERROR_CHANNEL_ID"),

		Port: envWithDefault("PORT", "8080"),

		LLMTimeout:      parseSecondsWithDefault(os.Getenv("LLM_TIMEOUT_SECONDS"), 30),
		OutboundTimeout: parseSecondsWithDefault(os.Getenv("OUTBOUND_TIMEOUT_SECONDS"), 10),
	}
}

// decodeCredentials はbase64エンコードされたサービスアカウントJSONを復号する
func decodeCredentials(raw string) []byte {
	if raw == "" {
		return nil
	}
	decoded, err := base64.StdEncoding.DecodeString(raw)
	if err != nil {
		log.Fatal("CREDENTIALS のデコードエラー: ", err)
	}
	return decoded
}

func requireEnv(key string) string {
	value := os.Getenv(key)
	if value == "" {
		log.Fatal("エラー: 必須環境変数が未設定です: ", key)
	}
	return value
}

func envWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func parseSecondsWithDefault(value string, defaultSeconds int) time.Duration {
	if value == "" {
		return time.Duration(defaultSeconds) * time.Second
	}
	parsed, err := strconv.Atoi(value)
	if err != nil || parsed <= 0 {
		return time.Duration(defaultSeconds) * time.Second
	}
	return time.Duration(parsed) * time.Second
}
