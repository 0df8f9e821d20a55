package msglog

import (
	"context"
	"log"
	"time"
)

// Entry は追記専用メッセージログの1行
type Entry struct {
	Timestamp time.Time `json:"timestamp"`
	UserID    string    `json:"userId"`
	Message   string    `json:"message"`
}

// Logger はメッセージログバックエンドの契約。
// 記録はベストエフォートで、失敗はパイプラインを止めない。
type Logger interface {
	Append(ctx context.Context, userID, message string) error
	Close() error
}

// NopLogger はログ先未設定時のダミー実装
type NopLogger struct{}

func (NopLogger) Append(ctx context.Context, userID, message string) error { return nil }
func (NopLogger) Close() error                                             { return nil }

// AppendBestEffort はログ失敗を警告ログに落として握りつぶす
func AppendBestEffort(ctx context.Context, l Logger, userID, message string) {
	if err := l.Append(ctx, userID, message); err != nil {
		log.Printf("メッセージログ記録エラー（続行します）: %v", err)
	}
}
