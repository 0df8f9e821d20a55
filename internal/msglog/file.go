package msglog

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/gofrs/flock"
)

// FileLogger appends JSONL entries to a local file.
// 複数プロセスからの追記に備えてファイルロックで直列化する。
type FileLogger struct {
	path string
	lock *flock.Flock
}

// NewFileLogger creates a FileLogger writing to the given path
func NewFileLogger(path string) *FileLogger {
	return &FileLogger{
		path: path,
		lock: flock.New(path + ".lock"),
	}
}

// Append writes one JSONL entry
func (l *FileLogger) Append(ctx context.Context, userID, message string) error {
	data, err := json.Marshal(Entry{
		Timestamp: time.Now(),
		UserID:    userID,
		Message:   message,
	})
	if err != nil {
		return fmt.Errorf("ログエントリ作成エラー: %w", err)
	}

	locked, err := l.lock.TryLockContext(ctx, 50*time.Millisecond)
	if err != nil {
		return fmt.Errorf("ログファイルロック取得エラー: %w", err)
	}
	if !locked {
		return fmt.Errorf("ログファイルロックを取得できませんでした: %s", l.path)
	}
	defer l.lock.Unlock() //nolint:errcheck

	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("ログファイルオープンエラー: %w", err)
	}
	defer f.Close() //nolint:errcheck

	if _, err := f.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("ログファイル書き込みエラー: %w", err)
	}

	return nil
}

// Close cleans up resources
func (l *FileLogger) Close() error {
	return nil
}
