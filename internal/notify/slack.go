package notify

import (
	"context"
	"log"
	"time"

	"github.com/slack-go/slack"
)

const asyncNotifyTimeout = 10 * time.Second

// Notifier はターンレベル障害の運用通知先。トークン未設定なら無効化される。
type Notifier struct {
	client    *slack.Client
	channelID string
	enabled   bool
}

// NewNotifier creates a Slack notifier. Empty token disables it.
func NewNotifier(token, channelID string) *Notifier {
	if token == "" || channelID == "" {
		return &Notifier{enabled: false}
	}
	return &Notifier{
		client:    slack.New(token),
		channelID: channelID,
		enabled:   true,
	}
}

// NotifyError sends an error report to the ops channel (best effort)
func (n *Notifier) NotifyError(ctx context.Context, message string) {
	if !n.enabled || message == "" {
		return
	}

	_, _, err := n.client.PostMessageContext(ctx, n.channelID, slack.MsgOptionText(message, false))
	if err != nil {
		log.Printf("Slack通知エラー: %v", err)
	}
}

// NotifyErrorAsync fires the notification without blocking the caller.
// webhookハンドラは即時に200を返してリクエストコンテキストを破棄するので、
// キャンセルを切り離して独自のタイムアウトで送信する。
func (n *Notifier) NotifyErrorAsync(ctx context.Context, message string) {
	if !n.enabled {
		return
	}

	detached, cancel := context.WithTimeout(context.WithoutCancel(ctx), asyncNotifyTimeout)
	go func() {
		defer cancel()
		n.NotifyError(detached, message)
	}()
}
