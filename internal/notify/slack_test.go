package notify

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/slack-go/slack"
)

func newMockNotifier(t *testing.T, handler http.HandlerFunc) *Notifier {
	ts := httptest.NewServer(handler)
	t.Cleanup(ts.Close)

	return &Notifier{
		client:    slack.New("dummy-token", slack.OptionAPIURL(ts.URL+"/")),
		channelID: "C12345",
		enabled:   true,
	}
}

func TestNotifyErrorAsyncSurvivesCallerCancellation(t *testing.T) {
	received := make(chan struct{}, 1)
	n := newMockNotifier(t, func(w http.ResponseWriter, r *http.Request) {
		received <- struct{}{}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"ok":true,"channel":"C12345","ts":"1234567890.000001"}`)) //nolint:errcheck
	})

	// ハンドラが既に200を返した後の状況を再現する
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	n.NotifyErrorAsync(ctx, "応答生成失敗 (user: U1)")

	select {
	case <-received:
	case <-time.After(2 * time.Second):
		t.Fatal("キャンセル済みコンテキストで通知が送信されなかった")
	}
}

func TestNotifyErrorDisabled(t *testing.T) {
	tests := []struct {
		name      string
		token     string
		channelID string
	}{
		{"トークン未設定", "", "C12345"},
		{"チャンネル未設定", "dummy-token", ""},
		{"両方未設定", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := NewNotifier(tt.token, tt.channelID)
			if n.enabled {
				t.Error("未設定でも有効化されている")
			}
			// 無効時はpanicせず何もしない
			n.NotifyError(context.Background(), "メッセージ")
			n.NotifyErrorAsync(context.Background(), "メッセージ")
		})
	}
}

func TestNotifyErrorEmptyMessage(t *testing.T) {
	called := false
	n := newMockNotifier(t, func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.Write([]byte(`{"ok":true}`)) //nolint:errcheck
	})

	n.NotifyError(context.Background(), "")
	if called {
		t.Error("空メッセージで通知が送信された")
	}
}
