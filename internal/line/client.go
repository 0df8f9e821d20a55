package line

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"
)

const replyEndpoint = "https://api.line.me/v2/bot/message/reply"

// Client はLINE Messaging APIの応答送信クライアント
type Client struct {
	channelAccessToken string
	endpoint           string
	httpClient         *http.Client
}

// NewClient creates a new LINE reply client
func NewClient(channelAccessToken string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		channelAccessToken: channelAccessToken,
		endpoint:           replyEndpoint,
		httpClient:         &http.Client{Timeout: timeout},
	}
}

type replyRequest struct {
	ReplyToken string         `json:"replyToken"`
	Messages   []replyMessage `json:"messages"`
}

type replyMessage struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// Reply はreplyTokenに紐づくテキスト応答を送信する
func (c *Client) Reply(ctx context.Context, replyToken, text string) error {
	payload, err := json.Marshal(replyRequest{
		ReplyToken: replyToken,
		Messages:   []replyMessage{{Type: "text", Text: text}},
	})
	if err != nil {
		return fmt.Errorf("LINE応答ペイロード作成エラー: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("LINE応答リクエスト作成エラー: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.channelAccessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("LINE応答送信エラー: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("LINE応答送信エラー: status %d: %s", resp.StatusCode, body)
	}

	log.Printf("LINE応答送信完了 (token: %.8s...)", replyToken)
	return nil
}
