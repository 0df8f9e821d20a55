package line

import "encoding/json"

// メッセージ種別。text/sticker以外はスキップされる。
const (
	MessageTypeText    = "text"
	MessageTypeSticker = "sticker"
)

// WebhookBody はLINEプラットフォームから受信するwebhookペイロード
type WebhookBody struct {
	Destination string  `json:"destination,omitempty"`
	Events      []Event `json:"events"`
}

// Event はwebhook内の1イベント
type Event struct {
	Type       string  `json:"type,omitempty"`
	ReplyToken string  `json:"replyToken"`
	Source     Source  `json:"source"`
	Message    Message `json:"message"`
}

// Source はイベントの送信元
type Source struct {
	Type   string `json:"type,omitempty"`
	UserID string `json:"userId"`
}

// Message は受信メッセージ本体
type Message struct {
	ID        string `json:"id,omitempty"`
	Type      string `json:"type"`
	Text      string `json:"text,omitempty"`
	PackageID string `json:"packageId,omitempty"`
	StickerID string `json:"stickerId,omitempty"`
}

// ParseWebhook はリクエストボディがLINE webhookかどうか判定する。
// eventsが空でない配列で、先頭要素にreplyTokenがあればwebhookとみなす。
func ParseWebhook(body []byte) (*WebhookBody, bool) {
	var webhook WebhookBody
	if err := json.Unmarshal(body, &webhook); err != nil {
		return nil, false
	}
	if len(webhook.Events) == 0 || webhook.Events[0].ReplyToken == "" {
		return nil, false
	}
	return &webhook, true
}
