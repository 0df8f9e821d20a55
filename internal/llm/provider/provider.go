package provider

import (
	"context"
	"errors"

	"kame_butler/internal/model"
)

// SearchToolName は商品検索のfunction宣言名。
// 主プロバイダへの全リクエストに宣言として添付される。
const SearchToolName = "search_rakuten_items"

// ToolCall is a structured request from the model to execute an external action
type ToolCall struct {
	Name string
	Args map[string]any
}

// Reply is the normalized provider response: either plain text or a tool call.
// 2つの互換性のないレスポンススキーマをアダプタ側でこの型に正規化する。
type Reply struct {
	Text     string
	ToolCall *ToolCall
}

// IsToolCall reports whether the model requested a tool invocation
func (r *Reply) IsToolCall() bool {
	return r != nil && r.ToolCall != nil
}

// ErrInvalidResponse はプロバイダの応答が空・不正形だった場合に返す。
// 空文字列を黙って返さず、フォールバックのトリガーにする。
var ErrInvalidResponse = errors.New("プロバイダ応答が不正です")

// Provider はLLMバックエンドの共通インターフェース
type Provider interface {
	// GenerateContent はメッセージ列とシステムプロンプトから応答を生成する
	GenerateContent(ctx context.Context, messages []model.Message, systemPrompt string) (*Reply, error)
}
