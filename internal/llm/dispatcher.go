package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"kame_butler/internal/llm/provider"
	"kame_butler/internal/model"
)

// ItemSearcher は商品検索コラボレータの契約
type ItemSearcher interface {
	Search(ctx context.Context, keyword string, hits int) ([]model.Item, error)
}

// Dispatcher drives the primary/fallback LLM call sequence for one turn.
// 主プロバイダの失敗は副プロバイダで回復し、両方失敗したときだけ
// エラーを呼び出し元へ伝播させる。
type Dispatcher struct {
	primary   provider.Provider
	secondary provider.Provider
	searcher  ItemSearcher
	timeout   time.Duration
}

// NewDispatcher creates a Dispatcher. secondary and searcher may be nil
// (フォールバックなし・検索ツール実行不可として動作する).
func NewDispatcher(primary, secondary provider.Provider, searcher ItemSearcher, timeout time.Duration) *Dispatcher {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Dispatcher{
		primary:   primary,
		secondary: secondary,
		searcher:  searcher,
		timeout:   timeout,
	}
}

// GenerateReply は1ターン分の応答を生成する
func (d *Dispatcher) GenerateReply(ctx context.Context, persona, userMessage string, profile *model.UserProfile) (string, error) {
	systemPrompt := BuildSystemPrompt(persona, profile)

	reply, primaryErr := d.generate(ctx, d.primary, BuildChatMessages(userMessage, profile), systemPrompt)
	if primaryErr == nil {
		if reply.IsToolCall() {
			return d.executeToolCall(ctx, reply.ToolCall), nil
		}
		return reply.Text, nil
	}

	log.Printf("主プロバイダ呼び出し失敗、フォールバックします: %v", primaryErr)

	if d.secondary == nil {
		return "", primaryErr
	}

	// フォールバックは全履歴のフラットなメッセージ列で呼ぶ
	reply, secondaryErr := d.generate(ctx, d.secondary, BuildFallbackMessages(userMessage, profile), systemPrompt)
	if secondaryErr != nil {
		return "", fmt.Errorf("両プロバイダが失敗しました (primary: %v): %w", primaryErr, secondaryErr)
	}

	return reply.Text, nil
}

// Summarize は会話履歴の要約テキストを主プロバイダで生成する
func (d *Dispatcher) Summarize(ctx context.Context, history []model.ChatEntry) (string, error) {
	reply, err := d.generate(ctx, d.primary, BuildSummaryMessages(history), "")
	if err != nil {
		return "", err
	}
	if reply.IsToolCall() || reply.Text == "" {
		return "", provider.ErrInvalidResponse
	}
	return reply.Text, nil
}

func (d *Dispatcher) generate(ctx context.Context, p provider.Provider, messages []model.Message, systemPrompt string) (*provider.Reply, error) {
	callCtx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()
	return p.GenerateContent(callCtx, messages, systemPrompt)
}

// toolResult は単発ツール実行の結果をそのまま応答テキストにするための外形
type toolResult struct {
	ToolCode toolCode `json:"tool_code"`
}

type toolCode struct {
	Name   string `json:"name"`
	Result string `json:"result,omitempty"`
	Error  string `json:"error,omitempty"`
}

// executeToolCall は宣言済みツールを1回だけ実行し、結果をJSON文字列の応答に
// パッケージする。引数不正や実行エラーはターンの失敗にせず、そのまま応答になる。
func (d *Dispatcher) executeToolCall(ctx context.Context, call *provider.ToolCall) string {
	if call.Name != provider.SearchToolName {
		log.Printf("未知のfunction call: %s", call.Name)
		return marshalToolResult(toolCode{Name: call.Name, Error: "Unknown function."})
	}

	keyword, ok := call.Args["keyword"].(string)
	if !ok || keyword == "" {
		log.Printf("search_rakuten_itemsの引数が不正です: %v", call.Args)
		return marshalToolResult(toolCode{Name: call.Name, Error: "Invalid arguments provided."})
	}

	hits := 0
	if n, ok := call.Args["hits"].(float64); ok {
		hits = int(n)
	}

	if d.searcher == nil {
		return marshalToolResult(toolCode{Name: call.Name, Error: "商品検索は現在利用できません。"})
	}

	searchCtx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	items, err := d.searcher.Search(searchCtx, keyword, hits)
	if err != nil {
		log.Printf("商品検索エラー: %v", err)
		return marshalToolResult(toolCode{Name: call.Name, Error: err.Error()})
	}

	itemsJSON, err := json.Marshal(items)
	if err != nil {
		return marshalToolResult(toolCode{Name: call.Name, Error: err.Error()})
	}

	return marshalToolResult(toolCode{Name: call.Name, Result: string(itemsJSON)})
}

func marshalToolResult(code toolCode) string {
	data, err := json.Marshal(toolResult{ToolCode: code})
	if err != nil {
		// toolCodeは文字列のみのstructなのでここには来ない
		return fmt.Sprintf(`{"tool_code":{"name":%q,"error":"marshal error"}}`, code.Name)
	}
	return string(data)
}
