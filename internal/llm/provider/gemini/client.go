package gemini

import (
	"context"
	"fmt"
	"log"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"kame_butler/internal/llm/provider"
	"kame_butler/internal/model"
)

type Client struct {
	client    *genai.Client
	modelName string
}

// NewClient creates the primary (Gemini) provider client
func NewClient(ctx context.Context, apiKey, modelName string) (*Client, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("Geminiクライアント作成エラー: %w", err)
	}

	if modelName == "" {
		modelName = "gemini-2.0-flash"
	}

	return &Client{
		client:    client,
		modelName: modelName,
	}, nil
}

// newModel は1リクエスト分のモデル設定を組み立てる。
// GenerativeModelはSystemInstructionを持つ可変オブジェクトなので、
// 並行するリクエスト間で共有せず呼び出しごとに作る。
func (c *Client) newModel(systemPrompt string) *genai.GenerativeModel {
	m := c.client.GenerativeModel(c.modelName)
	m.Tools = []*genai.Tool{searchTool()}
	if systemPrompt != "" {
		m.SystemInstruction = &genai.Content{
			Parts: []genai.Part{genai.Text(systemPrompt)},
		}
	}
	return m
}

// searchTool は商品検索のfunction宣言。全リクエストに添付する。
func searchTool() *genai.Tool {
	return &genai.Tool{
		FunctionDeclarations: []*genai.FunctionDeclaration{
			{
				Name:        provider.SearchToolName,
				Description: "楽天で商品を検索し、商品リンクを取得します。",
				Parameters: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"keyword": {
							Type:        genai.TypeString,
							Description: "検索キーワード",
						},
						"hits": {
							Type:        genai.TypeNumber,
							Description: "取得する商品の数（1〜30）",
						},
					},
					Required: []string{"keyword"},
				},
			},
		},
	}
}

// GenerateContent はGeminiにチャットリクエストを送り、応答を正規化して返す
func (c *Client) GenerateContent(ctx context.Context, messages []model.Message, systemPrompt string) (*provider.Reply, error) {
	if len(messages) == 0 {
		return nil, fmt.Errorf("メッセージが空です")
	}

	cs := c.newModel(systemPrompt).StartChat()

	// 最後のメッセージ（ユーザーの新規発言）を除いたものを履歴にする
	var history []*genai.Content
	for i := 0; i < len(messages)-1; i++ {
		msg := messages[i]
		role := "user"
		if msg.Role == model.RoleAssistant {
			role = "model"
		}
		history = append(history, &genai.Content{
			Role:  role,
			Parts: []genai.Part{genai.Text(msg.Content)},
		})
	}
	cs.History = history

	lastMsg := messages[len(messages)-1]
	resp, err := cs.SendMessage(ctx, genai.Text(lastMsg.Content))
	if err != nil {
		log.Printf("Gemini API呼び出しエラー: %v", err)
		return nil, err
	}

	return normalizeResponse(resp)
}

// normalizeResponse converts a Gemini response into the provider-neutral Reply.
// 候補が空でエラーもない応答は不正応答として扱い、フォールバックを起こさせる。
func normalizeResponse(resp *genai.GenerateContentResponse) (*provider.Reply, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		return nil, provider.ErrInvalidResponse
	}

	content := resp.Candidates[0].Content
	if content == nil || len(content.Parts) == 0 {
		return nil, provider.ErrInvalidResponse
	}

	// function callがあれば最初の1つを採用する
	for _, part := range content.Parts {
		if fc, ok := part.(genai.FunctionCall); ok {
			log.Printf("Gemini Function Call: %s", fc.Name)
			return &provider.Reply{
				ToolCall: &provider.ToolCall{
					Name: fc.Name,
					Args: fc.Args,
				},
			}, nil
		}
	}

	var text string
	for _, part := range content.Parts {
		if txt, ok := part.(genai.Text); ok {
			text += string(txt)
		}
	}
	if text == "" {
		return nil, provider.ErrInvalidResponse
	}

	return &provider.Reply{Text: text}, nil
}

// Close cleans up resources
func (c *Client) Close() error {
	return c.client.Close()
}
