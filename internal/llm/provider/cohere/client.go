package cohere

import (
	"context"
	"fmt"
	"log"

	cohere "github.com/cohere-ai/cohere-go/v2"
	cohereclient "github.com/cohere-ai/cohere-go/v2/client"

	"kame_butler/internal/llm/provider"
	"kame_butler/internal/model"
)

type Client struct {
	client    *cohereclient.Client
	modelName string
}

// NewClient creates the secondary (Cohere) provider client
func NewClient(apiKey, modelName string) *Client {
	if modelName == "" {
		modelName = "command-r-plus"
	}
	return &Client{
		client:    cohereclient.NewClient(cohereclient.WithToken(apiKey)),
		modelName: modelName,
	}
}

// GenerateContent sends a flat role/content history to the Cohere chat API.
// フォールバック側はツール宣言なしのテキスト応答のみを想定する。
func (c *Client) GenerateContent(ctx context.Context, messages []model.Message, systemPrompt string) (*provider.Reply, error) {
	if len(messages) == 0 {
		return nil, fmt.Errorf("メッセージが空です")
	}

	var history []*cohere.Message
	for _, msg := range messages[:len(messages)-1] {
		if msg.Role == model.RoleAssistant {
			history = append(history, &cohere.Message{
				Role:    "CHATBOT",
				Chatbot: &cohere.ChatMessage{Message: msg.Content},
			})
		} else {
			history = append(history, &cohere.Message{
				Role: "USER",
				User: &cohere.ChatMessage{Message: msg.Content},
			})
		}
	}

	req := &cohere.ChatRequest{
		Model:       &c.modelName,
		Message:     messages[len(messages)-1].Content,
		ChatHistory: history,
	}
	if systemPrompt != "" {
		req.Preamble = &systemPrompt
	}

	resp, err := c.client.Chat(ctx, req)
	if err != nil {
		log.Printf("Cohere API呼び出しエラー: %v", err)
		return nil, err
	}

	if resp.Text == "" {
		return nil, provider.ErrInvalidResponse
	}

	return &provider.Reply{Text: resp.Text}, nil
}
