package llm

import (
	"fmt"
	"strings"

	"kame_butler/internal/model"
)

// moodLabels は感情ラベルのプロンプト向け日本語表記
var moodLabels = map[model.Mood]string{
	model.MoodPositive: "ポジティブ",
	model.MoodNegative: "ネガティブ",
	model.MoodAngry:    "怒り",
	model.MoodNeutral:  "普通",
}

// BuildSystemPrompt はペルソナとユーザー情報からシステムプロンプトを組み立てる
func BuildSystemPrompt(persona string, profile *model.UserProfile) string {
	var prompt strings.Builder
	prompt.WriteString(persona)
	prompt.WriteString("\n\n")

	prompt.WriteString("【ユーザー情報】\n")
	if profile.UserName != "" {
		prompt.WriteString(fmt.Sprintf("名前: %s\n", profile.UserName))
	}
	prompt.WriteString(fmt.Sprintf("好きな食べ物: %s\n", profile.Preferences.FavoriteFood))
	if len(profile.RecentTopics) > 0 {
		prompt.WriteString(fmt.Sprintf("最近の話題: %s\n", strings.Join(profile.RecentTopics, "、")))
	}
	prompt.WriteString(fmt.Sprintf("現在の気分: %s\n", moodLabel(profile.Sentiment)))

	chatSummary := profile.ChatSummary
	if chatSummary == "" {
		chatSummary = "なし"
	}
	prompt.WriteString("\nこれまでの会話の要約:\n")
	prompt.WriteString(chatSummary)

	prompt.WriteString("\n\n【重要】直近のユーザーメッセージに対してのみ応答し、過去の発言への言及は避けてください。")

	return prompt.String()
}

func moodLabel(mood model.Mood) string {
	if label, ok := moodLabels[mood]; ok {
		return label
	}
	return moodLabels[model.MoodNeutral]
}

// BuildChatMessages は主プロバイダ向けのメッセージ列を組み立てる。
// 文脈は直近2往復のみに制限し、それ以前の文脈は要約で代替する。
func BuildChatMessages(userMessage string, profile *model.UserProfile) []model.Message {
	history := profile.ChatHistory
	if len(history) > model.PromptHistoryWindow {
		history = history[len(history)-model.PromptHistoryWindow:]
	}

	var messages []model.Message
	for _, entry := range history {
		messages = append(messages,
			model.Message{Role: model.RoleUser, Content: entry.Message},
			model.Message{Role: model.RoleAssistant, Content: entry.Response},
		)
	}

	// 最新のユーザー発言は常に末尾
	messages = append(messages, model.Message{Role: model.RoleUser, Content: userMessage})
	return messages
}

// BuildFallbackMessages はフォールバックプロバイダ向けに全履歴を展開する
func BuildFallbackMessages(userMessage string, profile *model.UserProfile) []model.Message {
	var messages []model.Message
	for _, entry := range profile.ChatHistory {
		messages = append(messages,
			model.Message{Role: model.RoleUser, Content: entry.Message},
			model.Message{Role: model.RoleAssistant, Content: entry.Response},
		)
	}

	messages = append(messages, model.Message{Role: model.RoleUser, Content: userMessage})
	return messages
}

// SummaryInstruction は履歴要約の固定指示文
const SummaryInstruction = "以上の会話履歴を簡潔に要約してください。"

// BuildSummaryMessages は要約リクエスト用に全履歴を交互のターンに展開し、
// 末尾に固定の要約指示を付ける
func BuildSummaryMessages(history []model.ChatEntry) []model.Message {
	var messages []model.Message
	for _, entry := range history {
		messages = append(messages,
			model.Message{Role: model.RoleUser, Content: entry.Message},
			model.Message{Role: model.RoleAssistant, Content: entry.Response},
		)
	}

	messages = append(messages, model.Message{Role: model.RoleUser, Content: SummaryInstruction})
	return messages
}
