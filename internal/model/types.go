package model

import (
	"time"
)

// Mood はメッセージ単位の感情分類結果を表す
type Mood string

const (
	MoodPositive Mood = "positive"
	MoodNegative Mood = "negative"
	MoodAngry    Mood = "angry"
	MoodNeutral  Mood = "neutral"
)

const (
	// DefaultFavoriteFood は未設定ユーザーの好きな食べ物の初期値
	DefaultFavoriteFood = "お好み焼き"

	// DefaultLanguage は応答に使う方言の初期値
	DefaultLanguage = "関西弁"

	// RecentTopicsLimit はrecentTopicsに保持する直近メッセージ数
	RecentTopicsLimit = 5

	// SummarizeEveryN はチャット履歴の要約トリガー閾値（N件ごと）
	SummarizeEveryN = 10

	// PromptHistoryWindow はプロンプトに含める直近の会話往復数
	PromptHistoryWindow = 2
)

// Preferences はユーザーの固定キーの嗜好情報
type Preferences struct {
	FavoriteFood  string `json:"favoriteFood"`
	Language      string `json:"language"`
	FavoriteColor string `json:"favoriteColor,omitempty"`
	FavoriteMusic string `json:"favoriteMusic,omitempty"`
	FavoritePlace string `json:"favoritePlace,omitempty"`
}

// ChatEntry は1ターン分の発言と応答の組
type ChatEntry struct {
	Timestamp time.Time `json:"timestamp"`
	Message   string    `json:"message"`
	Response  string    `json:"response"`
}

// UserProfile はユーザーIDごとに永続化される会話状態
type UserProfile struct {
	UserID       string      `json:"userId"`
	UserName     string      `json:"userName,omitempty"`
	Preferences  Preferences `json:"preferences"`
	RecentTopics []string    `json:"recentTopics"`
	ChatHistory  []ChatEntry `json:"chatHistory"`
	ChatSummary  string      `json:"chatSummary,omitempty"`
	Sentiment    Mood        `json:"sentiment,omitempty"`
}

// NewUserProfile は初期値を適用したプロフィールを返す
func NewUserProfile(userID string) *UserProfile {
	return &UserProfile{
		UserID: userID,
		Preferences: Preferences{
			FavoriteFood: DefaultFavoriteFood,
			Language:     DefaultLanguage,
		},
		RecentTopics: []string{},
		ChatHistory:  []ChatEntry{},
		Sentiment:    MoodNeutral,
	}
}

// ApplyDefaults は欠損フィールドに初期値を補完する。
// ストアから読み出した古いレコードにも不変条件を保証するために呼ぶ。
func (p *UserProfile) ApplyDefaults() {
	if p.Preferences.FavoriteFood == "" {
		p.Preferences.FavoriteFood = DefaultFavoriteFood
	}
	if p.Preferences.Language == "" {
		p.Preferences.Language = DefaultLanguage
	}
	if p.RecentTopics == nil {
		p.RecentTopics = []string{}
	}
	if p.ChatHistory == nil {
		p.ChatHistory = []ChatEntry{}
	}
	if p.Sentiment == "" {
		p.Sentiment = MoodNeutral
	}
}

// AppendRecentTopic は直近の話題を追加し、上限を超えた分を先頭から捨てる
func (p *UserProfile) AppendRecentTopic(message string) {
	p.RecentTopics = append(p.RecentTopics, message)
	if len(p.RecentTopics) > RecentTopicsLimit {
		p.RecentTopics = p.RecentTopics[len(p.RecentTopics)-RecentTopicsLimit:]
	}
}

// AppendChatEntry は会話履歴に1ターン分を追記する
func (p *UserProfile) AppendChatEntry(message, response string) {
	p.ChatHistory = append(p.ChatHistory, ChatEntry{
		Timestamp: time.Now(),
		Message:   message,
		Response:  response,
	})
}

// NeedsSummary は履歴が要約境界に達したかどうかを返す
func (p *UserProfile) NeedsSummary() bool {
	return len(p.ChatHistory) > 0 && len(p.ChatHistory)%SummarizeEveryN == 0
}

// Message はLLMへ渡す1発話（role + content）
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Item は商品検索結果の1件
type Item struct {
	Name     string `json:"name"`
	URL      string `json:"url"`
	Price    string `json:"price"`
	ImageURL string `json:"imageUrl"`
}
