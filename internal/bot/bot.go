package bot

import (
	"context"
	"fmt"
	"log"

	"kame_butler/internal/config"
	"kame_butler/internal/line"
	"kame_butler/internal/llm"
	"kame_butler/internal/model"
	"kame_butler/internal/msglog"
	"kame_butler/internal/notify"
	"kame_butler/internal/prefs"
	"kame_butler/internal/sentiment"
	"kame_butler/internal/store"
)

// Replier は応答配送コラボレータの契約。失敗してもターンは失敗しない。
type Replier interface {
	Reply(ctx context.Context, replyToken, text string) error
}

// Bot drives the per-event conversation pipeline
type Bot struct {
	config     *config.Config
	persona    *config.Persona
	store      store.ProfileStorage
	locker     *store.UserLocker
	dispatcher *llm.Dispatcher
	replier    Replier
	msgLogger  msglog.Logger
	notifier   *notify.Notifier
}

// New creates a Bot with its collaborators injected
func New(cfg *config.Config, persona *config.Persona, storage store.ProfileStorage, dispatcher *llm.Dispatcher, replier Replier, logger msglog.Logger, notifier *notify.Notifier) *Bot {
	if logger == nil {
		logger = msglog.NopLogger{}
	}
	if notifier == nil {
		notifier = notify.NewNotifier("", "")
	}
	return &Bot{
		config:     cfg,
		persona:    persona,
		store:      storage,
		locker:     store.NewUserLocker(),
		dispatcher: dispatcher,
		replier:    replier,
		msgLogger:  logger,
		notifier:   notifier,
	}
}

// HandleEvent は1イベント分のターンを処理する。
// 同一ユーザーのターンはロックで直列化し、get/mutate/putの競合を避ける。
func (b *Bot) HandleEvent(ctx context.Context, event line.Event) error {
	userMessage, ok := extractUserMessage(event)
	if !ok {
		log.Printf("未対応のメッセージ種別のためスキップします: %s", event.Message.Type)
		return nil
	}

	userID := event.Source.UserID
	log.Printf("受信 (%s): %s", userID, userMessage)

	b.locker.Lock(userID)
	defer b.locker.Unlock(userID)

	msglog.AppendBestEffort(ctx, b.msgLogger, userID, userMessage)

	// 嗜好更新はターンを短絡する: フィールドを更新して固定の応答を返し、LLMは呼ばない
	if match := prefs.Extract(userMessage); match.Field != prefs.NoMatch {
		return b.handlePreferenceUpdate(ctx, userID, event.ReplyToken, userMessage, match)
	}

	profile := b.getProfile(ctx, userID)
	profile.Sentiment = sentiment.Classify(userMessage)
	profile.AppendRecentTopic(userMessage)

	reply, err := b.dispatcher.GenerateReply(ctx, b.persona.Get(), userMessage, profile)
	if err != nil {
		// 両プロバイダ失敗: このイベントはスキップし、応答は送らない
		b.notifier.NotifyErrorAsync(ctx, fmt.Sprintf("応答生成失敗 (user: %s): %v", userID, err))
		return fmt.Errorf("応答生成エラー: %w", err)
	}

	msglog.AppendBestEffort(ctx, b.msgLogger, userID, "Bot: "+reply)

	profile.AppendChatEntry(userMessage, reply)
	b.maybeSummarize(ctx, profile)
	b.putProfile(ctx, userID, profile)

	b.deliverReply(ctx, event.ReplyToken, reply)
	return nil
}

// extractUserMessage はイベントからテキスト相当のメッセージを取り出す。
// スタンプは感情ラベル付きの合成テキストに変換する。
func extractUserMessage(event line.Event) (string, bool) {
	switch event.Message.Type {
	case line.MessageTypeText:
		return event.Message.Text, true
	case line.MessageTypeSticker:
		return sentiment.StickerMessage(event.Message.PackageID, event.Message.StickerID), true
	default:
		return "", false
	}
}

func (b *Bot) handlePreferenceUpdate(ctx context.Context, userID, replyToken, userMessage string, match prefs.Match) error {
	profile := b.getProfile(ctx, userID)
	match.Apply(profile)
	profile.Sentiment = sentiment.Classify(userMessage)
	profile.AppendRecentTopic(userMessage)
	b.putProfile(ctx, userID, profile)

	b.deliverReply(ctx, replyToken, match.Ack())
	return nil
}

// maybeSummarize は履歴が境界に達していれば要約を生成して履歴をフラッシュする。
// 要約の失敗時は履歴も既存要約もそのまま残し、次の境界で再試行する。
func (b *Bot) maybeSummarize(ctx context.Context, profile *model.UserProfile) {
	if !profile.NeedsSummary() {
		return
	}

	log.Printf("会話履歴を要約します (user: %s, %d件)", profile.UserID, len(profile.ChatHistory))
	summary, err := b.dispatcher.Summarize(ctx, profile.ChatHistory)
	if err != nil {
		log.Printf("要約生成エラー（履歴を保持して次回再試行します）: %v", err)
		return
	}

	profile.ChatSummary = summary
	profile.ChatHistory = []model.ChatEntry{}
	log.Printf("要約更新完了 (user: %s)", profile.UserID)
}

// getProfile は失敗時もデフォルトプロフィールで続行する
func (b *Bot) getProfile(ctx context.Context, userID string) *model.UserProfile {
	profile, err := b.store.Get(ctx, userID)
	if err != nil {
		log.Printf("プロフィール取得エラー（初期値で続行します）: %v", err)
		return model.NewUserProfile(userID)
	}
	return profile
}

// putProfile は永続化失敗をログに落として握りつぶす（応答の方が耐久性より優先）
func (b *Bot) putProfile(ctx context.Context, userID string, profile *model.UserProfile) {
	if err := b.store.Put(ctx, userID, profile); err != nil {
		log.Printf("プロフィール保存エラー（このターンの更新は失われます）: %v", err)
	}
}

// deliverReply は応答配送の失敗をターンの失敗にしない
func (b *Bot) deliverReply(ctx context.Context, replyToken, text string) {
	if b.replier == nil {
		return
	}
	if err := b.replier.Reply(ctx, replyToken, text); err != nil {
		log.Printf("応答送信エラー: %v", err)
	}
}
