package store

import (
	"context"
	"testing"

	"kame_butler/internal/model"
)

func TestMemoryStoreGetUnknownUser(t *testing.T) {
	s := NewMemoryProfileStore()
	ctx := context.Background()

	p, err := s.Get(ctx, "U1")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if p.UserID != "U1" {
		t.Errorf("UserID = %q", p.UserID)
	}
	if p.Preferences.FavoriteFood != model.DefaultFavoriteFood {
		t.Errorf("FavoriteFood = %q, want %q", p.Preferences.FavoriteFood, model.DefaultFavoriteFood)
	}
	if p.Preferences.Language != model.DefaultLanguage {
		t.Errorf("Language = %q, want %q", p.Preferences.Language, model.DefaultLanguage)
	}
}

func TestMemoryStorePutGet(t *testing.T) {
	s := NewMemoryProfileStore()
	ctx := context.Background()

	p := model.NewUserProfile("U1")
	p.UserName = "田中太郎"
	p.Preferences.FavoriteFood = "寿司"
	p.AppendRecentTopic("こんにちは")
	p.AppendChatEntry("こんにちは", "まいど！")

	if err := s.Put(ctx, "U1", p); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	got, err := s.Get(ctx, "U1")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.UserName != "田中太郎" {
		t.Errorf("UserName = %q", got.UserName)
	}
	if got.Preferences.FavoriteFood != "寿司" {
		t.Errorf("FavoriteFood = %q", got.Preferences.FavoriteFood)
	}
	if len(got.RecentTopics) != 1 || got.RecentTopics[0] != "こんにちは" {
		t.Errorf("RecentTopics = %v", got.RecentTopics)
	}
	if len(got.ChatHistory) != 1 || got.ChatHistory[0].Response != "まいど！" {
		t.Errorf("ChatHistory = %v", got.ChatHistory)
	}
}

func TestMemoryStoreGetReturnsCopy(t *testing.T) {
	s := NewMemoryProfileStore()
	ctx := context.Background()

	p := model.NewUserProfile("U1")
	if err := s.Put(ctx, "U1", p); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	first, _ := s.Get(ctx, "U1")
	first.UserName = "書き換え"

	second, _ := s.Get(ctx, "U1")
	if second.UserName != "" {
		t.Errorf("Putしていない変更が反映された: %q", second.UserName)
	}
}

func TestMemoryStoreDelete(t *testing.T) {
	s := NewMemoryProfileStore()
	ctx := context.Background()

	p := model.NewUserProfile("U1")
	p.UserName = "田中太郎"
	if err := s.Put(ctx, "U1", p); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	if err := s.Delete(ctx, "U1"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	got, err := s.Get(ctx, "U1")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.UserName != "" {
		t.Errorf("削除後も残っている: %q", got.UserName)
	}
}
