package line

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestReply(t *testing.T) {
	var gotAuth string
	var gotBody []byte
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotBody, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := NewClient("test-token", time.Second)
	client.endpoint = server.URL

	if err := client.Reply(context.Background(), "rt1", "まいど！"); err != nil {
		t.Fatalf("Reply failed: %v", err)
	}

	if gotAuth != "Bearer test-token" {
		t.Errorf("Authorization = %q", gotAuth)
	}

	var req struct {
		ReplyToken string `json:"replyToken"`
		Messages   []struct {
			Type string `json:"type"`
			Text string `json:"text"`
		} `json:"messages"`
	}
	if err := json.Unmarshal(gotBody, &req); err != nil {
		t.Fatalf("リクエストボディの解析エラー: %v", err)
	}
	if req.ReplyToken != "rt1" {
		t.Errorf("replyToken = %q", req.ReplyToken)
	}
	if len(req.Messages) != 1 || req.Messages[0].Type != "text" || req.Messages[0].Text != "まいど！" {
		t.Errorf("messages = %+v", req.Messages)
	}
}

func TestReplyAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"message":"Invalid reply token"}`)) //nolint:errcheck
	}))
	defer server.Close()

	client := NewClient("test-token", time.Second)
	client.endpoint = server.URL

	err := client.Reply(context.Background(), "expired", "テキスト")
	if err == nil {
		t.Fatal("非200ステータスでエラーにならなかった")
	}
}
