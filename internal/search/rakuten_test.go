package search

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"
)

const searchResponseJSON = `{
	"Items": [
		{"Item": {
			"itemName": "宇治抹茶 100g",
			"itemUrl": "https://example.com/item/1",
			"itemPrice": 1200,
			"mediumImageUrls": [{"imageUrl": "https://example.com/img/1.jpg"}]
		}},
		{"Item": {
			"itemName": "ほうじ茶",
			"itemUrl": "https://example.com/item/2",
			"itemPrice": "800",
			"mediumImageUrls": []
		}}
	]
}`

func newTestClient(t *testing.T, handler http.HandlerFunc) (*RakutenClient, *httptest.Server) {
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := NewRakutenClient("test-app-id", "test-affiliate", time.Second)
	client.endpoint = server.URL
	return client, server
}

func TestSearch(t *testing.T) {
	var gotQuery url.Values
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(searchResponseJSON)) //nolint:errcheck
	})

	items, err := client.Search(context.Background(), "お茶", 3)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}

	if gotQuery.Get("applicationId") != "test-app-id" {
		t.Errorf("applicationId = %q", gotQuery.Get("applicationId"))
	}
	if gotQuery.Get("affiliateId") != "test-affiliate" {
		t.Errorf("affiliateId = %q", gotQuery.Get("affiliateId"))
	}
	if gotQuery.Get("format") != "json" {
		t.Errorf("format = %q", gotQuery.Get("format"))
	}
	if gotQuery.Get("keyword") != "お茶" {
		t.Errorf("keyword = %q", gotQuery.Get("keyword"))
	}
	if gotQuery.Get("hits") != "3" {
		t.Errorf("hits = %q", gotQuery.Get("hits"))
	}

	if len(items) != 2 {
		t.Fatalf("len(items) = %d, want 2", len(items))
	}
	if items[0].Name != "宇治抹茶 100g" {
		t.Errorf("items[0].Name = %q", items[0].Name)
	}
	if items[0].Price != "1200" {
		t.Errorf("数値価格の整形: %q", items[0].Price)
	}
	if items[0].ImageURL != "https://example.com/img/1.jpg" {
		t.Errorf("items[0].ImageURL = %q", items[0].ImageURL)
	}
	if items[1].Price != "800" {
		t.Errorf("文字列価格の整形: %q", items[1].Price)
	}
	if items[1].ImageURL != "" {
		t.Errorf("画像なしの場合は空文字: %q", items[1].ImageURL)
	}
}

func TestSearchHitsClamping(t *testing.T) {
	tests := []struct {
		name string
		hits int
		want string
	}{
		{"0は既定値", 0, "5"},
		{"負値も既定値", -1, "5"},
		{"上限超えは30", 100, "30"},
		{"範囲内はそのまま", 10, "10"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotHits string
			client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				gotHits = r.URL.Query().Get("hits")
				w.Write([]byte(`{"Items": []}`)) //nolint:errcheck
			})

			if _, err := client.Search(context.Background(), "お茶", tt.hits); err != nil {
				t.Fatalf("Search failed: %v", err)
			}
			if gotHits != tt.want {
				t.Errorf("hits = %q, want %q", gotHits, tt.want)
			}
		})
	}
}

func TestSearchAPIError(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	})

	if _, err := client.Search(context.Background(), "お茶", 5); err == nil {
		t.Error("非200ステータスでエラーにならなかった")
	}
}

func TestSearchMissingApplicationID(t *testing.T) {
	client := NewRakutenClient("", "", time.Second)
	if _, err := client.Search(context.Background(), "お茶", 5); err == nil {
		t.Error("applicationId未設定でエラーにならなかった")
	}
}

func TestSearchOmitsEmptyAffiliateID(t *testing.T) {
	var gotQuery url.Values
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		w.Write([]byte(`{"Items": []}`)) //nolint:errcheck
	}))
	defer server.Close()

	client := NewRakutenClient("test-app-id", "", time.Second)
	client.endpoint = server.URL

	if _, err := client.Search(context.Background(), "お茶", 5); err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if gotQuery.Has("affiliateId") {
		t.Error("空のaffiliateIdがパラメータに含まれている")
	}
}
