package search

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"kame_butler/internal/model"
)

const (
	ichibaEndpoint = "https://app.rakuten.co.jp/services/api/IchibaItem/Search/20220601"

	DefaultHits = 5
	MaxHits     = 30
)

// RakutenClient は楽天市場商品検索APIの薄いクライアント
type RakutenClient struct {
	applicationID string
	affiliateID   string
	endpoint      string
	httpClient    *http.Client
}

// NewRakutenClient creates a new RakutenClient
func NewRakutenClient(applicationID, affiliateID string, timeout time.Duration) *RakutenClient {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &RakutenClient{
		applicationID: applicationID,
		affiliateID:   affiliateID,
		endpoint:      ichibaEndpoint,
		httpClient:    &http.Client{Timeout: timeout},
	}
}

// APIレスポンスの形（必要なフィールドのみ）
type ichibaSearchResponse struct {
	Items []struct {
		Item struct {
			ItemName        string `json:"itemName"`
			ItemURL         string `json:"itemUrl"`
			ItemPrice       any    `json:"itemPrice"` // 数値と文字列の両方が観測される
			MediumImageURLs []struct {
				ImageURL string `json:"imageUrl"`
			} `json:"mediumImageUrls"`
		} `json:"Item"`
	} `json:"Items"`
}

// Search はキーワードで商品を検索する。hitsは1〜30に丸める（0以下は既定値5）。
func (c *RakutenClient) Search(ctx context.Context, keyword string, hits int) ([]model.Item, error) {
	if c.applicationID == "" {
		return nil, fmt.Errorf("RAKUTEN_APPLICATION_IDが未設定です")
	}

	if hits <= 0 {
		hits = DefaultHits
	}
	if hits > MaxHits {
		hits = MaxHits
	}

	params := url.Values{}
	params.Set("applicationId", c.applicationID)
	if c.affiliateID != "" {
		params.Set("affiliateId", c.affiliateID)
	}
	params.Set("format", "json")
	params.Set("keyword", keyword)
	params.Set("hits", strconv.Itoa(hits))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("楽天APIリクエスト作成エラー: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("楽天API呼び出しエラー: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("楽天APIエラー: status %d", resp.StatusCode)
	}

	var body ichibaSearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("楽天APIレスポンス解析エラー: %w", err)
	}

	items := make([]model.Item, 0, len(body.Items))
	for _, wrapper := range body.Items {
		item := model.Item{
			Name:  wrapper.Item.ItemName,
			URL:   wrapper.Item.ItemURL,
			Price: formatPrice(wrapper.Item.ItemPrice),
		}
		if len(wrapper.Item.MediumImageURLs) > 0 {
			item.ImageURL = wrapper.Item.MediumImageURLs[0].ImageURL
		}
		items = append(items, item)
	}

	return items, nil
}

func formatPrice(raw any) string {
	switch v := raw.(type) {
	case string:
		return v
	case float64:
		return strconv.FormatInt(int64(v), 10)
	default:
		return ""
	}
}
