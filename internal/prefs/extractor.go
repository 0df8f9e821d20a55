package prefs

import (
	"fmt"
	"strings"

	"kame_butler/internal/model"
)

// Field は抽出された嗜好の種別
type Field int

const (
	NoMatch Field = iota
	FieldUserName
	FieldFavoriteFood
	FieldFavoriteColor
	FieldFavoriteMusic
	FieldFavoritePlace
)

// Match は1件の嗜好抽出結果
type Match struct {
	Field Field
	Value string
}

// 固定プレフィックスの定義。プレフィックス同士は構造上排他なので順序は結果に影響しない。
var patterns = []struct {
	prefix string
	field  Field
	ack    string
}{
	{"名前は", FieldUserName, "%sやね！これからよろしくやで！"},
	{"好きな食べ物は", FieldFavoriteFood, "%sか！ええやん！"},
	{"好きな色は", FieldFavoriteColor, "%sか！素敵な色やね！"},
	{"好きな音楽は", FieldFavoriteMusic, "%sか！ええ趣味やね！"},
	{"好きな場所は", FieldFavoritePlace, "%sか！行ってみたいなぁ！"},
}

// Extract はメッセージが嗜好更新パターンに一致するか判定する。
// 一致しない場合は Field == NoMatch の Match を返す。純粋関数。
func Extract(message string) Match {
	for _, p := range patterns {
		if strings.HasPrefix(message, p.prefix) {
			value := strings.TrimSpace(strings.TrimPrefix(message, p.prefix))
			return Match{Field: p.field, Value: value}
		}
	}
	return Match{Field: NoMatch}
}

// Ack は嗜好更新に対する即時応答メッセージを返す
func (m Match) Ack() string {
	for _, p := range patterns {
		if p.field == m.Field {
			return fmt.Sprintf(p.ack, m.Value)
		}
	}
	return ""
}

// Apply はプロフィールの対応フィールドに抽出値を設定する
func (m Match) Apply(profile *model.UserProfile) {
	switch m.Field {
	case FieldUserName:
		profile.UserName = m.Value
	case FieldFavoriteFood:
		profile.Preferences.FavoriteFood = m.Value
	case FieldFavoriteColor:
		profile.Preferences.FavoriteColor = m.Value
	case FieldFavoriteMusic:
		profile.Preferences.FavoriteMusic = m.Value
	case FieldFavoritePlace:
		profile.Preferences.FavoritePlace = m.Value
	}
}
