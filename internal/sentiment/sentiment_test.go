package sentiment

import (
	"testing"

	"kame_butler/internal/model"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name    string
		message string
		want    model.Mood
	}{
		{"ポジティブ語を含む", "今日はとても嬉しい出来事があった", model.MoodPositive},
		{"楽しいもポジティブ", "旅行が楽しいわ", model.MoodPositive},
		{"幸せもポジティブ", "幸せな気分やで", model.MoodPositive},
		{"ネガティブ語を含む", "最近ちょっと悲しいことが続いてる", model.MoodNegative},
		{"辛いもネガティブ", "仕事が辛い", model.MoodNegative},
		{"怒り語を含む", "上司にムカつくことを言われた", model.MoodAngry},
		{"イライラも怒り", "渋滞でイライラする", model.MoodAngry},
		{"キーワードなしは普通", "明日の天気はどうかな", model.MoodNeutral},
		{"空文字は普通", "", model.MoodNeutral},
		{"ポジティブが先勝ち", "嬉しいけど少し悲しい", model.MoodPositive},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.message); got != tt.want {
				t.Errorf("Classify(%q) = %v, want %v", tt.message, got, tt.want)
			}
		})
	}
}

func TestStickerEmotion(t *testing.T) {
	tests := []struct {
		name      string
		packageID string
		stickerID string
		want      string
	}{
		{"登録済みスタンプ", "1", "1", "happy"},
		{"別パッケージ", "11537", "52002734", "happy"},
		{"未登録はneutral", "999", "999", "neutral"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StickerEmotion(tt.packageID, tt.stickerID); got != tt.want {
				t.Errorf("StickerEmotion(%q, %q) = %q, want %q", tt.packageID, tt.stickerID, got, tt.want)
			}
		})
	}
}

func TestStickerMessage(t *testing.T) {
	got := StickerMessage("1", "2")
	want := "[スタンプ: 1/2] (感情: love)"
	if got != want {
		t.Errorf("StickerMessage = %q, want %q", got, want)
	}
}
