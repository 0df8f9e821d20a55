package sentiment

import (
	"strings"

	"kame_butler/internal/model"
)

// キーワードは先頭のグループから順に評価し、最初に一致したものが勝つ
var moodKeywords = []struct {
	mood     model.Mood
	keywords []string
}{
	{model.MoodPositive, []string{"嬉しい", "楽しい", "幸せ"}},
	{model.MoodNegative, []string{"悲しい", "辛い", "苦しい"}},
	{model.MoodAngry, []string{"怒り", "ムカつく", "イライラ"}},
}

// Classify はメッセージから感情を分類する。必ずいずれかのMoodを返す。
func Classify(message string) model.Mood {
	for _, group := range moodKeywords {
		for _, kw := range group.keywords {
			if strings.Contains(message, kw) {
				return group.mood
			}
		}
	}
	return model.MoodNeutral
}
