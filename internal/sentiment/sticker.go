package sentiment

import "fmt"

// LINE公式スタンプのpackageId/stickerIdから粗い感情ラベルを引く。
// 網羅は不可能なので、未知のスタンプは一律neutralとする（あくまで補助情報）。
var stickerEmotions = map[string]string{
	// Brown & Cony (packageId: 1)
	"1/1":  "happy",
	"1/2":  "love",
	"1/3":  "sad",
	"1/4":  "angry",
	"1/5":  "surprised",
	"1/6":  "sleepy",
	"1/7":  "confused",
	"1/8":  "excited",
	"1/9":  "crying",
	"1/10": "laughing",

	// Moon (packageId: 2)
	"2/1": "happy",
	"2/2": "love",
	"2/3": "sad",
	"2/4": "angry",
	"2/5": "surprised",

	// 基本感情スタンプ (packageId: 11537)
	"11537/52002734": "happy",
	"11537/52002735": "sad",
	"11537/52002736": "angry",
	"11537/52002737": "love",
	"11537/52002738": "surprised",
	"11537/52002739": "tired",
	"11537/52002740": "excited",
}

// StickerEmotion はスタンプIDの組から感情ラベルを返す
func StickerEmotion(packageID, stickerID string) string {
	if emotion, ok := stickerEmotions[packageID+"/"+stickerID]; ok {
		return emotion
	}
	return "neutral"
}

// StickerMessage はスタンプイベントをテキストメッセージ相当に変換する
func StickerMessage(packageID, stickerID string) string {
	emotion := StickerEmotion(packageID, stickerID)
	return fmt.Sprintf("[スタンプ: %s/%s] (感情: %s)", packageID, stickerID, emotion)
}
