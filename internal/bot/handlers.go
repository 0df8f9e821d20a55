package bot

import (
	"io"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"kame_butler/internal/line"
)

// NonWebhookResponse はLINE以外からのリクエストへの固定応答
const NonWebhookResponse = "LINE以外からのリクエストを受け付けました。"

// RegisterRoutes wires the webhook endpoint into the router
func (b *Bot) RegisterRoutes(router *gin.Engine) {
	router.POST("/", b.handlePost)
}

// handlePost はLINE webhookと汎用リクエストを振り分ける。
// webhookは内部処理の成否に関わらず200で応答する（プラットフォーム側の
// 再送ストームを起こさないため）。
func (b *Bot) handlePost(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		log.Printf("リクエストボディ読み込みエラー: %v", err)
		c.String(http.StatusOK, "OK")
		return
	}

	webhook, isWebhook := line.ParseWebhook(body)
	if !isWebhook {
		log.Printf("LINE以外のリクエストを受信しました: %s", body)
		c.JSON(http.StatusOK, gin.H{"message": NonWebhookResponse})
		return
	}

	// 各イベントは独立に順番に処理し、エラーはログだけ残してスキップする
	for _, event := range webhook.Events {
		if err := b.HandleEvent(c.Request.Context(), event); err != nil {
			log.Printf("イベント処理エラー（スキップします）: %v", err)
		}
	}

	c.String(http.StatusOK, "OK")
}
