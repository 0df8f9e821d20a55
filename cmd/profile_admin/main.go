package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"kame_butler/internal/config"
	"kame_butler/internal/store"
)

// profile_admin: ユーザープロフィールの確認・削除用の運用ユーティリティ。
//
// 使い方:
//
//	profile_admin -user <userId>          # プロフィールをJSONで表示
//	profile_admin -user <userId> -delete  # プロフィールを削除
func main() {
	envFile := flag.String("env", "", "Path to .env file (default: data/.env)")
	userID := flag.String("user", "", "Target user ID")
	doDelete := flag.Bool("delete", false, "Delete the profile instead of dumping it")
	flag.Parse()

	if *userID == "" {
		flag.Usage()
		os.Exit(2)
	}

	config.LoadEnvironment(*envFile)
	cfg := config.LoadConfig()

	if cfg.RedisURL == "" {
		log.Fatal("REDIS_URLが未設定です（永続ストアなしでは操作できません）")
	}

	storage, err := store.NewRedisProfileStore(cfg.RedisURL, cfg.RedisPrefix)
	if err != nil {
		log.Fatal("Redisストア初期化エラー: ", err)
	}
	defer storage.Close() //nolint:errcheck

	ctx := context.Background()

	if *doDelete {
		if err := storage.Delete(ctx, *userID); err != nil {
			log.Fatal("プロフィール削除エラー: ", err)
		}
		log.Printf("プロフィールを削除しました: %s", *userID)
		return
	}

	profile, err := storage.Get(ctx, *userID)
	if err != nil {
		log.Fatal("プロフィール取得エラー: ", err)
	}

	data, err := json.MarshalIndent(profile, "", "  ")
	if err != nil {
		log.Fatal("JSON整形エラー: ", err)
	}
	fmt.Println(string(data))
}
