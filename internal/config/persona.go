package config

import (
	"context"
	"log"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"kame_butler/internal/util"
)

// DefaultPersona はカメ執事のキャラクター設定。data/persona.txt で上書きできる。
const DefaultPersona = `あなたは「カメ執事」という名前の、関西弁で話すカメの執事AIです。
丁寧だけど親しみやすい関西弁で、ユーザーの相談や雑談に応じてください。
一人称は「わし」、ユーザーへの呼びかけは「あんさん」または登録された名前を使ってください。
ユーザーが商品を探している場合は、商品検索の機能を使って提案してください。`

// Persona はホットリロード可能なキャラクタープロンプトを保持する
type Persona struct {
	mu       sync.RWMutex
	text     string
	filePath string
	watcher  *fsnotify.Watcher
}

// NewStaticPersona はリロードしない固定ペルソナを返す（ファイルなし起動・テスト用）
func NewStaticPersona(text string) *Persona {
	if text == "" {
		text = DefaultPersona
	}
	return &Persona{text: text}
}

// NewPersona はファイルからペルソナを読み込む。ファイルがなければ既定値で起動する。
func NewPersona(filePath string) *Persona {
	p := &Persona{
		filePath: filePath,
		text:     DefaultPersona,
	}

	if err := p.reload(); err != nil {
		log.Printf("ペルソナ初期読み込みエラー（既定値で起動します）: %v", err)
	}

	return p
}

// Get は現在のキャラクタープロンプトを返す
func (p *Persona) Get() string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.text
}

func (p *Persona) reload() error {
	data, err := os.ReadFile(p.filePath)
	if err != nil {
		return err
	}

	text := strings.TrimSpace(string(data))
	if text == "" {
		text = DefaultPersona
	}

	p.mu.Lock()
	p.text = text
	p.mu.Unlock()

	log.Printf("ペルソナ再読み込み完了: %dバイト (ファイル: %s)", len(text), p.filePath)
	return nil
}

// StartWatching はペルソナファイルの変更監視を開始する
func (p *Persona) StartWatching(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}

	p.watcher = watcher

	if err := watcher.Add(p.filePath); err != nil {
		watcher.Close() //nolint:errcheck
		return err
	}

	go p.watchLoop(ctx)
	log.Printf("ペルソナファイル監視開始: %s", p.filePath)

	return nil
}

func (p *Persona) watchLoop(ctx context.Context) {
	defer p.watcher.Close() //nolint:errcheck

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-p.watcher.Events:
			if !ok {
				return
			}
			p.handleFileEvent(ctx, event)
		case err, ok := <-p.watcher.Errors:
			if !ok {
				return
			}
			log.Printf("ペルソナファイル監視エラー: %v", err)
		}
	}
}

func (p *Persona) handleFileEvent(ctx context.Context, event fsnotify.Event) {
	if event.Op&(fsnotify.Write|fsnotify.Create) != 0 {
		if err := p.reload(); err != nil {
			log.Printf("ペルソナ再読み込みエラー: %v", err)
		}
		return
	}

	// エディタはリネームで保存することが多いので、監視を張り直す
	if event.Op&(fsnotify.Rename|fsnotify.Remove) != 0 {
		go p.attemptRewatch(ctx)
	}
}

func (p *Persona) attemptRewatch(ctx context.Context) {
	for i := 0; i < 5; i++ {
		if _, err := os.Stat(p.filePath); err == nil {
			if p.watcher.Add(p.filePath) == nil {
				if err := p.reload(); err != nil {
					log.Printf("ペルソナ再読み込みエラー: %v", err)
				}
				return
			}
		}

		select {
		case <-ctx.Done():
			return
		case <-time.After(100 * time.Millisecond):
		}
	}
}

// InitializePersona はペルソナを初期化し、ファイルがあれば監視を開始する
func InitializePersona(ctx context.Context) *Persona {
	personaPath := util.FindDataFile("persona.txt")
	if personaPath == "" {
		log.Printf("persona.txtが見つかりません。組み込みのペルソナを使用します")
		return NewStaticPersona("")
	}

	persona := NewPersona(personaPath)
	if err := persona.StartWatching(ctx); err != nil {
		log.Printf("ペルソナファイル監視開始エラー: %v", err)
	}
	return persona
}
