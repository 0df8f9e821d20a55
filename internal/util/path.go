package util

import (
	"os"
	"path/filepath"
)

const DataDirName = "data"

// FindDataFile は data/ ディレクトリ配下のファイルを探す。
// カレントディレクトリを優先し、次に実行ファイルのディレクトリを見る。
// 見つからない場合は空文字列を返す（呼び出し側でフォールバックを決める）。
func FindDataFile(filename string) string {
	if cwd, err := os.Getwd(); err == nil {
		path := filepath.Join(cwd, DataDirName, filename)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	if exe, err := os.Executable(); err == nil {
		path := filepath.Join(filepath.Dir(exe), DataDirName, filename)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// DataFilePath は data/ 配下の書き込み先パスを返す。存在チェックはしない。
func DataFilePath(filename string) string {
	if path := FindDataFile(filename); path != "" {
		return path
	}
	return filepath.Join(DataDirName, filename)
}
