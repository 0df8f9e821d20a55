package util

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFindDataFile(t *testing.T) {
	tmp := t.TempDir()
	dataDir := filepath.Join(tmp, DataDirName)
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		t.Fatalf("Failed to create data dir: %v", err)
	}

	testFilename := "path_test_dummy.txt"
	testFilePath := filepath.Join(dataDir, testFilename)
	if err := os.WriteFile(testFilePath, []byte("test"), 0644); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}

	originalWd, _ := os.Getwd()
	defer os.Chdir(originalWd) //nolint:errcheck
	if err := os.Chdir(tmp); err != nil {
		t.Fatalf("Failed to change dir: %v", err)
	}

	found := FindDataFile(testFilename)
	if found == "" {
		t.Fatal("存在するファイルが見つからなかった")
	}
	// macOSでは/tmpがシンボリックリンクのためパスは後方一致で比較する
	if filepath.Base(found) != testFilename {
		t.Errorf("found = %s", found)
	}
}

func TestFindDataFileMissing(t *testing.T) {
	if got := FindDataFile("non_existent_file_definitely_12345"); got != "" {
		t.Errorf("存在しないファイルで %q が返った", got)
	}
}

func TestDataFilePath(t *testing.T) {
	got := DataFilePath("non_existent_file_definitely_12345")
	want := filepath.Join(DataDirName, "non_existent_file_definitely_12345")
	if got != want {
		t.Errorf("DataFilePath = %q, want %q", got, want)
	}
}
