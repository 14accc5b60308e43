package embedded

import (
	"os"
	"testing"
	"testing/fstest"
)

// newTestFS 构造测试用的内存文件系统（以 data 目录为根）
func newTestFS() fstest.MapFS {
	return fstest.MapFS{
		"games.yaml":        {Data: []byte("games: []\n")},
		"strings/ru-RU.txt": {Data: []byte("[NEVER_PLAYED]\nНикогда\n")},
		"strings/en-US.txt": {Data: []byte("[NEVER_PLAYED]\nNever\n")},
		"strings/README.md": {Data: []byte("not a string table")},
	}
}

// TestIsInitialized 测试初始化状态检测
func TestIsInitialized(t *testing.T) {
	initialized = false

	if IsInitialized() {
		t.Error("Expected IsInitialized() to return false before Init()")
	}

	Init(newTestFS())

	if !IsInitialized() {
		t.Error("Expected IsInitialized() to return true after Init()")
	}

	// 重置状态以避免影响其他测试
	initialized = false
}

// TestNotInitialized 测试未初始化时调用各个接口
func TestNotInitialized(t *testing.T) {
	initialized = false
	const want = "embedded package not initialized, call Init() first"

	if _, err := Open("data/games.yaml"); err == nil || err.Error() != want {
		t.Errorf("Open: unexpected error %v", err)
	}
	if _, err := ReadFile("data/games.yaml"); err == nil || err.Error() != want {
		t.Errorf("ReadFile: unexpected error %v", err)
	}
	if _, err := Glob("data/*.yaml"); err == nil || err.Error() != want {
		t.Errorf("Glob: unexpected error %v", err)
	}
	// Exists 在未初始化时应返回 false（因为内部调用 Open 会出错）
	if Exists("data/games.yaml") {
		t.Error("Expected Exists() to return false before Init()")
	}
}

// TestInvalidPrefix 测试无效路径前缀
func TestInvalidPrefix(t *testing.T) {
	Init(newTestFS())
	defer func() { initialized = false }()

	tests := []struct {
		name string
		call func() error
		want string
	}{
		{
			name: "Open",
			call: func() error { _, err := Open("assets/icon.png"); return err },
			want: "unknown resource path prefix: assets/icon.png (must start with 'data/')",
		},
		{
			name: "ReadFile",
			call: func() error { _, err := ReadFile("invalid/path/test.txt"); return err },
			want: "unknown resource path prefix: invalid/path/test.txt (must start with 'data/')",
		},
		{
			name: "Glob",
			call: func() error { _, err := Glob("invalid/*.txt"); return err },
			want: "unknown resource path prefix: invalid/*.txt (must start with 'data/')",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.call()
			if err == nil {
				t.Fatal("Expected error for invalid path prefix")
			}
			if err.Error() != tt.want {
				t.Errorf("Unexpected error message: %v", err)
			}
		})
	}
}

// TestReadFile 测试读取文件及路径规范化
func TestReadFile(t *testing.T) {
	Init(newTestFS())
	defer func() { initialized = false }()

	for _, path := range []string{"data/games.yaml", "./data/games.yaml"} {
		data, err := ReadFile(path)
		if err != nil {
			t.Fatalf("ReadFile(%q) failed: %v", path, err)
		}
		if string(data) != "games: []\n" {
			t.Errorf("ReadFile(%q) = %q", path, data)
		}
	}

	if _, err := ReadFile("data/missing.yaml"); !os.IsNotExist(err) {
		t.Errorf("Expected not-exist error, got %v", err)
	}
}

// TestExists 测试文件存在检测
func TestExists(t *testing.T) {
	Init(newTestFS())
	defer func() { initialized = false }()

	if !Exists("data/strings/ru-RU.txt") {
		t.Error("Expected ru-RU strings to exist")
	}
	if Exists("data/strings/de-DE.txt") {
		t.Error("Expected de-DE strings to be missing")
	}
}

// TestGlob 测试通配符匹配
func TestGlob(t *testing.T) {
	Init(newTestFS())
	defer func() { initialized = false }()

	matches, err := Glob("data/strings/*.txt")
	if err != nil {
		t.Fatalf("Glob failed: %v", err)
	}
	if len(matches) != 2 {
		t.Fatalf("Expected 2 string tables, got %v", matches)
	}
	// fs.Glob 按字典序返回
	if matches[0] != "data/strings/en-US.txt" {
		t.Errorf("Expected data/ prefixed path, got %q", matches[0])
	}
	if _, err := ReadFile(matches[0]); err != nil {
		t.Errorf("Glob result should be readable: %v", err)
	}
}
