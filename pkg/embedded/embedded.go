// Package embedded 提供内置数据文件的统一访问接口
//
// 内置数据（属性元数据表、编辑器参数）嵌入在本包的 data/ 目录中，
// 不需要初始化即可使用。调用 Init() 可以用外部目录覆盖内置数据，
// 例如命令行的 --data 参数。
//
// 所有路径必须以 "data/" 开头。
package embedded

import (
	"embed"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
)

//go:embed data
var builtinFS embed.FS

var (
	dataFS     fs.FS = builtinFS
	overridden bool
)

// Init 用外部文件系统替换内置数据
//
// 参数:
//
//	data - 根目录下包含 data/ 子目录的文件系统；nil 表示恢复内置数据
func Init(data fs.FS) {
	if data == nil {
		dataFS = builtinFS
		overridden = false
		return
	}
	dataFS = data
	overridden = true
}

// IsOverridden reports whether Init replaced the built-in data.
func IsOverridden() bool {
	return overridden
}

// normalize 统一路径分隔符并检查前缀
func normalize(path string) (string, error) {
	path = filepath.ToSlash(path)
	path = strings.TrimPrefix(path, "./")
	if path != "data" && !strings.HasPrefix(path, "data/") {
		return "", fmt.Errorf("unknown resource path prefix: %s (must start with 'data/')", path)
	}
	return path, nil
}

// Open 打开数据文件
func Open(path string) (fs.File, error) {
	p, err := normalize(path)
	if err != nil {
		return nil, err
	}
	return dataFS.Open(p)
}

// ReadFile 读取数据文件内容
func ReadFile(path string) ([]byte, error) {
	p, err := normalize(path)
	if err != nil {
		return nil, err
	}
	return fs.ReadFile(dataFS, p)
}

// Exists 检查文件是否存在
func Exists(path string) bool {
	file, err := Open(path)
	if err != nil {
		return false
	}
	file.Close()
	return true
}

// Glob 匹配数据文件
func Glob(pattern string) ([]string, error) {
	p, err := normalize(pattern)
	if err != nil {
		return nil, err
	}
	return fs.Glob(dataFS, p)
}

// ReadDir 读取目录内容
func ReadDir(path string) ([]fs.DirEntry, error) {
	p, err := normalize(path)
	if err != nil {
		return nil, err
	}
	return fs.ReadDir(dataFS, p)
}
