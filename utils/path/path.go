package path

import (
	"os"
	"path/filepath"
	"runtime"
)

// RootEnv 部署後原始碼路徑不存在時，以此環境變數指定根目錄
const RootEnv = "MODELHUB_ROOT"

// RootPath 傳回專案根目錄的絕對路徑
func RootPath() string {
	if root := os.Getenv(RootEnv); root != "" {
		return filepath.Clean(root)
	}
	// 透過 runtime.Caller(0) 回推到此檔案，再往上兩層：/project/utils/path/path.go → /project
	_, filename, _, ok := runtime.Caller(0)
	if !ok {
		wd, _ := os.Getwd()
		return wd
	}
	return filepath.Clean(filepath.Join(filepath.Dir(filename), "..", ".."))
}

// Exists 路徑是否存在
func Exists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, err
}
