//go:build !android

package utils

// gdata 在桌面平台会自行创建存储目录
func prepareStorageDir() error {
	return nil
}
