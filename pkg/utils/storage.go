package utils

import (
	"fmt"

	"github.com/quasilyte/gdata/v2"
)

// OpenStorage 打开 gdata 跨平台存储（桌面端为用户数据目录下的 appName 子目录）
func OpenStorage(appName string) (*gdata.Manager, error) {
	if err := prepareStorageDir(); err != nil {
		return nil, fmt.Errorf("prepare storage for %q: %w", appName, err)
	}
	m, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		return nil, fmt.Errorf("open storage %q: %w", appName, err)
	}
	return m, nil
}
