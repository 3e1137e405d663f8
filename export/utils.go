package export

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/exp/rand"
)

// getFilename 生成导出文件路径
func getFilename(dir, filename, suf string) string {
	if dir == "" {
		dir = os.TempDir()
	}
	if filename == "" {
		filename = fmt.Sprintf("export_%s_%d", time.Now().Format("20060102_150405"), randInt(1000, 9999))
	}
	return filepath.Join(dir, filename+"."+suf)
}

// storageKey 存储上的文件名，同名文件不会覆盖
func storageKey(filename, suf string, now time.Time) string {
	return fmt.Sprintf("%s_%s_%d.%s", filename, now.Format("20060102_150405"), randInt(1000, 9999), suf)
}

func randInt(min, max int) int {
	return rand.Intn(max-min) + min
}
