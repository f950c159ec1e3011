package director

import (
	"fmt"
	"path/filepath"
	"time"
)

// GenerateScriptPath returns a timestamped script file name in dir.
func GenerateScriptPath(dir string) string {
	timestamp := time.Now().Format("2006-01-02_15-04-05")
	return filepath.Join(dir, fmt.Sprintf("script_%s.yaml", timestamp))
}
