package system

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"syscall"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
)

// CPUCount returns the number of logical CPUs, the default number of render
// workers.
func CPUCount() int {
	n, err := cpu.Counts(true)
	if err != nil || n < 1 {
		if err != nil {
			Logger().Warn("cpu count unavailable, using runtime.NumCPU", "err", err)
		}
		return runtime.NumCPU()
	}
	return n
}

// InitResourceLimits raises the open file limit; parallel saves keep one
// file open per worker.
func InitResourceLimits() {
	var rLimit syscall.Rlimit
	err := syscall.Getrlimit(syscall.RLIMIT_NOFILE, &rLimit)
	if err != nil {
		Logger().Warn("get open file limit", "err", err)
		return
	}

	rLimit.Cur = 2048
	if rLimit.Cur > rLimit.Max {
		rLimit.Cur = rLimit.Max
	}

	if err := syscall.Setrlimit(syscall.RLIMIT_NOFILE, &rLimit); err != nil {
		Logger().Warn("set open file limit", "err", err)
		return
	}
	Logger().Debug("open file limit raised", "limit", rLimit.Cur)
}

// FindLatestFile returns the most recently modified file in dir whose
// extension is one of exts (case insensitive).
func FindLatestFile(dir string, exts ...string) (string, error) {
	files, err := os.ReadDir(dir)
	if err != nil {
		return "", err
	}

	var latestFile string
	var latestTime time.Time

	for _, f := range files {
		if f.IsDir() || !hasExt(f.Name(), exts) {
			continue
		}
		info, err := f.Info()
		if err != nil {
			continue
		}
		if info.ModTime().After(latestTime) {
			latestTime = info.ModTime()
			latestFile = filepath.Join(dir, f.Name())
		}
	}

	if latestFile == "" {
		return "", fmt.Errorf("no %s files found in %s", strings.Join(exts, "/"), dir)
	}
	return latestFile, nil
}

// FindLatestPDF returns the newest PDF in dir.
func FindLatestPDF(dir string) (string, error) {
	return FindLatestFile(dir, ".pdf")
}

// FindLatestScript returns the newest YAML script in dir.
func FindLatestScript(dir string) (string, error) {
	return FindLatestFile(dir, ".yaml", ".yml")
}

func hasExt(name string, exts []string) bool {
	lower := strings.ToLower(name)
	for _, ext := range exts {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}

// GetBestH264Encoder picks a hardware H.264 encoder known to ffmpeg, falling
// back to libx264.
func GetBestH264Encoder() string {
	out, err := exec.Command("ffmpeg", "-hide_banner", "-encoders").CombinedOutput()
	if err != nil {
		return "libx264"
	}
	for _, name := range []string{"h264_videotoolbox", "h264_nvenc"} {
		if strings.Contains(string(out), name) {
			return name
		}
	}
	return "libx264"
}
