package system

import (
	"fmt"
	"image"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"syscall"
	"time"

	"github.com/shirou/gopsutil/v3/mem"
)

// InitResourceLimits raises the open-file limit so batch runs over many GIFs
// do not trip the default soft limit (macOS/Linux).
func InitResourceLimits() {
	var rLimit syscall.Rlimit
	if err := syscall.Getrlimit(syscall.RLIMIT_NOFILE, &rLimit); err != nil {
		log.Printf("[!] Could not read file limit: %v", err)
		return
	}

	rLimit.Cur = 2048
	if rLimit.Cur > rLimit.Max {
		rLimit.Cur = rLimit.Max
	}

	if err := syscall.Setrlimit(syscall.RLIMIT_NOFILE, &rLimit); err != nil {
		log.Printf("[!] Could not raise file limit: %v", err)
	}
}

// FindLatestGIF returns the most recently modified .gif file in dir.
func FindLatestGIF(dir string) (string, error) {
	files, err := os.ReadDir(dir)
	if err != nil {
		return "", err
	}

	var latestFile string
	var latestTime time.Time

	for _, f := range files {
		if f.IsDir() || !strings.HasSuffix(strings.ToLower(f.Name()), ".gif") {
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
		return "", fmt.Errorf("no GIF files found in %s", dir)
	}
	return latestFile, nil
}

// PaletteWorkers picks how many frames to palettize concurrently during GIF
// encoding. Bounded by CPU count and by available memory, since every worker
// holds one paletted frame plus dithering error buffers.
func PaletteWorkers(frame image.Rectangle) int {
	workers := runtime.NumCPU()

	vm, err := mem.VirtualMemory()
	if err != nil {
		return workers
	}

	// Rough per-worker footprint: RGBA source view + paletted output.
	perWorker := uint64(frame.Dx()*frame.Dy()) * 5
	if perWorker == 0 {
		return workers
	}
	if byMem := int(vm.Available / (perWorker * 4)); byMem < workers {
		workers = byMem
	}
	if workers < 1 {
		workers = 1
	}
	return workers
}
