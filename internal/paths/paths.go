package paths

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	AppDirName     = "sideclip-icons"
	ConfigFileName = "sideclip-icons.json"
	LogFileName    = "sideclip-icons.log"
	DBFileName     = "sideclip-icons.db"
	DefaultOutDir  = "icons"
	DirPerm        = 0755
	FilePerm       = 0644
)

// IconFileName returns the PNG file name for an icon size, e.g. "icon16.png".
func IconFileName(size int) string {
	return fmt.Sprintf("icon%d.png", size)
}

// AtomicWrite writes data to path via a temporary file + rename to avoid
// partial writes. The parent directory is created if needed.
func AtomicWrite(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), DirPerm); err != nil {
		return err
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, FilePerm); err != nil {
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return err
	}
	return nil
}

// DataDir returns the platform-specific data directory for the run log:
//   - Windows: %APPDATA%\sideclip-icons
//   - Unix:    ~/.config/sideclip-icons
//
// Falls back to os.TempDir()/sideclip-icons if neither is available.
func DataDir() string {
	if appdata := os.Getenv("APPDATA"); appdata != "" {
		return filepath.Join(appdata, AppDirName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), AppDirName)
	}
	return filepath.Join(home, ".config", AppDirName)
}
