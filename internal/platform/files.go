package platform

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
)

// Operating system constants
const (
	OSDarwin  = "darwin"
	OSWindows = "windows"
	OSLinux   = "linux"
)

// File permissions
const (
	DefaultDirPermissions = 0755
)

// Command constants
const (
	OpenCommand     = "open"
	ExplorerCommand = "explorer"
	XDGOpenCommand  = "xdg-open"
)

// DownloadsDirName is the conventional per-user downloads folder
const DownloadsDirName = "Downloads"

// File manager names
var (
	LinuxFileManagers = []string{"nautilus", "dolphin", "thunar", "nemo", "pcmanfm"}
)

// CreateDirectoryIfNotExists creates directory if it doesn't exist
func CreateDirectoryIfNotExists(dirPath string) error {
	if dirPath == "" {
		return fmt.Errorf("directory path is empty")
	}
	info, err := os.Stat(dirPath)
	if os.IsNotExist(err) {
		return os.MkdirAll(dirPath, DefaultDirPermissions)
	}
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("%s exists and is not a directory", dirPath)
	}
	return nil
}

// GetHomeDownloadsDir returns the standard Downloads directory for the user
func GetHomeDownloadsDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	return filepath.Join(homeDir, DownloadsDirName), nil
}

// ExecutableDir returns the directory holding the running binary
func ExecutableDir() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", err
	}
	return filepath.Dir(exe), nil
}

// OpenFolder opens dirPath in the system file manager
func OpenFolder(dirPath string) error {
	absPath, err := filepath.Abs(dirPath)
	if err != nil {
		return fmt.Errorf("failed to get absolute path: %w", err)
	}
	if info, err := os.Stat(absPath); err != nil || !info.IsDir() {
		return fmt.Errorf("folder does not exist: %s", absPath)
	}

	name, args, err := openFolderCommand(runtime.GOOS, absPath, exec.LookPath)
	if err != nil {
		return err
	}
	return exec.Command(name, args...).Start()
}

// openFolderCommand picks the command that reveals dir on goos
func openFolderCommand(goos, dir string, lookPath func(string) (string, error)) (string, []string, error) {
	switch goos {
	case OSDarwin:
		return OpenCommand, []string{dir}, nil
	case OSWindows:
		return ExplorerCommand, []string{dir}, nil
	case OSLinux:
		// xdg-open first, then the common file managers
		if _, err := lookPath(XDGOpenCommand); err == nil {
			return XDGOpenCommand, []string{dir}, nil
		}
		for _, fm := range LinuxFileManagers {
			if _, err := lookPath(fm); err == nil {
				return fm, []string{dir}, nil
			}
		}
		return "", nil, fmt.Errorf("no suitable file manager found")
	default:
		return "", nil, fmt.Errorf("unsupported operating system: %s", goos)
	}
}
