package utils

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/charmbracelet/log"
)

// corpusPatterns are the file names a data dir is expected to hold.
var corpusPatterns = []string{"*.txt", "dict_*.bin"}

// PathResolver resolves data and config locations relative to the binary
type PathResolver struct {
	executableDir string
	homeDir       string
	configDir     string
}

// NewPathResolver creates a new path resolver that determines the executable location
func NewPathResolver() (*PathResolver, error) {
	execPath, err := os.Executable()
	if err != nil {
		return nil, err
	}
	execPath, err = filepath.EvalSymlinks(execPath)
	if err != nil {
		return nil, err
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Warnf("Could not determine home directory: %v", err)
		homeDir = os.TempDir()
	}

	pr := &PathResolver{
		executableDir: filepath.Dir(execPath),
		homeDir:       homeDir,
		configDir:     configDirFor(homeDir),
	}
	log.Debugf("PathResolver initialized: execDir=%s, configDir=%s", pr.executableDir, pr.configDir)
	return pr, nil
}

// configDirFor returns the platform config directory for sentserve
func configDirFor(homeDir string) string {
	switch runtime.GOOS {
	case "linux":
		if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
			return filepath.Join(configHome, "sentserve")
		}
		return filepath.Join(homeDir, ".config", "sentserve")
	case "windows":
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, "sentserve")
		}
		return filepath.Join(homeDir, "AppData", "Roaming", "sentserve")
	default:
		return filepath.Join(homeDir, ".config", "sentserve")
	}
}

// GetDataDir resolves the directory holding corpus files. Candidates are tried in order:
// 1. the path itself (absolute or relative to the working dir)
// 2. relative to the executable
// 3. <configDir>/data
// The first candidate is returned when none of them holds corpus files.
func (pr *PathResolver) GetDataDir(userSpecifiedPath string) string {
	candidates := []string{userSpecifiedPath}
	if !filepath.IsAbs(userSpecifiedPath) {
		candidates = append(candidates, filepath.Join(pr.executableDir, userSpecifiedPath))
	}
	candidates = append(candidates, filepath.Join(pr.configDir, "data"))

	for _, path := range candidates {
		if HasCorpusFiles(path) {
			log.Debugf("Found data directory: %s", path)
			return path
		}
		log.Debugf("Data directory candidate not valid: %s", path)
	}
	return userSpecifiedPath
}

// GetConfigPath returns the full path for a config file, falling back to the
// executable dir and then the temp dir when the config dir is not writable.
func (pr *PathResolver) GetConfigPath(filename string) string {
	for _, dir := range []string{pr.configDir, pr.executableDir} {
		if result := CheckDirStatus(dir); result.Writable {
			return filepath.Join(dir, filename)
		}
	}
	tempPath := filepath.Join(os.TempDir(), filename)
	log.Warnf("Using temporary config file: %s", tempPath)
	return tempPath
}

// GetConfigDir returns the config directory
func (pr *PathResolver) GetConfigDir() string {
	return pr.configDir
}

// HasCorpusFiles reports whether dir contains at least one corpus file
func HasCorpusFiles(dir string) bool {
	if stat, err := os.Stat(dir); err != nil || !stat.IsDir() {
		return false
	}
	for _, pattern := range corpusPatterns {
		matches, err := filepath.Glob(filepath.Join(dir, pattern))
		if err == nil && len(matches) > 0 {
			return true
		}
	}
	return false
}
