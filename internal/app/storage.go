package app

import (
	"os"
	"path/filepath"
	"strings"
)

func ensureAppDirs() error {
	ad, err := appDir()
	if err != nil {
		return err
	}
	return os.MkdirAll(ad, 0o700)
}

// appDir resolves $POSHTHEME_HOME, then $XDG_CONFIG_HOME/poshtheme, then
// ~/.config/poshtheme.
func appDir() (string, error) {
	if v := os.Getenv("POSHTHEME_HOME"); strings.TrimSpace(v) != "" {
		return v, nil
	}
	if v := os.Getenv("XDG_CONFIG_HOME"); strings.TrimSpace(v) != "" {
		return filepath.Join(v, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName), nil
}

func configFilePath() (string, error) {
	ad, err := appDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(ad, "config.json"), nil
}

func defaultMarkerPath() string {
	ad, err := appDir()
	if err != nil {
		return filepath.Join(os.TempDir(), appName, defaultMarkerName)
	}
	return filepath.Join(ad, defaultMarkerName)
}

func defaultPersonalDir() string {
	ad, err := appDir()
	if err != nil {
		return ""
	}
	return filepath.Join(ad, defaultPersonalSub)
}

// defaultBuiltinDir follows Oh My Posh: $POSH_THEMES_PATH when exported,
// otherwise the cache directory the installer unpacks themes into.
func defaultBuiltinDir() string {
	if v := os.Getenv("POSH_THEMES_PATH"); strings.TrimSpace(v) != "" {
		return v
	}
	if cache, err := os.UserCacheDir(); err == nil {
		return filepath.Join(cache, "oh-my-posh", "themes")
	}
	return ""
}

// initScriptPath is where the rendered shell init text is written. The host
// shell sources it on its next prompt render.
func initScriptPath(cfg Config) string {
	if strings.TrimSpace(cfg.InitScript) != "" {
		return cfg.InitScript
	}
	ad, err := appDir()
	if err != nil {
		ad = filepath.Join(os.TempDir(), appName)
	}
	return filepath.Join(ad, "init."+cfg.Shell)
}
