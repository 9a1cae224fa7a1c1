package config

import (
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"
)

// FileConfig mirrors Config with TOML-friendly types. Pointers distinguish
// "unset" from a zero value.
type FileConfig struct {
	Duration   *float64 `toml:"duration"`
	Speed      string   `toml:"speed"`
	Codec      string   `toml:"codec"`
	Container  string   `toml:"container"`
	Quality    *int     `toml:"quality"`
	CRF        *int     `toml:"crf"`
	Preset     string   `toml:"preset"`
	NoClobber  *bool    `toml:"no_clobber"`
	Verify     *bool    `toml:"verify"`
	Verbose    *bool    `toml:"verbose"`
	Color      string   `toml:"color"`
	LogFile    string   `toml:"log_file"`
	Debounce   string   `toml:"debounce"`
	FFmpegBin  string   `toml:"ffmpeg"`
	FFprobeBin string   `toml:"ffprobe"`
}

// LoadFileConfig reads and parses a TOML config file from the given path.
func LoadFileConfig(path string) (FileConfig, error) {
	var fc FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}
	if err := toml.Unmarshal(b, &fc); err != nil {
		return fc, err
	}
	return fc, nil
}

// DefaultConfigPath returns ~/.seq2vid/config.toml, or "" when the home
// directory is unknown.
func DefaultConfigPath() string {
	if h, err := os.UserHomeDir(); err == nil {
		return filepath.Join(h, ".seq2vid", "config.toml")
	}
	return ""
}

// ApplyFileConfig applies fc to cfg, skipping any field whose flag is in
// changed.
func ApplyFileConfig(cfg *Config, fc FileConfig, changed map[string]bool) error {
	s := newConfigSetter(changed)

	if err := s.setPositiveFloatPtr(FlagDuration, fc.Duration, &cfg.Duration); err != nil {
		return err
	}
	if err := s.setSpeed(FlagSpeed, fc.Speed, &cfg.Speed); err != nil {
		return err
	}
	if err := s.setCodec(FlagCodec, fc.Codec, &cfg.Codec); err != nil {
		return err
	}
	if err := s.setContainer(FlagContainer, fc.Container, &cfg.Container); err != nil {
		return err
	}
	if err := s.setColorMode(FlagColor, fc.Color, &cfg.ColorMode); err != nil {
		return err
	}

	s.setIntPtr(FlagQuality, fc.Quality, &cfg.Quality)
	s.setIntPtr(FlagCRF, fc.CRF, &cfg.CRF)
	s.setString(FlagPreset, fc.Preset, &cfg.Preset)
	s.setString(FlagLog, fc.LogFile, &cfg.LogFile)
	s.setString(FlagFFmpeg, fc.FFmpegBin, &cfg.FFmpegBin)
	s.setString(FlagFFprobe, fc.FFprobeBin, &cfg.FFprobeBin)

	if err := s.setDuration(FlagDebounce, fc.Debounce, &cfg.Debounce); err != nil {
		return err
	}

	s.setBool(FlagNoClobber, fc.NoClobber, &cfg.NoClobber)
	s.setBool(FlagVerify, fc.Verify, &cfg.Verify)
	s.setBool(FlagVerbose, fc.Verbose, &cfg.Verbose)

	return nil
}

// FileExists checks if a file exists at the given path.
func FileExists(p string) bool {
	_, err := os.Stat(p)
	return err == nil
}
