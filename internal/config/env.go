package config

import "os"

// EnvPrefix prefixes every environment variable the config layer reads.
const EnvPrefix = "SEQ2VID_"

// ApplyEnvConfig applies SEQ2VID_* environment variables to cfg, skipping
// any field whose flag is in changed. It returns an error for malformed
// values.
func ApplyEnvConfig(cfg *Config, changed map[string]bool) error {
	s := newConfigSetter(changed)
	env := func(name string) string { return os.Getenv(EnvPrefix + name) }

	if err := s.setPositiveFloatFromString(FlagDuration, env("DURATION"), &cfg.Duration); err != nil {
		return err
	}
	if err := s.setSpeed(FlagSpeed, env("SPEED"), &cfg.Speed); err != nil {
		return err
	}
	if err := s.setCodec(FlagCodec, env("CODEC"), &cfg.Codec); err != nil {
		return err
	}
	if err := s.setContainer(FlagContainer, env("CONTAINER"), &cfg.Container); err != nil {
		return err
	}
	if err := s.setColorMode(FlagColor, env("COLOR"), &cfg.ColorMode); err != nil {
		return err
	}
	if err := s.setIntFromString(FlagQuality, env("QUALITY"), &cfg.Quality); err != nil {
		return err
	}
	if err := s.setIntFromString(FlagCRF, env("CRF"), &cfg.CRF); err != nil {
		return err
	}
	if err := s.setDuration(FlagDebounce, env("DEBOUNCE"), &cfg.Debounce); err != nil {
		return err
	}

	s.setString(FlagPreset, env("PRESET"), &cfg.Preset)
	s.setString(FlagLog, env("LOG"), &cfg.LogFile)
	s.setString(FlagFFmpeg, env("FFMPEG"), &cfg.FFmpegBin)
	s.setString(FlagFFprobe, env("FFPROBE"), &cfg.FFprobeBin)

	s.setBoolFromString(FlagNoClobber, env("NO_CLOBBER"), &cfg.NoClobber)
	s.setBoolFromString(FlagVerify, env("VERIFY"), &cfg.Verify)
	s.setBoolFromString(FlagVerbose, env("VERBOSE"), &cfg.Verbose)

	return nil
}
