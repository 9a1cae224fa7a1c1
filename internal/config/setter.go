package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/backmassage/seq2vid/internal/domain"
	"github.com/backmassage/seq2vid/internal/planner"
)

// configSetter applies values from a lower-precedence layer. A value is
// only applied when it is non-empty and its flag was not set explicitly.
type configSetter struct {
	changed map[string]bool
}

func newConfigSetter(changed map[string]bool) *configSetter {
	return &configSetter{changed: changed}
}

func (s *configSetter) skip(flag string) bool { return s.changed[flag] }

func (s *configSetter) setString(flag, value string, dst *string) {
	if value == "" || s.skip(flag) {
		return
	}
	*dst = value
}

// setIntPtr sets an int from a pointer; zero is a legitimate value.
func (s *configSetter) setIntPtr(flag string, value *int, dst *int) {
	if value == nil || s.skip(flag) {
		return
	}
	*dst = *value
}

// setPositiveFloatPtr sets a float64 from a pointer. A present value must
// be positive and finite.
func (s *configSetter) setPositiveFloatPtr(flag string, value *float64, dst *float64) error {
	if value == nil || s.skip(flag) {
		return nil
	}
	if !positiveFinite(*value) {
		return fmt.Errorf("%w: %s must be a positive number (got %v)", domain.ErrInvalidInput, flag, *value)
	}
	*dst = *value
	return nil
}

func (s *configSetter) setDuration(flag, value string, dst *time.Duration) error {
	if value == "" || s.skip(flag) {
		return nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	*dst = d
	return nil
}

func (s *configSetter) setBool(flag string, value *bool, dst *bool) {
	if value == nil || s.skip(flag) {
		return
	}
	*dst = *value
}

func (s *configSetter) setSpeed(flag, value string, dst *float64) error {
	if value == "" || s.skip(flag) {
		return nil
	}
	v, err := planner.ParseSpeed(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	*dst = v
	return nil
}

func (s *configSetter) setCodec(flag, value string, dst *Codec) error {
	if value == "" || s.skip(flag) {
		return nil
	}
	c, err := ParseCodec(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	*dst = c
	return nil
}

func (s *configSetter) setContainer(flag, value string, dst *Container) error {
	if value == "" || s.skip(flag) {
		return nil
	}
	c, err := ParseContainer(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	*dst = c
	return nil
}

func (s *configSetter) setColorMode(flag, value string, dst *ColorMode) error {
	if value == "" || s.skip(flag) {
		return nil
	}
	m, err := ParseColorMode(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	*dst = m
	return nil
}

// setIntFromString parses a string to int. Zero and negative values are
// kept; range checks belong to Validate.
func (s *configSetter) setIntFromString(flag, value string, dst *int) error {
	if value == "" || s.skip(flag) {
		return nil
	}
	i, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	*dst = i
	return nil
}

// setPositiveFloatFromString parses a positive, finite float64.
func (s *configSetter) setPositiveFloatFromString(flag, value string, dst *float64) error {
	if value == "" || s.skip(flag) {
		return nil
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return fmt.Errorf("%w: parse %s: %w", domain.ErrInvalidInput, flag, err)
	}
	return s.setPositiveFloatPtr(flag, &f, dst)
}

// setBoolFromString accepts "true" or "1" as true, anything else as false.
func (s *configSetter) setBoolFromString(flag, value string, dst *bool) {
	if value == "" || s.skip(flag) {
		return
	}
	*dst = value == "true" || value == "1"
}
