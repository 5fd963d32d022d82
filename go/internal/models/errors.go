package models

import "errors"

// ErrUnknownSetting is returned when a setting name is not one of AllSettings
var ErrUnknownSetting = errors.New("unknown setting")

// ErrUnknownMode is returned for a mode other than classic or extension
var ErrUnknownMode = errors.New("unknown board mode")
