// Package domain contains entity without logic, just meta-data
package domain

import (
	"errors"
)

const (
	MaxProfileNameLen = 36
	MaxAvatarURLLen   = 2048
)

var (
	ErrProfileNameTooLong = errors.New("profile name too long")
	ErrAvatarURLTooLong   = errors.New("avatar url too long")
)

// ConnID is the opaque identity the transport assigns to a live connection.
type ConnID string

// Profile holds user-supplied display attributes. Zero value is the empty profile.
type Profile struct {
	Name      string `json:"name"`
	AvatarURL string `json:"avatarUrl"`
}

// NewProfile is a tiny helper to avoid ad-hoc struct literals in adapters.
func NewProfile(name, avatarURL string) (Profile, error) {
	if len(name) > MaxProfileNameLen {
		return Profile{}, ErrProfileNameTooLong
	}
	if len(avatarURL) > MaxAvatarURLLen {
		return Profile{}, ErrAvatarURLTooLong
	}
	return Profile{Name: name, AvatarURL: avatarURL}, nil
}
