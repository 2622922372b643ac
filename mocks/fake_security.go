//go:build !release
// +build !release

package mocks

import (
	"errors"
)

type fakeSecurity struct {
	allow bool
}

func (f *fakeSecurity) GetUser(map[string][]string) (string, error) {
	if f.allow {
		return "test", nil
	}

	return "", errors.New("not found")
}

// FakeNewSecurityProvider creates a security provider which allows or denies everyone.
func FakeNewSecurityProvider(allow bool) *fakeSecurity {
	return &fakeSecurity{
		allow: allow,
	}
}
