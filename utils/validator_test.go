package utils

import (
	"testing"

	"github.com/go-home-io/minerhub/mocks"
	"github.com/stretchr/testify/assert"
)

type testStruct struct {
	Port   int32  `validate:"port"`
	Host   string `validate:"host"`
	IPPort string `validate:"ipv4port"`
	Poll   int    `validate:"gte=5" default:"10"`
}

// Tests success validation.
func TestSuccessValidation(t *testing.T) {
	in := []*testStruct{
		{
			Port:   8080,
			Host:   "127.0.0.1",
			IPPort: "127.0.0.1",
		},
		{
			Port:   65535,
			Host:   "antminer-s9.local",
			IPPort: "10.0.0.100:4028",
			Poll:   5,
		},
	}

	validator := NewValidator(mocks.FakeNewLogger(nil))
	for _, v := range in {
		assert.True(t, validator.Validate(v), v.IPPort)
	}
}

// Tests that defaults are applied before validation.
func TestDefaultsApplied(t *testing.T) {
	validator := NewValidator(mocks.FakeNewLogger(nil))
	d := &testStruct{Port: 80, Host: "10.0.0.2", IPPort: "10.0.0.2"}

	assert.True(t, validator.Validate(d))
	assert.Equal(t, 10, d.Poll)
}

// Tests validation without pointer.
func TestNotPointer(t *testing.T) {
	validator := NewValidator(mocks.FakeNewLogger(nil))
	d := testStruct{
		Port:   8080,
		Host:   "127.0.0.1",
		IPPort: "127.0.0.1",
	}

	assert.False(t, validator.Validate(d))
}

// Tests incorrect data.
func TestFailedValidation(t *testing.T) {
	in := []*testStruct{
		{
			Port: 100000, Host: "10.0.0.1", IPPort: "10.0.0.1",
		},
		{
			Port: 80, Host: "10.0.0.1 ", IPPort: "10.0.0.100:test",
		},
		{
			Port: 80, Host: "10.0.0.1", IPPort: "10.0.0.100:22:123",
		},
		{
			Port: 80, Host: "http://10.0.0.1", IPPort: "10.0.0.1",
		},
		{
			Port: 80, Host: "10.0.0.1", IPPort: "10.0.0.1", Poll: 2,
		},
	}

	validator := NewValidator(mocks.FakeNewLogger(nil))
	for k, v := range in {
		assert.False(t, validator.Validate(v), "%d", k)
	}
}

// Tests host checks.
func TestIsValidHost(t *testing.T) {
	data := []struct {
		in  string
		out bool
	}{
		{"192.168.1.10", true},
		{"miner-01", true},
		{"::1", false},
		{"", false},
		{"miner 01", false},
		{"miner/01", false},
		{"192.168.1.10:4028", false},
	}

	for _, v := range data {
		assert.Equal(t, v.out, IsValidHost(v.in), v.in)
	}
}
