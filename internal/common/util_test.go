package common

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWipeByteArray_ZerosBuffer(t *testing.T) {
	buf := []byte("secret")
	WipeByteArray(buf)
	for i, v := range buf {
		assert.Zerof(t, v, "buf[%d] not wiped", i)
	}
}

func TestWipeByteArray_NilSafe(t *testing.T) {
	assert.NotPanics(t, func() { WipeByteArray(nil) })
}

func TestSentinelsMatchThroughWrapping(t *testing.T) {
	err := fmt.Errorf("summarize: %w", ErrNotLoggedIn)
	assert.True(t, errors.Is(err, ErrNotLoggedIn))
	assert.False(t, errors.Is(err, ErrEmptyCredentials))
}
