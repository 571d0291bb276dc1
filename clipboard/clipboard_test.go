package clipboard

import (
	"bytes"
	"encoding/base64"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stub(t *testing.T, sysErr error, tty bool) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	oldWrite, oldTerm, oldTTY := systemWrite, terminal, isTerminal
	t.Cleanup(func() { systemWrite, terminal, isTerminal = oldWrite, oldTerm, oldTTY })

	systemWrite = func(string) error { return sysErr }
	terminal = &buf
	isTerminal = func() bool { return tty }
	return &buf
}

func TestCopySystem(t *testing.T) {
	buf := stub(t, nil, true)
	m, err := Copy("row")
	require.NoError(t, err)
	assert.Equal(t, System, m)
	assert.Zero(t, buf.Len())
}

func TestCopyFallsBackToOSC52(t *testing.T) {
	t.Setenv("TERM", "xterm-256color")
	t.Setenv("TMUX", "")
	buf := stub(t, errors.New("no xclip"), true)

	m, err := Copy("2026-01-20\tTrue")
	require.NoError(t, err)
	assert.Equal(t, OSC52, m)
	assert.Contains(t, buf.String(), "\x1b]52;c;")
	assert.Contains(t, buf.String(), base64.StdEncoding.EncodeToString([]byte("2026-01-20\tTrue")))
}

func TestCopyUnavailable(t *testing.T) {
	t.Setenv("TERM", "dumb")
	stub(t, errors.New("no xclip"), true)

	_, err := Copy("x")
	assert.ErrorIs(t, err, ErrUnavailable)

	t.Setenv("TERM", "xterm")
	stub(t, errors.New("no xclip"), false)
	_, err = Copy("x")
	assert.ErrorIs(t, err, ErrUnavailable)
}
