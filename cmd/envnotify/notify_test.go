package main

import (
	"bytes"
	"errors"
	"testing"

	"github.com/dshills/envnotify/internal/broadcast"
	"github.com/dshills/envnotify/internal/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestRunSuccess(t *testing.T) {
	sender := &broadcast.MockSender{OK: true}
	var stderr bytes.Buffer

	code := run(nil, sender, &stderr)

	assert.Equal(t, 0, code)
	assert.Empty(t, stderr.String())
	sent := sender.Sent()
	require.Len(t, sent, 1)
	assert.Equal(t, broadcast.EnvironmentMessage(), sent[0])
}

func TestRunFailure(t *testing.T) {
	tests := []struct {
		name   string
		sender *broadcast.MockSender
	}{
		{"zero result", &broadcast.MockSender{OK: false}},
		{"sender error", &broadcast.MockSender{Err: broadcast.ErrUnsupported}},
		{"error with non-zero result", &broadcast.MockSender{OK: true, Err: errors.New("boom")}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stderr bytes.Buffer
			code := run(nil, tt.sender, &stderr)
			assert.Equal(t, 1, code)
			assert.Empty(t, stderr.String(), "failure must be silent")
			assert.Len(t, tt.sender.Sent(), 1, "no retry")
		})
	}
}

func TestRunIgnoresArguments(t *testing.T) {
	argSets := [][]string{
		{},
		{"foo"},
		{"--help"},
		{"-h"},
		{"--version"},
		{"help"},
		{"completion", "bash"},
		{"--unknown-flag", "value", "positional"},
		{"--", "-x"},
		{"__complete", "x"},
		{"__completeNoDesc"},
		{"__complete", "envnotify", ""},
	}
	for _, args := range argSets {
		for _, ok := range []bool{true, false} {
			sender := &broadcast.MockSender{OK: ok}
			var stderr bytes.Buffer
			code := run(args, sender, &stderr)

			want := 1
			if ok {
				want = 0
			}
			assert.Equal(t, want, code, "args %q", args)
			assert.Empty(t, stderr.String(), "args %q", args)
			require.Len(t, sender.Sent(), 1, "args %q", args)
			assert.Equal(t, broadcast.EnvironmentMessage(), sender.Sent()[0], "args %q", args)
		}
	}
}

func TestRunSendsBoundedMessage(t *testing.T) {
	sender := &broadcast.MockSender{OK: true}
	require.Equal(t, 0, run([]string{"x"}, sender, &bytes.Buffer{}))

	m := sender.Sent()[0]
	assert.NotZero(t, m.Flags&broadcast.SMTOAbortIfHung, "hung windows must be skipped")
	assert.Equal(t, uint32(5000), m.TimeoutMillis())
}

func TestRunLogsIgnoredArguments(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	log.Set(zap.New(core))
	t.Cleanup(func() { log.Set(nil) })

	require.Equal(t, 0, run([]string{"a", "b"}, &broadcast.MockSender{OK: true}, &bytes.Buffer{}))

	entries := logs.FilterMessage("ignoring arguments").All()
	require.Len(t, entries, 1)
	assert.Equal(t, []interface{}{"a", "b"}, entries[0].ContextMap()["args"])
}

func TestExitErr(t *testing.T) {
	assert.Equal(t, "exit status 1", (&exitErr{code: 1}).Error())
	assert.Equal(t, "bad thing 7", exitError(3, "bad thing %d", 7).Error())
}
