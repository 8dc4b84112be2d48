// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package finder

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/charpick/internal/catalog"
	"github.com/jeranaias/charpick/internal/model"
)

// stubLookup answers every query with the same response or error.
type stubLookup struct {
	resp    *catalog.CharactersResponse
	err     error
	queries []string
}

func (s *stubLookup) Characters(ctx context.Context, q catalog.CharacterQuery) (*catalog.CharactersResponse, error) {
	s.queries = append(s.queries, q.Name)
	if s.err != nil {
		return nil, s.err
	}
	return s.resp, nil
}

func captureLogger() (*slog.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	return slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})), &buf
}

func TestSearchFunc_MapsResults(t *testing.T) {
	lookup := &stubLookup{resp: &catalog.CharactersResponse{
		Info: catalog.PageInfo{Count: 107},
		Results: []catalog.Character{
			{ID: 1, Name: "Rick", Image: "u", Episode: []string{"e1", "e2"}},
		},
	}}
	logger, logs := captureLogger()

	options, err := NewSearchFunc(lookup, logger)(context.Background(), "rick")
	require.NoError(t, err)

	assert.Equal(t, model.OptionList{{Value: "1", Label: "Rick", Image: "u", Description: "2 Episodes"}}, options)
	assert.Equal(t, []string{"rick"}, lookup.queries)
	assert.Contains(t, logs.String(), "level=DEBUG")
	assert.Contains(t, logs.String(), "query=rick")
	assert.Contains(t, logs.String(), "results=1")
	assert.Contains(t, logs.String(), "total=107")
}

func TestSearchFunc_DegradesErrors(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		wantLevel string
	}{
		{"no match", catalog.ErrNotFound, "level=DEBUG"},
		{"timeout", catalog.ErrTimeout, "level=ERROR"},
		{"server error", &catalog.ClientError{Type: catalog.ErrTypeStatus, Message: "failed to fetch characters: 500"}, "level=ERROR"},
		{"anything else", errors.New("boom"), "level=ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, logs := captureLogger()

			options, err := NewSearchFunc(&stubLookup{err: tt.err}, logger)(context.Background(), "zzz")
			if err != nil {
				t.Fatalf("search error = %v, want nil", err)
			}
			if options == nil || len(options) != 0 {
				t.Errorf("options = %#v, want empty non-nil list", options)
			}
			if !bytes.Contains(logs.Bytes(), []byte(tt.wantLevel)) {
				t.Errorf("log = %q, want %s", logs.String(), tt.wantLevel)
			}
		})
	}
}

func TestSearchFunc_CancelledContextPassesThrough(t *testing.T) {
	logger, logs := captureLogger()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	lookup := &stubLookup{err: &catalog.ClientError{Type: catalog.ErrTypeConnection, Message: "request failed", Cause: context.Canceled}}
	_, err := NewSearchFunc(lookup, logger)(ctx, "rick")

	assert.ErrorIs(t, err, context.Canceled)
	assert.NotContains(t, logs.String(), "level=ERROR", "a superseded lookup is not an error")
}

func TestSearchFunc_NilLogger(t *testing.T) {
	search := NewSearchFunc(&stubLookup{err: errors.New("down")}, nil)

	options, err := search(context.Background(), "rick")
	assert.NoError(t, err)
	assert.Empty(t, options)
}
