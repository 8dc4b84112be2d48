// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package finder

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"github.com/jeranaias/charpick/internal/catalog"
	"github.com/jeranaias/charpick/internal/model"
	"github.com/jeranaias/charpick/internal/ui/multiselect"
)

// Lookup is the part of the catalog client the screen needs.
type Lookup interface {
	Characters(ctx context.Context, query catalog.CharacterQuery) (*catalog.CharactersResponse, error)
}

// NewSearchFunc adapts a catalog lookup for the control.
//
// Lookup failures never reach the control: they are logged and turned into
// an empty candidate list. A "no characters match" answer is routine and
// logged at debug level, anything else at error level. A cancelled context
// is returned unchanged so a superseded lookup is dropped quietly.
func NewSearchFunc(lookup Lookup, logger *slog.Logger) multiselect.SearchFunc {
	logger = orDiscard(logger)

	return func(ctx context.Context, text string) (model.OptionList, error) {
		resp, err := lookup.Characters(ctx, catalog.CharacterQuery{Name: text})
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, ctxErr
			}
			if errors.Is(err, catalog.ErrNotFound) {
				logger.Debug("no characters match", "query", text)
			} else {
				logger.Error("character lookup failed", "query", text, "error", err)
			}
			return model.OptionList{}, nil
		}

		options := catalog.ToOptions(resp.Results)
		logger.Debug("character lookup",
			"query", text,
			"results", len(options),
			"total", resp.Info.Count,
		)
		return options, nil
	}
}

func orDiscard(logger *slog.Logger) *slog.Logger {
	if logger == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return logger
}
