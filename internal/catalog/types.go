// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package catalog provides the HTTP client for the public character directory.
package catalog

import (
	"strconv"

	"github.com/jeranaias/charpick/internal/model"
)

// =============================================================================
// REQUEST TYPES
// =============================================================================

// CharacterQuery filters the character listing.
type CharacterQuery struct {
	// Name is a free-text filter; empty means no filter.
	Name string
}

// =============================================================================
// RESPONSE TYPES
// =============================================================================

// Character is one entry of the directory.
type Character struct {
	ID      int      `json:"id"`
	Name    string   `json:"name"`
	Status  string   `json:"status,omitempty"`
	Species string   `json:"species,omitempty"`
	Image   string   `json:"image"`
	Episode []string `json:"episode"`
	URL     string   `json:"url,omitempty"`
}

// PageInfo describes the listing the results were taken from.
type PageInfo struct {
	Count int    `json:"count"`
	Pages int    `json:"pages"`
	Next  string `json:"next,omitempty"`
	Prev  string `json:"prev,omitempty"`
}

// CharactersResponse is the response from /api/character.
type CharactersResponse struct {
	Info    PageInfo    `json:"info"`
	Results []Character `json:"results"`
}

// =============================================================================
// MAPPING
// =============================================================================

// ToOption maps a character to a selectable option.
func ToOption(c Character) model.Option {
	return model.Option{
		Value:       strconv.Itoa(c.ID),
		Label:       c.Name,
		Image:       c.Image,
		Description: strconv.Itoa(len(c.Episode)) + " Episodes",
	}
}

// ToOptions maps every character in order.
func ToOptions(characters []Character) model.OptionList {
	options := make(model.OptionList, len(characters))
	for i, c := range characters {
		options[i] = ToOption(c)
	}
	return options
}
