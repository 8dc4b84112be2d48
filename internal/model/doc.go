// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures shared by the lookup client and
// the picker UI.
//
// # Key Types
//
//   - Option: one selectable search result (value, label, image, description)
//   - OptionList: an ordered list of options
//   - Selection: the chosen options, ordered and deduplicated by Value
//
// # Usage
//
//	sel := model.NewSelection(nil)
//	sel.Add(model.Option{Value: "1", Label: "Rick Sanchez"})
//	visible := model.FilterWithoutPicked(candidates, sel.Items())
package model
