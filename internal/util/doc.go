// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util provides small helpers shared across charpick.
//
// # Key Functions
//
// String Utilities:
//   - TruncateWidth, StringWidth, PadRight: display-width aware (go-runewidth)
//   - TruncateRunes: UTF-8 safe truncation with ellipsis
//
// File Operations:
//   - AtomicWriteFile: Crash-safe file writing with fsync
//
// # Usage
//
//	label := util.TruncateWidth(option.Label, 24)
//	err := util.AtomicWriteFile(path, data, 0644)
package util
