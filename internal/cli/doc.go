// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli parses the charpick command line and detects whether the
// terminal can host the interactive picker.
package cli
