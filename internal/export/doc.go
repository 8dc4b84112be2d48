// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package export writes a character selection in a shareable format.
//
// Supported formats:
//   - json: an indented array of {value, label, image, description}
//   - text: one "id<TAB>label" line per character
//   - markdown: a bulleted list, optionally with front matter
//
// # Usage
//
//	if err := export.Write(os.Stdout, "json", selected, nil); err != nil {
//	    return err
//	}
package export
