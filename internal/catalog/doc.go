// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package catalog provides the HTTP client for the public character directory.
//
// The directory exposes a read-only REST API; this package performs the single
// lookup the picker needs (characters filtered by name) plus a multi-id fetch
// used to resolve pre-selected values at startup.
//
// # Key Types
//
//   - Client: rate-limited HTTP client for the directory API
//   - ClientConfig: base URL, timeout and rate limit settings
//   - Character: one directory entry as returned by the API
//   - ClientError: typed error with sentinel matching via errors.Is
//
// # Usage
//
//	client := catalog.NewClient(catalog.DefaultConfig())
//	options, err := client.Search(ctx, "rick")
//	if errors.Is(err, catalog.ErrNotFound) {
//	    // nothing matched
//	}
//
// Search returns errors as-is. Callers that feed a UI are expected to degrade
// failures to an empty result set.
package catalog
