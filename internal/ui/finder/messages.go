// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package finder

import "github.com/jeranaias/charpick/internal/config"

// ConfigReloadedMsg carries a configuration re-read from disk. The screen
// applies the search and details settings without restarting.
type ConfigReloadedMsg struct {
	Config *config.Config
}
