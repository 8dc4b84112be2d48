// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export_test

import (
	"fmt"
	"os"

	"github.com/jeranaias/charpick/internal/export"
	"github.com/jeranaias/charpick/internal/model"
)

// ExampleWrite exports a selection as tab-separated text.
func ExampleWrite() {
	selected := model.OptionList{
		{Value: "1", Label: "Rick Sanchez", Description: "51 Episodes"},
		{Value: "2", Label: "Morty Smith", Description: "51 Episodes"},
	}

	if err := export.Write(os.Stdout, export.FormatText, selected, nil); err != nil {
		fmt.Printf("Export failed: %v\n", err)
	}
	// Output:
	// 1	Rick Sanchez
	// 2	Morty Smith
}
