// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures shared by the picker and the catalog.
package model

// =============================================================================
// OPTION
// =============================================================================

// Option is one selectable search result.
// Value is the unique identifier; Image and Description are optional and
// empty when absent. Options are treated as immutable once fetched.
type Option struct {
	Value       string `json:"value"`
	Label       string `json:"label"`
	Image       string `json:"image,omitempty"`
	Description string `json:"description,omitempty"`
}

// HasImage reports whether the option carries a thumbnail URL.
func (o Option) HasImage() bool {
	return o.Image != ""
}

// OptionList is an ordered list of options.
type OptionList []Option

// Clone returns a copy of the list that shares no backing array with l.
// A nil list clones to nil.
func (l OptionList) Clone() OptionList {
	if l == nil {
		return nil
	}
	out := make(OptionList, len(l))
	copy(out, l)
	return out
}

// Index returns the position of the first option whose Value equals value, or -1.
func (l OptionList) Index(value string) int {
	for i, o := range l {
		if o.Value == value {
			return i
		}
	}
	return -1
}

// Contains reports whether an option with the given value is in the list.
func (l OptionList) Contains(value string) bool {
	return l.Index(value) != -1
}

// Values returns the ids of the options in order.
func (l OptionList) Values() []string {
	values := make([]string, len(l))
	for i, o := range l {
		values[i] = o.Value
	}
	return values
}

// FilterWithoutPicked returns the options that are not present in picked,
// preserving the order of options.
func FilterWithoutPicked(options, picked OptionList) OptionList {
	pickedValues := make(map[string]struct{}, len(picked))
	for _, p := range picked {
		pickedValues[p.Value] = struct{}{}
	}

	filtered := make(OptionList, 0, len(options))
	for _, o := range options {
		if _, ok := pickedValues[o.Value]; ok {
			continue
		}
		filtered = append(filtered, o)
	}
	return filtered
}
