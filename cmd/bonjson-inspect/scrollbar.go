// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	scrollbarTrackStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	scrollbarThumbStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
)

// renderScrollbar produces a single-column scrollbar of the given
// height. The thumb indicates which slice of totalItems the visible
// window (visibleItems rows, starting at scrollOffset) currently
// shows. It is always fully rendered: track plus thumb, with the
// thumb spanning the full height when everything fits on screen.
func renderScrollbar(height, totalItems, visibleItems, scrollOffset int) string {
	if height <= 0 {
		return ""
	}

	lines := make([]string, height)

	if totalItems <= visibleItems || totalItems <= 0 {
		for i := range lines {
			lines[i] = scrollbarThumbStyle.Render("┃")
		}
		return strings.Join(lines, "\n")
	}

	thumbSize := height * visibleItems / totalItems
	if thumbSize < 1 {
		thumbSize = 1
	}

	scrollableRange := totalItems - visibleItems
	trackRange := height - thumbSize
	thumbOffset := 0
	if scrollableRange > 0 && trackRange > 0 {
		thumbOffset = scrollOffset * trackRange / scrollableRange
	}
	if thumbOffset+thumbSize > height {
		thumbOffset = height - thumbSize
	}

	for i := range lines {
		if i >= thumbOffset && i < thumbOffset+thumbSize {
			lines[i] = scrollbarThumbStyle.Render("┃")
		} else {
			lines[i] = scrollbarTrackStyle.Render("│")
		}
	}

	return strings.Join(lines, "\n")
}
