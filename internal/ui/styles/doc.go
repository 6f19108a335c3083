// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package styles provides the visual styling system for the gptchat TUI.

All colors use Lip Gloss AdaptiveColor so they follow the terminal's
light/dark background.

# Color System (colors.go)

  - Purple - Assistant messages and the dialog border
  - Cyan - Brand color, user messages and key hints
  - Rose - Errors
  - Amber - Warnings

Surface and text colors are layered:

	Surface / SurfaceDim / Overlay
	TextPrimary / TextSecondary / TextMuted

# Theme System (theme.go)

	theme := styles.NewTheme(styles.ThemeAuto)
	if theme.IsDark {
		// dark terminal detected (or forced with ThemeDark)
	}

The theme also reports the glamour style name matching its background so
markdown rendering agrees with the rest of the UI.
*/
package styles
