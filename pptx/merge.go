package pptx

// mergeStyles merges master-level and layout-level extraction results.
// The master background wins when both are present. Placeholders merge per
// role: layout fields overlay master fields, but only fields the layout
// actually specifies; an absent layout field never erases a master value.
// Roles that appear only in layouts are added outright.
func mergeStyles(master, layouts ExtractedStyles) ExtractedStyles {
	background := master.Background
	if background == "" {
		background = layouts.Background
	}

	var order []string
	byType := make(map[string]PlaceholderStyle)

	add := func(ph PlaceholderStyle) {
		if existing, ok := byType[ph.Type]; ok {
			byType[ph.Type] = overlay(existing, ph)
			return
		}
		order = append(order, ph.Type)
		byType[ph.Type] = ph
	}

	for _, ph := range master.Placeholders {
		// Duplicate roles within one document: last occurrence wins, as a
		// full replacement rather than an overlay.
		if _, ok := byType[ph.Type]; !ok {
			order = append(order, ph.Type)
		}
		byType[ph.Type] = ph
	}
	for _, ph := range layouts.Placeholders {
		add(ph)
	}

	merged := ExtractedStyles{Background: background}
	for _, t := range order {
		merged.Placeholders = append(merged.Placeholders, byType[t])
	}
	return merged
}

// overlay copies the defined fields of higher onto base. The zero value of
// each field marks absence, so this is a defined-fields-only merge.
func overlay(base, higher PlaceholderStyle) PlaceholderStyle {
	out := base
	if higher.FontFamily != "" {
		out.FontFamily = higher.FontFamily
	}
	if higher.FontSize > 0 {
		out.FontSize = higher.FontSize
	}
	if higher.FontColor != "" {
		out.FontColor = higher.FontColor
	}
	if higher.Bold {
		out.Bold = true
	}
	return out
}
