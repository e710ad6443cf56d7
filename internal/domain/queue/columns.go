package queue

type ColumnView struct {
	ID        string
	Label     string
	Type      ColumnType
	FieldType string
	Width     int
	Sortable  bool
}

func isSortable(id string, sortableBy []string) bool {
	for _, s := range sortableBy {
		if s == id {
			return true
		}
	}
	return false
}

// BuildColumns returns the visible columns of a tab: the ID column first,
// then the selected data columns in the stored order. Ids in order that the
// tab does not know are skipped; known columns missing from order keep their
// default position after the ordered ones.
func BuildColumns(cfg TabConfig, order, selected []string, widths map[string]int, sortableBy []string) []ColumnView {
	byID := make(map[string]Column, len(cfg.Columns))
	for _, c := range cfg.Columns {
		byID[c.ID] = c
	}

	ordered := make([]Column, 0, len(cfg.Columns))
	seen := make(map[string]struct{}, len(cfg.Columns))
	for _, id := range order {
		c, ok := byID[id]
		if !ok {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		ordered = append(ordered, c)
	}
	for _, c := range cfg.Columns {
		if _, ok := seen[c.ID]; !ok {
			ordered = append(ordered, c)
		}
	}

	visible := make(map[string]struct{}, len(selected))
	for _, id := range selected {
		visible[id] = struct{}{}
	}

	res := make([]ColumnView, 0, len(ordered)+1)
	res = append(res, ColumnView{
		ID:       ColumnIDID,
		Label:    "ID",
		Type:     ColumnTypeString,
		Width:    widthOf(ColumnIDID, 0, widths),
		Sortable: isSortable(ColumnIDID, sortableBy),
	})

	for _, c := range ordered {
		if _, ok := visible[c.ID]; !ok {
			continue
		}
		res = append(res, ColumnView{
			ID:        c.ID,
			Label:     c.Label,
			Type:      c.Type,
			FieldType: c.FieldType,
			Width:     widthOf(c.ID, c.Size, widths),
			Sortable:  isSortable(c.ID, sortableBy),
		})
	}

	return res
}

func widthOf(id string, def int, widths map[string]int) int {
	if w, ok := widths[id]; ok && w > 0 {
		return w
	}
	return def
}
