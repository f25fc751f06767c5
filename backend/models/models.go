package models

// All lists every table of the catalog, parents first.
func All() []interface{} {
	return []interface{}{
		&Course{},
		&Category{},
		&Collab{},
		&Content{},
		&Review{},
	}
}
