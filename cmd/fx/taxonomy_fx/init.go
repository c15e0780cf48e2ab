package taxonomy_fx

import (
	"log"
	"os"

	"go.uber.org/fx"
	"tripweaver/internal/taxonomy"
)

var Module = fx.Provide(provideTaxonomyTable)

// provideTaxonomyTable loads the category tree once at startup. Without a
// table the classifier still works off category text.
func provideTaxonomyTable() *taxonomy.Table {
	path := os.Getenv("TAXONOMY_PATH")
	if path == "" {
		log.Println("TAXONOMY_PATH not set, classifying by category text only")
		return taxonomy.NewTable(nil)
	}

	table, err := taxonomy.LoadFromFile(path)
	if err != nil {
		log.Printf("Error loading taxonomy from %s: %v", path, err)
		return taxonomy.NewTable(nil)
	}
	return table
}
