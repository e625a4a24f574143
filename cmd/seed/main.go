// Command seed loads the ingredient catalog and the tag list from CSV
// files into the database. Rows that already exist are skipped, so the
// command can be re-run after the files change.
package main

import (
	"context"
	"encoding/csv"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"recipehub/cmd/config"
	migration "recipehub/cmd/database/migrate"
	"recipehub/domain"
	"recipehub/internal/utils"
	"recipehub/pkg/ingredient"
	"recipehub/pkg/tag"
	"strings"
)

func readCSV(path string) ([][]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	return reader.ReadAll()
}

func main() {
	ingredientsPath := flag.String("ingredients", "data/ingredients.csv", "CSV file with name,measurement_unit rows")
	tagsPath := flag.String("tags", "data/tags.csv", "CSV file with name,color[,slug] rows")
	flag.Parse()

	utils.LoadConfig()

	db, err := config.ConnectDB()
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	if err := migration.Migrate(db); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	ctx := context.Background()

	ingredientService := ingredient.NewIngredientService(ingredient.NewIngredientRepository(db))
	records, err := readCSV(*ingredientsPath)
	if err != nil {
		log.Fatalf("failed to read %s: %v", *ingredientsPath, err)
	}
	created, err := ingredientService.ImportIngredients(ctx, records)
	if err != nil {
		log.Fatalf("failed to import ingredients: %v", err)
	}
	fmt.Printf("ingredients: %d new, %d rows in file\n", created, len(records))

	// The tag file is optional; a missing file just means no tags to
	// seed.
	records, err = readCSV(*tagsPath)
	if errors.Is(err, os.ErrNotExist) {
		return
	}
	if err != nil {
		log.Fatalf("failed to read %s: %v", *tagsPath, err)
	}

	tagService := tag.NewTagService(tag.NewTagRepository(db))
	createdTags := 0
	for _, record := range records {
		if len(record) < 2 {
			continue
		}

		name := strings.TrimSpace(record[0])
		color := strings.TrimSpace(record[1])
		tagSlug := ""
		if len(record) > 2 {
			tagSlug = strings.TrimSpace(record[2])
		}

		if _, err := tagService.CreateTag(ctx, name, color, tagSlug); err != nil {
			if errors.Is(err, domain.ErrTagAlreadyExists) {
				continue
			}
			log.Fatalf("failed to seed tag %q: %v", name, err)
		}
		createdTags++
	}
	fmt.Printf("tags: %d new, %d rows in file\n", createdTags, len(records))
}
