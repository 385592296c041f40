// Command schema-generator writes the composed plantview.yml JSON Schema,
// for editors and for publishing alongside releases.
package main

import (
	"flag"
	"log"
	"os"
	"path/filepath"

	"github.com/grovetools/plantview/schema"
)

func main() {
	out := flag.String("o", "plantview.schema.json", "output path")
	flag.Parse()

	data, err := schema.Generate()
	if err != nil {
		log.Fatalf("Error generating schema: %v", err)
	}

	if dir := filepath.Dir(*out); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			log.Fatalf("Error creating schema directory: %v", err)
		}
	}
	if err := os.WriteFile(*out, append(data, '\n'), 0o644); err != nil {
		log.Fatalf("Error writing schema file: %v", err)
	}

	log.Printf("Generated schema at %s", *out)
}
