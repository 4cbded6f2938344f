package main

import (
	"log"
	"os"

	"github.com/grovetools/jwtview/config"
	"github.com/spf13/pflag"
)

func main() {
	out := pflag.StringP("output", "o", "jwtview.embedded.schema.json", "output path")
	pflag.Parse()

	schemaBytes, err := config.GenerateSchema()
	if err != nil {
		log.Fatalf("Error generating schema: %v", err)
	}

	if err := os.WriteFile(*out, append(schemaBytes, '\n'), 0644); err != nil {
		log.Fatalf("Error writing schema file: %v", err)
	}

	log.Printf("Successfully generated schema at %s", *out)
}
