package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/saturnines/graphql-client/pkg/config"
	"github.com/saturnines/graphql-client/pkg/transport/graphql"
)

type country struct {
	Code      string `json:"code"`
	Name      string `json:"name"`
	Capital   string `json:"capital"`
	Continent struct {
		Name string `json:"name"`
	} `json:"continent"`
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println(".env file not loaded:", err)
	}
	if os.Getenv("COUNTRIES_ENDPOINT") == "" {
		os.Setenv("COUNTRIES_ENDPOINT", "https://countries.trevorblades.com/")
	}

	// Load the YAML config
	loader := config.NewLoader(
		&config.EnvExpander{},
		&config.ConfigDefaults{},
		&config.RequiredFieldValidator{},
		&config.AuthValidator{},
		&config.TimeoutValidator{},
	)

	cfg, err := loader.Load("demo/countries/countries.yaml")
	if err != nil {
		log.Fatal(err)
	}

	// One country through the typed decoder
	var single struct {
		Country country `json:"country"`
	}
	err = graphql.NewFromConfig(cfg).
		Raw(`query ($code: ID!) { country(code: $code) { code name capital continent { name } } }`).
		SetVariable("code", "BR").
		Decode(context.Background(), &single)
	if err != nil {
		log.Fatal("Failed to fetch country:", err)
	}
	fmt.Printf("%s: %s, capital %s (%s)\n",
		single.Country.Code, single.Country.Name, single.Country.Capital, single.Country.Continent.Name)

	// All countries of a continent, read by path
	result, err := graphql.NewFromConfig(cfg).
		Query(`continent(code:"EU"){ countries { code name } }`).
		Get(context.Background(), graphql.FormatJSON)
	if err != nil {
		log.Fatal("Failed to fetch continent:", err)
	}
	obj, ok := result.(*graphql.Object)
	if !ok {
		log.Fatal("Response had no data")
	}

	countries, _ := obj.Get("continent.countries")
	list, _ := countries.([]interface{})
	if first, ok := obj.Get("continent.countries.0.name"); ok {
		fmt.Printf("Fetched %d European countries, first is %v\n", len(list), first)
	}

	// Save to JSON
	file, err := os.Create("countries.json")
	if err != nil {
		log.Fatal(err)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(obj); err != nil {
		log.Fatal(err)
	}

	fmt.Println("Saved continent → countries.json")
}
