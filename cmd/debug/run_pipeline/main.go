package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"

	"gastroassist-be/internal/bootstrap"
	"gastroassist-be/internal/config"
	"gastroassist-be/internal/dto"
)

// Runs the full pipeline from the command line without the HTTP server.
// Usage: go run ./cmd/debug/run_pipeline "What is the treatment for GERD?" [--direct]
func main() {
	args := os.Args[1:]
	direct := false
	var queryParts []string
	for _, a := range args {
		if a == "--direct" {
			direct = true
			continue
		}
		queryParts = append(queryParts, a)
	}

	queryText := strings.Join(queryParts, " ")
	if queryText == "" {
		queryText = "What is the treatment for GERD?"
	}

	cfg := config.Load()
	container := bootstrap.NewContainer(cfg)
	defer container.Logger.Sync()

	request := &dto.QueryRequest{
		Text:   queryText,
		UserID: "debug-cli",
	}

	fmt.Printf("Query: %s\n\n", queryText)

	if direct {
		res := container.QueryService.Direct(context.Background(), request)
		dump(res)
		return
	}

	res := container.QueryService.Process(context.Background(), request)
	fmt.Printf("Answer:\n%s\n\n", res.Answer)
	fmt.Printf("Confidence: %.3f\n", res.ConfidenceScore)
	fmt.Printf("Sources: %d\n", len(res.Sources))
	for i, s := range res.Sources {
		fmt.Printf("  %d. [%.2f] (%s) %s\n     %s\n", i+1, s.Confidence, s.Type, s.Title, s.URL)
	}
}

func dump(v interface{}) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		log.Fatalf("marshal: %v", err)
	}
	fmt.Println(string(b))
}
