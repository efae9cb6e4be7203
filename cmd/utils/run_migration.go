package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"time"
)

// Standalone helper to trigger a curated-list migration against a running
// service and print the formatted report.
func main() {
	serviceURL := flag.String("url", "http://localhost:8080", "base URL of the placemarks service")
	batchSize := flag.Int("batch-size", 5, "places per batch")
	delayMs := flag.Int("delay-ms", 1000, "delay between batches in milliseconds")
	dryRun := flag.Bool("dry-run", false, "report the worklist without enhancing anything")
	flag.Parse()

	body, err := json.Marshal(map[string]interface{}{
		"batchSize":             *batchSize,
		"delayBetweenBatchesMs": *delayMs,
		"dryRun":                *dryRun,
	})
	if err != nil {
		log.Fatalf("failed to build request body: %v", err)
	}

	endpoint := fmt.Sprintf("%s/api/v1/migration/run?format=text", *serviceURL)
	client := &http.Client{Timeout: 30 * time.Minute}

	resp, err := client.Post(endpoint, "application/json", bytes.NewReader(body))
	if err != nil {
		log.Fatalf("migration request failed: %v", err)
	}
	defer resp.Body.Close()

	report, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Fatalf("failed to read response: %v", err)
	}

	if resp.StatusCode != http.StatusOK {
		log.Fatalf("migration failed with status %d: %s", resp.StatusCode, report)
	}

	fmt.Fprint(os.Stdout, string(report))
}
