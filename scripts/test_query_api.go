package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/fatih/color"
)

const baseURL = "http://localhost:8000"

// Pretty print JSON helper
func prettyPrint(v interface{}) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Printf("%v\n", v)
		return
	}
	fmt.Println(string(b))
}

// Request helper
func sendRequest(method, url string, body interface{}) (*http.Response, []byte, error) {
	var bodyReader io.Reader
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		bodyReader = bytes.NewBuffer(jsonBody)
	}

	req, err := http.NewRequest(method, baseURL+url, bodyReader)
	if err != nil {
		return nil, nil, err
	}

	req.Header.Set("Content-Type", "application/json")

	client := &http.Client{} // No timeout, summarization can be slow
	resp, err := client.Do(req)
	if err != nil {
		return nil, nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	return resp, respBody, err
}

func main() {
	color.Cyan("🚀 Starting Query Pipeline API Test\n")

	// 1. Health Check
	color.Yellow("\n1. Health Check")
	resp, body, err := sendRequest("GET", "/", nil)
	if err != nil {
		color.Red("Failed: %v (is the server running?)", err)
		os.Exit(1)
	}
	color.Green("Status: %s", resp.Status)
	var healthResp map[string]interface{}
	json.Unmarshal(body, &healthResp)
	prettyPrint(healthResp)

	// 2. Aggregated Query: GERD treatment
	color.Yellow("\n2. Query: 'What is the treatment for GERD?'")
	queryReq := map[string]interface{}{
		"text":    "What is the treatment for GERD?",
		"user_id": "test-user",
	}
	resp, body, err = sendRequest("POST", "/api/query", queryReq)
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	color.Green("Status: %s", resp.Status)
	var queryResp map[string]interface{}
	json.Unmarshal(body, &queryResp)
	// Concise printing to avoid a huge source dump
	fmt.Printf("Answer: %s\n", queryResp["answer"])
	if sources, ok := queryResp["sources"].([]interface{}); ok {
		fmt.Printf("Sources: %d\n", len(sources))
	}
	fmt.Printf("Confidence: %v\n", queryResp["confidence_score"])

	// 3. Validation: missing user_id should be rejected
	color.Yellow("\n3. Validation: missing user_id")
	badReq := map[string]interface{}{
		"text": "What causes IBS?",
	}
	resp, body, err = sendRequest("POST", "/api/query", badReq)
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	if resp.StatusCode == http.StatusUnprocessableEntity {
		color.Green("Status: %s (as expected)", resp.Status)
	} else {
		color.Red("Unexpected status: %s", resp.Status)
	}
	var badResp map[string]interface{}
	json.Unmarshal(body, &badResp)
	prettyPrint(badResp)

	// 4. Direct Query: raw per-need results
	color.Yellow("\n4. Direct Query: 'What medications treat Crohn disease?'")
	directReq := map[string]interface{}{
		"text":    "What medications treat Crohn disease?",
		"user_id": "test-user",
	}
	resp, body, err = sendRequest("POST", "/api/query/direct", directReq)
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	color.Green("Status: %s", resp.Status)
	var directResp map[string]interface{}
	json.Unmarshal(body, &directResp)
	if result, ok := directResp["result"].(map[string]interface{}); ok {
		fmt.Printf("Needs processed: %d\n", len(result))
		for key, raw := range result {
			if need, ok := raw.(map[string]interface{}); ok {
				fmt.Printf("  %s: query=%q type=%v\n", key, need["query"], need["type"])
			}
		}
	} else {
		prettyPrint(directResp)
	}

	// 5. Knowledge Base Lookup
	color.Yellow("\n5. Knowledge Base: treatment entries mentioning GERD")
	resp, body, err = sendRequest("GET", "/api/kb?q=gerd&category=treatment&conditions=gerd", nil)
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	color.Green("Status: %s", resp.Status)
	var kbResp map[string]interface{}
	json.Unmarshal(body, &kbResp)
	prettyPrint(kbResp)

	color.Cyan("\n✅ Test Sequence Complete")
}
