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

const baseURL = "http://localhost:3000/api"

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
func sendRequest(method, url, token string, body interface{}) (*http.Response, []byte, error) {
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
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	client := &http.Client{}
	resp, err := client.Do(req)
	if err != nil {
		return nil, nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	return resp, respBody, err
}

func decode(body []byte) map[string]interface{} {
	var out map[string]interface{}
	json.Unmarshal(body, &out)
	return out
}

const sampleContent = `{"root":{"children":[{"children":[{"detail":0,"format":1,"mode":"normal","style":"","text":"Smoke test","type":"text","version":1}],"direction":"ltr","format":"","indent":0,"type":"paragraph","version":1}],"direction":"ltr","format":"","indent":0,"type":"root","version":1}}`

const updatedContent = `{"root":{"children":[{"children":[{"detail":0,"format":0,"mode":"normal","style":"","text":"Smoke test, second pass","type":"text","version":1}],"direction":"ltr","format":"","indent":0,"type":"paragraph","version":1}],"direction":"ltr","format":"","indent":0,"type":"root","version":1}}`

func main() {
	token := os.Getenv("API_TOKEN")
	if token == "" {
		color.Red("API_TOKEN is not set; generate a JWT signed with JWT_SECRET first")
		os.Exit(1)
	}

	color.Cyan("🚀 Starting Document API Smoke Test\n")

	// 1. Validate content before creating anything
	color.Yellow("\n1. Validate Content")
	resp, body, err := sendRequest("POST", "/document/v1/validate", token, map[string]string{"content": sampleContent})
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	color.Green("Status: %s", resp.Status)
	prettyPrint(decode(body))

	// 2. Create a document
	color.Yellow("\n2. Create Document")
	resp, body, err = sendRequest("POST", "/document/v1", token, map[string]string{
		"title":     "Smoke Test Document",
		"namespace": "smoke",
		"content":   sampleContent,
	})
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	color.Green("Status: %s", resp.Status)
	created := decode(body)
	prettyPrint(created)

	data, _ := created["data"].(map[string]interface{})
	docId, _ := data["id"].(string)
	if docId == "" {
		color.Red("No document id returned, aborting")
		os.Exit(1)
	}

	// 3. Fetch it back
	color.Yellow("\n3. Show Document")
	resp, body, _ = sendRequest("GET", "/document/v1/"+docId, token, nil)
	color.Green("Status: %s", resp.Status)
	prettyPrint(decode(body))

	// 4. Update it, which bumps the revision seq
	color.Yellow("\n4. Update Document")
	resp, body, _ = sendRequest("PUT", "/document/v1/"+docId, token, map[string]string{
		"title":   "Smoke Test Document (edited)",
		"content": updatedContent,
	})
	color.Green("Status: %s", resp.Status)
	prettyPrint(decode(body))

	// 5. Export in every format, twice so the second hit comes cached
	for _, format := range []string{"markdown", "html", "text"} {
		color.Yellow("\n5. Export (%s)", format)
		for i := 0; i < 2; i++ {
			resp, body, _ = sendRequest("GET", "/document/v1/"+docId+"/export?format="+format, token, nil)
			color.Green("Status: %s", resp.Status)
			prettyPrint(decode(body))
		}
	}

	// 6. Revision history
	color.Yellow("\n6. Revisions")
	resp, body, _ = sendRequest("GET", "/document/v1/"+docId+"/revisions", token, nil)
	color.Green("Status: %s", resp.Status)
	prettyPrint(decode(body))

	// 7. List the namespace
	color.Yellow("\n7. List Documents")
	resp, body, _ = sendRequest("GET", "/document/v1?namespace=smoke", token, nil)
	color.Green("Status: %s", resp.Status)
	prettyPrint(decode(body))

	// 8. Clean up
	color.Yellow("\n8. Delete Document")
	resp, body, _ = sendRequest("DELETE", "/document/v1/"+docId, token, nil)
	color.Green("Status: %s", resp.Status)
	prettyPrint(decode(body))

	color.Cyan("\n✅ Smoke test finished")
}
