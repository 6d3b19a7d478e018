package service

import (
	"encoding/json"
	"fmt"
	"os"
	"path"
	"sort"
	"strings"

	"github.com/fulldump/apitest"
)

// Save renders an acceptance exchange as a markdown example. Files are only
// written when API_EXAMPLES_PATH is set.
func Save(response *apitest.Response, title, description string) {

	examplesPath := os.Getenv("API_EXAMPLES_PATH")
	if examplesPath == "" {
		return
	}

	request := response.Request
	query := ""
	if request.URL.RawQuery != "" {
		query = "?" + request.URL.RawQuery
	}
	requestBody := formatJSON(response.BodyRequestString())

	md := &strings.Builder{}

	fmt.Fprintf(md, "# %s\n", title)
	if d := cropTabs(description); d != "" {
		fmt.Fprintf(md, "%s\n", d)
	}

	md.WriteString("\nCurl example:\n\n```sh\ncurl")
	if request.Method != "GET" {
		fmt.Fprintf(md, " -X %s", request.Method)
	}
	fmt.Fprintf(md, " \"http://localhost:3000%s%s\"", request.URL.Path, query)
	for _, k := range sortedKeys(request.Header) {
		for _, v := range request.Header[k] {
			fmt.Fprintf(md, " \\\n-H \"%s: %s\"", k, v)
		}
	}
	if requestBody != "" {
		fmt.Fprintf(md, " \\\n-d '%s'", requestBody)
	}
	md.WriteString("\n```\n\n")

	md.WriteString("HTTP request/response example:\n\n```http\n")
	fmt.Fprintf(md, "%s %s%s %s\n", request.Method, request.URL.Path, query, request.Proto)
	md.WriteString("Host: localhost:3000\n")
	for _, k := range sortedKeys(request.Header) {
		for _, v := range request.Header[k] {
			fmt.Fprintf(md, "%s: %s\n", k, v)
		}
	}
	fmt.Fprintf(md, "\n%s\n\n", requestBody)

	fmt.Fprintf(md, "%s %s\n", response.Proto, response.Status)
	for _, k := range sortedKeys(response.Header) {
		if k == "Date" {
			md.WriteString("Date: Mon, 15 Aug 2022 02:08:13 GMT\n")
			continue
		}
		for _, v := range response.Header[k] {
			fmt.Fprintf(md, "%s: %s\n", k, v)
		}
	}
	fmt.Fprintf(md, "\n%s\n```\n", formatJSON(response.BodyString()))

	filename := strings.ReplaceAll(strings.ToLower(title), " ", "_") + ".md"
	p := path.Join(examplesPath, path.Clean(filename))
	err := os.WriteFile(p, []byte(md.String()), 0666)
	if err != nil {
		fmt.Println("Saving err:", err)
	}
}

func sortedKeys(m map[string][]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func formatJSON(body string) string {

	var i interface{}
	err := json.Unmarshal([]byte(body), &i)
	if err != nil {
		return body
	}

	b, err := json.MarshalIndent(i, "", "  ")
	if err != nil {
		return body
	}

	return string(b)
}

// cropTabs removes the common tab indentation of a raw string literal.
func cropTabs(d string) string {

	lines := strings.Split(strings.Trim(d, "\n"), "\n")

	indent := -1
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		n := len(line) - len(strings.TrimLeft(line, "\t"))
		if indent < 0 || n < indent {
			indent = n
		}
	}
	if indent <= 0 {
		return strings.TrimSpace(d)
	}

	prefix := strings.Repeat("\t", indent)
	for i, line := range lines {
		lines[i] = strings.TrimPrefix(line, prefix)
	}

	return strings.Join(lines, "\n")
}
