// Package curlimport turns a pasted curl command into a draft request.
// Only the subset of curl that maps onto the form is understood: method,
// URL, headers and textual data flags. Anything else is skipped.
package curlimport

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/unkn0wn-root/restpad/internal/errdef"
	"github.com/unkn0wn-root/restpad/internal/request"
)

// Parse interprets a curl command line and fills a draft from it. A body
// given as @file is read from disk. Data flags on a GET flip the method to
// POST the way curl itself does.
func Parse(command string) (request.Draft, error) {
	tokens, err := tokenize(command)
	if err != nil {
		return request.Draft{}, err
	}
	return parseTokens(tokens)
}

func parseTokens(tokens []string) (request.Draft, error) {
	if len(tokens) == 0 {
		return request.Draft{}, fmt.Errorf("empty command")
	}
	if stripPromptPrefix(tokens[0]) == "" && len(tokens) > 1 {
		tokens = tokens[1:]
	}
	if stripPromptPrefix(tokens[0]) != "curl" {
		return request.Draft{}, fmt.Errorf("not a curl command")
	}

	method := "GET"
	headers := make(http.Header)
	var url string
	var dataParts []string
	var basicAuth string
	compressed := false

	for i := 1; i < len(tokens); i++ {
		token := tokens[i]
		switch token {
		case "-X", "--request":
			i++
			if i >= len(tokens) {
				return request.Draft{}, fmt.Errorf("missing argument for %s", token)
			}
			method = strings.ToUpper(tokens[i])
		case "-H", "--header":
			i++
			if i >= len(tokens) {
				return request.Draft{}, fmt.Errorf("missing header value for %s", token)
			}
			name, value := splitHeader(tokens[i])
			if name != "" {
				headers.Add(name, value)
			}
		case "-d", "--data", "--data-raw", "--data-binary", "--data-urlencode", "--data-ascii", "--data-json":
			i++
			if i >= len(tokens) {
				return request.Draft{}, fmt.Errorf("missing data value for %s", token)
			}
			dataParts = append(dataParts, tokens[i])
		case "--json":
			i++
			if i >= len(tokens) {
				return request.Draft{}, fmt.Errorf("missing value for --json")
			}
			dataParts = append(dataParts, tokens[i])
			if headers.Get("Content-Type") == "" {
				headers.Set("Content-Type", "application/json")
			}
		case "--url":
			i++
			if i >= len(tokens) {
				return request.Draft{}, fmt.Errorf("missing argument for --url")
			}
			url = tokens[i]
		case "-u", "--user":
			i++
			if i >= len(tokens) {
				return request.Draft{}, fmt.Errorf("missing credential for %s", token)
			}
			basicAuth = tokens[i]
		case "-I", "--head":
			method = "HEAD"
		case "--compressed":
			compressed = true
		default:
			switch {
			case strings.HasPrefix(token, "-X") && len(token) > 2:
				method = strings.ToUpper(token[2:])
			case strings.HasPrefix(token, "--request="):
				method = strings.ToUpper(token[len("--request="):])
			case strings.HasPrefix(token, "-H") && len(token) > 2:
				name, value := splitHeader(token[2:])
				if name != "" {
					headers.Add(name, value)
				}
			case strings.HasPrefix(token, "--header="):
				name, value := splitHeader(token[len("--header="):])
				if name != "" {
					headers.Add(name, value)
				}
			case strings.HasPrefix(token, "--data="):
				dataParts = append(dataParts, token[len("--data="):])
			case strings.HasPrefix(token, "--data-raw="):
				dataParts = append(dataParts, token[len("--data-raw="):])
			case strings.HasPrefix(token, "--json="):
				dataParts = append(dataParts, token[len("--json="):])
				if headers.Get("Content-Type") == "" {
					headers.Set("Content-Type", "application/json")
				}
			case strings.HasPrefix(token, "--url="):
				url = token[len("--url="):]
			case (strings.HasPrefix(token, "http://") || strings.HasPrefix(token, "https://")) && url == "":
				url = token
			default:
				if url == "" && !strings.HasPrefix(token, "-") {
					url = token
				}
			}
		}
	}

	if url == "" {
		return request.Draft{}, fmt.Errorf("curl command missing url")
	}
	if len(dataParts) > 0 && strings.EqualFold(method, "GET") {
		method = "POST"
	}

	if basicAuth != "" && headers.Get("Authorization") == "" {
		headers.Set("Authorization", "Basic "+base64.StdEncoding.EncodeToString([]byte(basicAuth)))
	}
	if compressed && headers.Get("Accept-Encoding") == "" {
		headers.Set("Accept-Encoding", "gzip, deflate, br")
	}

	body, err := buildBody(dataParts)
	if err != nil {
		return request.Draft{}, err
	}

	headersText, err := headersToJSON(headers)
	if err != nil {
		return request.Draft{}, err
	}

	return request.Draft{
		Method:      method,
		URL:         strings.Trim(url, "\"'"),
		HeadersText: headersText,
		BodyText:    body,
	}, nil
}

// buildBody joins data parts with newlines. A single @file part reads the
// file, matching curl.
func buildBody(parts []string) (string, error) {
	if len(parts) == 0 {
		return "", nil
	}
	if len(parts) == 1 && strings.HasPrefix(parts[0], "@") && len(parts[0]) > 1 {
		path := strings.TrimPrefix(parts[0], "@")
		data, err := os.ReadFile(path)
		if err != nil {
			return "", errdef.Wrap(errdef.CodeConfig, err, "read body file %s", path)
		}
		return string(data), nil
	}
	return strings.Join(parts, "\n"), nil
}

// headersToJSON renders the collected headers as the JSON object text the
// headers field edits. Repeated names collapse into one comma-joined value.
func headersToJSON(headers http.Header) (string, error) {
	if len(headers) == 0 {
		return "", nil
	}
	flat := make(map[string]string, len(headers))
	for name, values := range headers {
		flat[name] = strings.Join(values, ", ")
	}
	encoded, err := json.MarshalIndent(flat, "", "  ")
	if err != nil {
		return "", errdef.Wrap(errdef.CodeParse, err, "encode headers")
	}
	return string(encoded), nil
}

func tokenize(input string) ([]string, error) {
	var args []string
	var current strings.Builder
	inSingle := false
	inDouble := false
	escaped := false

	flush := func() {
		if current.Len() == 0 {
			return
		}
		args = append(args, current.String())
		current.Reset()
	}

	for _, r := range input {
		switch {
		case escaped:
			current.WriteRune(r)
			escaped = false
		case r == '\\':
			if inSingle {
				current.WriteRune(r)
			} else {
				escaped = true
			}
		case r == '\'':
			if inDouble {
				current.WriteRune(r)
			} else {
				inSingle = !inSingle
			}
		case r == '"':
			if inSingle {
				current.WriteRune(r)
			} else {
				inDouble = !inDouble
			}
		case isWhitespace(r):
			if inSingle || inDouble {
				current.WriteRune(r)
			} else {
				flush()
			}
		default:
			current.WriteRune(r)
		}
	}
	if escaped {
		return nil, fmt.Errorf("unterminated escape sequence")
	}
	if inSingle || inDouble {
		return nil, fmt.Errorf("unterminated quoted string")
	}
	flush()
	return args, nil
}

func splitHeader(header string) (string, string) {
	parts := strings.SplitN(header, ":", 2)
	name := strings.TrimSpace(parts[0])
	if name == "" {
		return "", ""
	}
	value := ""
	if len(parts) > 1 {
		value = strings.TrimSpace(parts[1])
	}
	return name, value
}

// stripPromptPrefix drops shell prompt characters people paste along with
// the command.
func stripPromptPrefix(token string) string {
	trimmed := strings.TrimSpace(token)
	for _, prefix := range []string{"$", "%", ">", "!"} {
		if strings.HasPrefix(trimmed, prefix) {
			trimmed = strings.TrimSpace(trimmed[len(prefix):])
		}
	}
	return trimmed
}

func isWhitespace(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\r':
		return true
	default:
		return false
	}
}
