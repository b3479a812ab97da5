package request

import (
	"encoding/json"
	"net/http"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/unkn0wn-root/restpad/internal/errdef"
)

// draftFile is the on-disk YAML shape accepted by the -draft flag. Headers
// are a plain mapping in the file and become the form's JSON text.
type draftFile struct {
	Method  string            `yaml:"method"`
	URL     string            `yaml:"url"`
	Headers map[string]string `yaml:"headers"`
	Body    string            `yaml:"body"`
	Relay   bool              `yaml:"relay"`
}

// LoadDraftFile reads a YAML draft to pre-fill the form. Nothing is written
// back; the file is read once at startup.
func LoadDraftFile(path string) (Draft, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Draft{}, errdef.Wrap(errdef.CodeConfig, err, "read draft file %s", path)
	}

	var parsed draftFile
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return Draft{}, errdef.Wrap(errdef.CodeParse, err, "parse draft file %s", path)
	}

	d := Draft{
		Method:   strings.ToUpper(strings.TrimSpace(parsed.Method)),
		URL:      strings.TrimSpace(parsed.URL),
		BodyText: parsed.Body,
		UseRelay: parsed.Relay,
	}
	if d.Method == "" {
		d.Method = http.MethodGet
	}
	if len(parsed.Headers) > 0 {
		text, err := json.MarshalIndent(parsed.Headers, "", "  ")
		if err != nil {
			return Draft{}, errdef.Wrap(errdef.CodeParse, err, "encode draft headers")
		}
		d.HeadersText = string(text)
	}
	return d, nil
}
