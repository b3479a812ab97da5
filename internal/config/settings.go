package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/MakeNowJust/heredoc"
	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/unkn0wn-root/restpad/internal/duration"
	"github.com/unkn0wn-root/restpad/internal/errdef"
	"github.com/unkn0wn-root/restpad/internal/httpclient"
	"github.com/unkn0wn-root/restpad/internal/relay"
)

// Settings is the persisted configuration. Zero values mean "not set" so
// flags can layer on top.
type Settings struct {
	RelayURL        string `toml:"relay_url" yaml:"relay_url"`
	Timeout         string `toml:"timeout" yaml:"timeout"`
	FollowRedirects *bool  `toml:"follow_redirects" yaml:"follow_redirects"`
	Insecure        bool   `toml:"insecure" yaml:"insecure"`
	Proxy           string `toml:"proxy" yaml:"proxy"`
	DefaultMethod   string `toml:"default_method" yaml:"default_method"`
}

type SettingsFormat int

const (
	SettingsFormatTOML SettingsFormat = iota
	SettingsFormatYAML
)

// SettingsHandle names the settings file and how to decode it.
type SettingsHandle struct {
	Path   string
	Format SettingsFormat
}

// DefaultSettingsHandle locates the settings file inside the config dir.
// TOML wins when both exist; the TOML path is also the target when neither
// file is present yet.
func DefaultSettingsHandle() SettingsHandle {
	dir := Dir()
	tomlPath := filepath.Join(dir, "settings.toml")
	if _, err := os.Stat(tomlPath); err == nil {
		return SettingsHandle{Path: tomlPath, Format: SettingsFormatTOML}
	}
	for _, name := range []string{"settings.yaml", "settings.yml"} {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return SettingsHandle{Path: path, Format: SettingsFormatYAML}
		}
	}
	return SettingsHandle{Path: tomlPath, Format: SettingsFormatTOML}
}

// LoadSettings reads the settings file. A missing file is not an error; it
// yields the zero settings so defaults apply.
func LoadSettings(handle SettingsHandle) (Settings, error) {
	data, err := os.ReadFile(handle.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return Settings{}, nil
		}
		return Settings{}, errdef.Wrap(errdef.CodeConfig, err, "read settings %s", handle.Path)
	}

	var settings Settings
	switch handle.Format {
	case SettingsFormatYAML:
		err = yaml.Unmarshal(data, &settings)
	default:
		err = toml.Unmarshal(data, &settings)
	}
	if err != nil {
		return Settings{}, errdef.Wrap(errdef.CodeParse, err, "parse settings %s", handle.Path)
	}
	return settings, nil
}

// SaveSettings writes the settings file, creating the config dir on first
// save.
func SaveSettings(settings Settings, handle SettingsHandle) error {
	var data []byte
	var err error
	switch handle.Format {
	case SettingsFormatYAML:
		data, err = yaml.Marshal(settings)
	default:
		data, err = toml.Marshal(settings)
	}
	if err != nil {
		return errdef.Wrap(errdef.CodeConfig, err, "encode settings")
	}
	if err := os.MkdirAll(filepath.Dir(handle.Path), 0o755); err != nil {
		return errdef.Wrap(errdef.CodeConfig, err, "create config dir")
	}
	if err := os.WriteFile(handle.Path, data, 0o644); err != nil {
		return errdef.Wrap(errdef.CodeConfig, err, "write settings %s", handle.Path)
	}
	return nil
}

// WriteStarterSettings creates a commented settings file at the handle's
// path. Refuses to clobber an existing file.
func WriteStarterSettings(handle SettingsHandle) error {
	if _, err := os.Stat(handle.Path); err == nil {
		return errdef.New(errdef.CodeConfig, "settings file already exists at %s", handle.Path)
	}
	if err := os.MkdirAll(filepath.Dir(handle.Path), 0o755); err != nil {
		return errdef.Wrap(errdef.CodeConfig, err, "create config dir")
	}
	starter := heredoc.Doc(`
		# restpad settings

		# Base URL prepended to the target when the relay toggle is on.
		# relay_url = "https://cors-anywhere.herokuapp.com/"

		# Give up on a request after this long. Unset means wait forever.
		# Accepts go durations plus d (days) and w (weeks), e.g. "45s", "2m".
		# timeout = "30s"

		# follow_redirects = true
		# insecure = false
		# proxy = "http://127.0.0.1:8080"
		# default_method = "GET"
	`)
	if err := os.WriteFile(handle.Path, []byte(starter), 0o644); err != nil {
		return errdef.Wrap(errdef.CodeConfig, err, "write settings %s", handle.Path)
	}
	return nil
}

// RelayBase resolves the relay prefix, validating a configured override and
// falling back to the built-in default.
func (s Settings) RelayBase() (string, error) {
	if strings.TrimSpace(s.RelayURL) == "" {
		return relay.DefaultBase, nil
	}
	return relay.Normalize(s.RelayURL)
}

// HTTPOptions translates the settings into client options. Redirects are
// followed unless the file says otherwise.
func (s Settings) HTTPOptions() (httpclient.Options, error) {
	opts := httpclient.Options{
		FollowRedirects:    true,
		InsecureSkipVerify: s.Insecure,
		ProxyURL:           strings.TrimSpace(s.Proxy),
	}
	if s.FollowRedirects != nil {
		opts.FollowRedirects = *s.FollowRedirects
	}
	if value := strings.TrimSpace(s.Timeout); value != "" {
		parsed, ok := duration.Parse(value)
		if !ok {
			return httpclient.Options{}, errdef.New(errdef.CodeConfig, "invalid timeout %q", value)
		}
		opts.Timeout = parsed
	}
	return opts, nil
}
