package config

// This file loads the layered .properties source: the bundled defaults,
// overlaid by an optional file named in the environment.

import (
	_ "embed"
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/magiconair/properties"
)

// EnvPropertiesFile names the environment variable holding a path, file: URI
// or http(s) URL of a properties file that overrides the bundled defaults.
const EnvPropertiesFile = "PDFACONVERT_PROPS"

// Property keys.
const (
	KeyUnoconvHome       = "unoconv.home"
	KeyCalibreHome       = "calibre.home"
	KeyPdfaPilotHome     = "pdfapilot.home"
	KeyPdfaPilotRemote   = "pdfapilot.is.remote"
	KeyPdfaPilotEndpoint = "pdfapilot.remote.endpoint"
	KeyPdfaPilotLevel    = "pdfapilot.level"
	KeyOutputDir         = "output.dir"
	KeyOutputWait        = "output.wait"
)

const bundledSource = "bundled defaults"

//go:embed default.properties
var defaultProperties string

//go:embed version.properties
var versionProperties string

// Load reads a .env file from the working directory (if any), resolves the
// properties source and applies it to cfg. When the environment names a
// source that cannot be used, the bundled defaults are applied and the
// reason is returned as warning; err is reserved for a broken build.
func Load(cfg *Config) (warning error, err error) {
	_ = godotenv.Load() // .env is optional

	p, source, warning, err := LoadProperties(os.Getenv(EnvPropertiesFile))
	if err != nil {
		return nil, err
	}
	cfg.ApplyProperties(p)
	cfg.PropertiesSource = source
	return warning, nil
}

// LoadProperties returns the bundled defaults merged with the properties
// found at ref. An empty ref yields the defaults alone.
func LoadProperties(ref string) (p *properties.Properties, source string, warning, err error) {
	p, err = properties.LoadString(defaultProperties)
	if err != nil {
		return nil, "", nil, fmt.Errorf("bundled properties: %w", err)
	}

	ref = strings.TrimSpace(ref)
	if ref == "" {
		return p, bundledSource, nil, nil
	}

	overlay, err := loadRef(ref)
	if err != nil {
		warning = fmt.Errorf("cannot load %s=%q, falling back to %s: %w", EnvPropertiesFile, ref, bundledSource, err)
		return p, bundledSource, warning, nil
	}
	p.Merge(overlay)
	return p, ref, nil, nil
}

// loadRef loads a plain path, a file: URI or an http(s) URL.
func loadRef(ref string) (*properties.Properties, error) {
	u, err := url.Parse(ref)
	// Single-letter schemes are Windows drive letters, not URIs.
	if err != nil || len(u.Scheme) < 2 {
		return loadFile(ref)
	}

	switch strings.ToLower(u.Scheme) {
	case "file":
		path := u.Path
		if path == "" {
			path = u.Opaque
		}
		return loadFile(path)
	case "http", "https":
		return properties.LoadURL(ref)
	default:
		return nil, fmt.Errorf("unsupported scheme %q", u.Scheme)
	}
}

func loadFile(path string) (*properties.Properties, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if !fi.Mode().IsRegular() {
		return nil, fmt.Errorf("%s is not a regular file", path)
	}
	return properties.LoadFile(path, properties.UTF8)
}

// ApplyProperties overlays property values onto c. Keys that are absent keep
// the current value.
func (c *Config) ApplyProperties(p *properties.Properties) {
	str := func(key, def string) string {
		return strings.TrimSpace(p.GetString(key, def))
	}
	c.UnoconvHome = NormalizeDirArg(str(KeyUnoconvHome, c.UnoconvHome))
	c.CalibreHome = NormalizeDirArg(str(KeyCalibreHome, c.CalibreHome))
	c.PdfaPilotHome = NormalizeDirArg(str(KeyPdfaPilotHome, c.PdfaPilotHome))
	c.PdfaPilotRemote = p.GetBool(KeyPdfaPilotRemote, c.PdfaPilotRemote)
	c.PdfaPilotEndpoint = str(KeyPdfaPilotEndpoint, c.PdfaPilotEndpoint)
	c.PdfaPilotLevel = str(KeyPdfaPilotLevel, c.PdfaPilotLevel)
	c.OutputDir = NormalizeDirArg(str(KeyOutputDir, c.OutputDir))
	c.OutputWait = p.GetParsedDuration(KeyOutputWait, c.OutputWait)
}

// Version returns injected when set, otherwise the version recorded in the
// bundled version.properties. An empty result means the version is unknown.
func Version(injected string) string {
	if injected != "" {
		return injected
	}
	p, err := properties.LoadString(versionProperties)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(p.GetString("version", ""))
}
