package browser

import (
	"fmt"
	"net/url"
	"os/exec"
	"runtime"
	"strings"

	"fabmap/internal/domain"
	"fabmap/internal/ports"
)

// DefaultMapURL is the web map used when none is configured
const DefaultMapURL = "https://www.openstreetmap.org/"

// Opener implements ports.MapLinkOpener
type Opener struct {
	base *url.URL
	run  func(name string, args ...string) error
}

var _ ports.MapLinkOpener = (*Opener)(nil)

// NewOpener creates an opener for the web map at baseURL
func NewOpener(baseURL string) (*Opener, error) {
	if baseURL == "" {
		baseURL = DefaultMapURL
	}
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid map URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid map URL %q: scheme must be http or https", baseURL)
	}
	return &Opener{base: u, run: runCommand}, nil
}

// Open shows c in the system browser
func (o *Opener) Open(c domain.Coordinate, zoom int) error {
	link, err := o.BuildURL(c, zoom)
	if err != nil {
		return err
	}
	return o.openURL(link)
}

// BuildURL returns an OpenStreetMap style link with a marker at c
func (o *Opener) BuildURL(c domain.Coordinate, zoom int) (string, error) {
	if err := c.Validate(); err != nil {
		return "", err
	}
	zoom = min(max(zoom, 1), 19)

	u := *o.base
	if !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	lat := fmt.Sprintf("%.5f", c.Lat)
	lng := fmt.Sprintf("%.5f", c.Lng)
	u.RawQuery = url.Values{"mlat": {lat}, "mlon": {lng}}.Encode()
	u.Fragment = fmt.Sprintf("map=%d/%s/%s", zoom, lat, lng)
	return u.String(), nil
}

func (o *Opener) openURL(link string) error {
	switch runtime.GOOS {
	case "darwin":
		return o.run("open", link)
	case "linux":
		return o.run("xdg-open", link)
	case "windows":
		return o.run("cmd", "/c", "start", "", link)
	default:
		return fmt.Errorf("unsupported operating system: %s", runtime.GOOS)
	}
}

func runCommand(name string, args ...string) error {
	return exec.Command(name, args...).Run()
}
