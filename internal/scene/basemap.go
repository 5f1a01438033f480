package scene

import (
	"fmt"
	"strings"
)

// Basemap is the kind of background imagery of a scene.
type Basemap int

const (
	Imagery Basemap = iota
	ImageryWithLabels
	Streets
	Topographic
	Oceans
)

var basemapNames = map[Basemap]string{
	Imagery:           "imagery",
	ImageryWithLabels: "imagery-with-labels",
	Streets:           "streets",
	Topographic:       "topographic",
	Oceans:            "oceans",
}

func (b Basemap) String() string {
	if name, ok := basemapNames[b]; ok {
		return name
	}
	return fmt.Sprintf("Basemap(%d)", int(b))
}

// ParseBasemap returns the basemap with the given name. Matching is case
// insensitive.
func ParseBasemap(name string) (Basemap, error) {
	for b, n := range basemapNames {
		if strings.EqualFold(n, strings.TrimSpace(name)) {
			return b, nil
		}
	}
	return Imagery, fmt.Errorf("unknown basemap %q", name)
}

// MarshalText implements encoding.TextMarshaler.
func (b Basemap) MarshalText() ([]byte, error) {
	return []byte(b.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (b *Basemap) UnmarshalText(text []byte) error {
	parsed, err := ParseBasemap(string(text))
	if err != nil {
		return err
	}
	*b = parsed
	return nil
}
