package model

import (
	"slices"
	"strings"

	"github.com/cockroachdb/errors"
)

// Colour is a hex colour code such as "#FF5733", stored upper-cased.
type Colour string

const (
	White    Colour = "#FFFFFF"
	Red      Colour = "#FF5733"
	Orange   Colour = "#FFC300"
	Yellow   Colour = "#FFFF66"
	Green    Colour = "#CCFF99"
	Blue     Colour = "#6666FF"
	Purple   Colour = "#9966CC"
	Grey     Colour = "#999999"
	DarkBlue Colour = "#06041F"
)

// MaxColourLength bounds freeform codes to what the colour columns hold.
const MaxColourLength = 32

var ErrUnsupportedColour = errors.New("unsupported colour")

// SupportedColours is the fixed palette enforced by PaletteColours.
func SupportedColours() []Colour {
	return []Colour{White, Red, Orange, Yellow, Green, Blue, Purple, Grey, DarkBlue}
}

// NormalizeColour trims and upper-cases a colour code.
func NormalizeColour(code string) Colour {
	return Colour(strings.ToUpper(strings.TrimSpace(code)))
}

func (c Colour) String() string {
	return string(c)
}

// ColourPolicy turns user input into a Colour, rejecting what the policy does not allow.
type ColourPolicy interface {
	Parse(code string) (Colour, error)
}

// FreeformColours accepts any code after normalization, up to MaxColourLength.
type FreeformColours struct{}

func (FreeformColours) Parse(code string) (Colour, error) {
	c := NormalizeColour(code)
	if len(c) > MaxColourLength {
		return "", errors.Wrapf(ErrUnsupportedColour, "%q is longer than %d characters", code, MaxColourLength)
	}
	return c, nil
}

// PaletteColours only accepts SupportedColours.
type PaletteColours struct{}

func (PaletteColours) Parse(code string) (Colour, error) {
	c := NormalizeColour(code)
	if !slices.Contains(SupportedColours(), c) {
		return "", errors.Wrapf(ErrUnsupportedColour, "%q", code)
	}
	return c, nil
}

// ColourPolicyByName resolves the COLOUR_POLICY setting.
func ColourPolicyByName(name string) (ColourPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "freeform":
		return FreeformColours{}, nil
	case "palette":
		return PaletteColours{}, nil
	}
	return nil, errors.Newf("unknown colour policy %q", name)
}
