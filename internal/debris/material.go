package debris

import (
	"encoding/json"
	"strings"
)

// Kind tags the closed set of material variants.
type Kind uint8

const (
	Rigid Kind = iota
	SemiRigid
	Soft
)

// RGB is a presentation color hint; the core never interprets it.
type RGB struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// Material bundles the immutable physical constants of one kind.
// Values are never mutated at runtime; particles hold them by value.
type Material struct {
	Density              float64
	Elasticity           float64
	Damping              float64
	Color                RGB
	DeformationThreshold float64
}

var materials = [...]Material{
	Rigid:     {Density: 2.5, Elasticity: 0.2, Damping: 0.95, Color: RGB{150, 150, 150}, DeformationThreshold: 1000},
	SemiRigid: {Density: 1.8, Elasticity: 0.6, Damping: 0.85, Color: RGB{200, 150, 100}, DeformationThreshold: 300},
	Soft:      {Density: 1.0, Elasticity: 0.9, Damping: 0.7, Color: RGB{100, 200, 150}, DeformationThreshold: 50},
}

// Material returns the constants for the kind. Callers pass one of the
// three declared constants; other values are a programming error.
func (k Kind) Material() Material {
	return materials[k]
}

func (k Kind) String() string {
	switch k {
	case Rigid:
		return "rigid"
	case SemiRigid:
		return "semi_rigid"
	case Soft:
		return "soft"
	}
	return "unknown"
}

// MarshalJSON encodes the kind as its name so wire frames stay
// readable.
func (k Kind) MarshalJSON() ([]byte, error) {
	return json.Marshal(k.String())
}

func (k *Kind) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseKind(s)
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// ParseKind maps a config/CLI name to a Kind. Accepts the String form
// plus common aliases.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "rigid", "1":
		return Rigid, nil
	case "semi_rigid", "semirigid", "semi-rigid", "2":
		return SemiRigid, nil
	case "soft", "3":
		return Soft, nil
	}
	return 0, ErrUnknownMaterial
}

// Kinds lists the material kinds in declaration order.
func Kinds() []Kind {
	return []Kind{Rigid, SemiRigid, Soft}
}
