package ephem

import (
	"fmt"
	"io"
	"sort"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

// Elements is one set of Keplerian orbital elements. Distances are in AU
// and angles in degrees.
type Elements struct {
	A        float64 `toml:"a"`         // semi-major axis
	E        float64 `toml:"e"`         // eccentricity
	I        float64 `toml:"i"`         // inclination
	L        float64 `toml:"l"`         // mean longitude
	LongPeri float64 `toml:"long_peri"` // longitude of perihelion ϖ
	Node     float64 `toml:"node"`      // longitude of the ascending node Ω
}

// ElementSet holds a body's elements at J2000 and their rates per Julian
// century.
type ElementSet struct {
	Name       string   `toml:"name"`
	Base       Elements `toml:"base"`
	Rate       Elements `toml:"rate"`
	Geocentric bool     `toml:"geocentric"` // elements already referred to the Earth
}

// Names of the special bodies.
const (
	BodySun   = "Sun"
	BodyMoon  = "Moon"
	BodyEarth = "EM Bary"
)

// Approximate Keplerian elements for the planets, valid 1800-2050
// (Standish, JPL), plus geocentric lunar elements.
var DefaultElements = []ElementSet{
	{
		Name: "Mercury",
		Base: Elements{A: 0.38709927, E: 0.20563593, I: 7.00497902, L: 252.25032350, LongPeri: 77.45779628, Node: 48.33076593},
		Rate: Elements{A: 0.00000037, E: 0.00001906, I: -0.00594749, L: 149472.67411175, LongPeri: 0.16047689, Node: -0.12534081},
	},
	{
		Name: "Venus",
		Base: Elements{A: 0.72333566, E: 0.00677672, I: 3.39467605, L: 181.97909950, LongPeri: 131.60246718, Node: 76.67984255},
		Rate: Elements{A: 0.00000390, E: -0.00004107, I: -0.00078890, L: 58517.81538729, LongPeri: 0.00268329, Node: -0.27769418},
	},
	{
		Name: BodyEarth,
		Base: Elements{A: 1.00000261, E: 0.01671123, I: -0.00001531, L: 100.46457166, LongPeri: 102.93768193, Node: 0},
		Rate: Elements{A: 0.00000562, E: -0.00004392, I: -0.01294668, L: 35999.37244981, LongPeri: 0.32327364, Node: 0},
	},
	{
		Name: "Mars",
		Base: Elements{A: 1.52371034, E: 0.09339410, I: 1.84969142, L: -4.55343205, LongPeri: -23.94362959, Node: 49.55953891},
		Rate: Elements{A: 0.00001847, E: 0.00007882, I: -0.00813131, L: 19140.30268499, LongPeri: 0.44441088, Node: -0.29257343},
	},
	{
		Name: "Jupiter",
		Base: Elements{A: 5.20288700, E: 0.04838624, I: 1.30439695, L: 34.39644051, LongPeri: 14.72847983, Node: 100.47390909},
		Rate: Elements{A: -0.00011607, E: -0.00013253, I: -0.00183714, L: 3034.74612775, LongPeri: 0.21252668, Node: 0.20469106},
	},
	{
		Name: "Saturn",
		Base: Elements{A: 9.53667594, E: 0.05386179, I: 2.48599187, L: 49.95424423, LongPeri: 92.59887831, Node: 113.66242448},
		Rate: Elements{A: -0.00125060, E: -0.00050991, I: 0.00193609, L: 1222.49362201, LongPeri: -0.41897216, Node: -0.28867794},
	},
	{
		Name: "Uranus",
		Base: Elements{A: 19.18916464, E: 0.04725744, I: 0.77263783, L: 313.23810451, LongPeri: 170.95427630, Node: 74.01692503},
		Rate: Elements{A: -0.00196176, E: -0.00004397, I: -0.00242939, L: 428.48202785, LongPeri: 0.40805281, Node: 0.04240589},
	},
	{
		Name: "Neptune",
		Base: Elements{A: 30.06992276, E: 0.00859048, I: 1.77004347, L: -55.12002969, LongPeri: 44.96476227, Node: 131.78422574},
		Rate: Elements{A: 0.00026291, E: 0.00005105, I: 0.00035372, L: 218.45945325, LongPeri: -0.32241464, Node: -0.00508664},
	},
	{
		Name: "Pluto",
		Base: Elements{A: 39.48211675, E: 0.24882730, I: 17.14001206, L: 238.92903833, LongPeri: 224.06891629, Node: 110.30393684},
		Rate: Elements{A: -0.00031596, E: 0.00005170, I: 0.00004818, L: 145.20780515, LongPeri: -0.04062942, Node: -0.01183482},
	},
	{
		Name:       BodyMoon,
		Base:       Elements{A: 0.0025695553, E: 0.0549, I: 5.1454, L: 218.3162, LongPeri: 83.3533, Node: 125.0434},
		Rate:       Elements{L: 481267.8810, LongPeri: 4069.0134, Node: -1934.1377},
		Geocentric: true,
	},
}

// Table is an orbital-element table keyed by case-insensitive body name.
type Table struct {
	sets   []ElementSet
	byName map[string]int
}

// NewTable indexes sets. The Earth-Moon barycentre must be present since
// every geocentric position depends on it.
func NewTable(sets []ElementSet) (*Table, error) {
	t := &Table{sets: sets, byName: make(map[string]int, len(sets))}
	for i, s := range sets {
		key := normalizeName(s.Name)
		if key == "" {
			return nil, fmt.Errorf("element set %d has no name", i)
		}
		if _, dup := t.byName[key]; dup {
			return nil, fmt.Errorf("duplicate element set %q", s.Name)
		}
		t.byName[key] = i
	}
	if _, ok := t.byName[normalizeName(BodyEarth)]; !ok {
		return nil, fmt.Errorf("element table lacks %q", BodyEarth)
	}
	return t, nil
}

// DefaultTable returns the built-in table.
func DefaultTable() *Table {
	t, err := NewTable(DefaultElements)
	if err != nil {
		panic(err)
	}
	return t
}

// LoadTable reads a TOML element table of [[body]] entries.
func LoadTable(r io.Reader) (*Table, error) {
	var doc struct {
		Bodies []ElementSet `toml:"body"`
	}
	if err := toml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("parsing element table: %w", err)
	}
	return NewTable(doc.Bodies)
}

// Lookup returns the element set for name.
func (t *Table) Lookup(name string) (ElementSet, error) {
	i, ok := t.byName[normalizeName(name)]
	if !ok {
		return ElementSet{}, &UnknownBodyError{Name: name}
	}
	return t.sets[i], nil
}

// Names returns the body names in the table, sorted.
func (t *Table) Names() []string {
	names := make([]string, 0, len(t.sets))
	for _, s := range t.sets {
		names = append(names, s.Name)
	}
	sort.Strings(names)
	return names
}

// aliases maps alternative spellings onto table names.
var aliases = map[string]string{
	"earth":         BodyEarth,
	"em barycenter": BodyEarth,
	"luna":          BodyMoon,
	"sol":           BodySun,
}

// normalizeName lowercases and collapses whitespace, then resolves aliases.
func normalizeName(name string) string {
	key := strings.ToLower(strings.Join(strings.Fields(name), " "))
	if canonical, ok := aliases[key]; ok {
		return strings.ToLower(canonical)
	}
	return key
}
