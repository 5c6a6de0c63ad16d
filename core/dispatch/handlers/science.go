// Planetary calculations: gravity, bearing and travel rate.

package handlers

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"

	"GoBotExt/core/dispatch"
	"GoBotExt/core/dispatch/convert"
)

const ScienceSection = "Science"

func Science(d *dispatch.Dispatcher) error {
	number := func(name string, opts ...convert.Option) dispatch.Argument {
		return dispatch.Arg(name, convert.Number(opts...))
	}
	section := dispatch.NewSection(dispatch.SectionOptions{
		Name:        ScienceSection,
		Description: "Planetary calculations",
	}).Define(dispatch.CommandOptions{
		Name:        "bearing",
		Description: "Calculate bearing, and distance when a planet radius in km is given, between two coordinates",
		Arguments: []dispatch.Argument{
			number("lat1"), number("lon1"), number("lat2"), number("lon2"),
			number("radius", convert.WithDefault(0.0)),
		},
	}, bearing).Define(dispatch.CommandOptions{
		Name:        "g",
		Description: "Calculate gravity and density for a planet",
		Arguments:   []dispatch.Argument{number("earthMasses"), number("radius")},
	}, gravity).Define(dispatch.CommandOptions{
		Name:        "kly/hr",
		Description: "Calculate max kly travelled per hour from jump range, seconds per jump and efficiency",
		Arguments: []dispatch.Argument{
			number("jumpRange"),
			number("jumpTime", convert.WithDefault(45.0)),
			number("efficiency", convert.WithDefault(95.0)),
		},
	}, klyPerHour)
	return d.AddSection(section)
}

type coord float64

func (c coord) String() string {
	return strings.TrimRight(strings.TrimRight(fmt.Sprintf("%.4f", float64(c)), "0"), ".")
}

func (c coord) radians() float64 { return float64(c) * math.Pi / 180 }

type latLong struct {
	lat, lon coord
}

func (ll latLong) String() string {
	return fmt.Sprintf("`(lat %s, lon %s)`", ll.lat, ll.lon)
}

// headingTo is the initial great circle bearing in degrees, in [0, 360).
func (ll latLong) headingTo(end latLong) float64 {
	dLon := end.lon.radians() - ll.lon.radians()
	y := math.Sin(dLon) * math.Cos(end.lat.radians())
	x := math.Cos(ll.lat.radians())*math.Sin(end.lat.radians()) -
		math.Sin(ll.lat.radians())*math.Cos(end.lat.radians())*math.Cos(dLon)
	return math.Mod(math.Atan2(y, x)*180/math.Pi+360, 360)
}

// distanceTo is the haversine distance on a sphere of the given radius.
func (ll latLong) distanceTo(end latLong, radius float64) float64 {
	dLat := (end.lat - ll.lat).radians()
	dLon := (end.lon - ll.lon).radians()
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(ll.lat.radians())*math.Cos(end.lat.radians())*math.Sin(dLon/2)*math.Sin(dLon/2)
	return radius * 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}

func bearing(ctx context.Context, c *dispatch.Context, args ...any) error {
	n := numbers(args)
	start, end := latLong{coord(n[0]), coord(n[1])}, latLong{coord(n[2]), coord(n[3])}
	radius := n[4]

	distance := ""
	if radius > 0 {
		switch km := start.distanceTo(end, radius); {
		case km > 1:
			distance = fmt.Sprintf(" for **%.2f km**", km)
		case km > 0:
			distance = fmt.Sprintf(" for **%.1f m**", km*1000)
		}
	}
	return c.ReplyToChannel(ctx, "To get from %s to %s head in bearing **%.1f°**%s.", start, end, start.headingTo(end), distance)
}

type densityRange struct {
	planetType                       string
	min, likelyMin, likelyMax, max float64
}

// Densities in kg/m^3 by planet class.
var densityRanges = []densityRange{
	{"IW", 1.06e3, 1.84e3, 2.62e3, 3.40e3},
	{"RIW", 2.25e3, 2.82e3, 3.38e3, 3.95e3},
	{"RW", 2.94e3, 3.77e3, 4.60e3, 5.43e3},
	{"HMC", 1.21e3, 4.60e3, 8.00e3, 1.14e4},
	{"MR", 1.47e3, 7.99e3, 1.45e4, 2.10e4},
	{"WW", 1.51e3, 4.24e3, 6.97e3, 9.70e3},
	{"ELW", 4.87e3, 5.65e3, 6.43e3, 7.21e3},
	{"AW", 4.23e2, 3.50e3, 6.59e3, 9.67e3},
}

func planetTypes(density float64) (likely, possible []string) {
	for _, r := range densityRanges {
		switch {
		case density > r.likelyMin && density < r.likelyMax:
			likely = append(likely, r.planetType)
		case density > r.min && density < r.max:
			possible = append(possible, r.planetType)
		}
	}
	sort.Strings(likely)
	sort.Strings(possible)
	return likely, possible
}

const (
	gravitational = 6.67e-11
	earthMass     = 5.98e24
	earthRadius   = 6367444.7
	earthG        = gravitational * earthMass / (earthRadius * earthRadius)
)

// surfaceGravity returns m/s^2 and density in kg/m^3 for a planet given in
// Earth masses and km.
func surfaceGravity(masses, radiusKm float64) (g, density float64) {
	mass := masses * earthMass
	g = gravitational * mass / math.Pow(radiusKm*1000, 2)
	density = mass / (4.0 / 3.0 * math.Pi * math.Pow(radiusKm, 3)) * 1e-9
	return g, density
}

func gravity(ctx context.Context, c *dispatch.Context, args ...any) error {
	n := numbers(args)
	masses, radius := n[0], n[1]
	if masses <= 0 || radius <= 0 {
		return c.ReplyToChannel(ctx, "Mass and radius must be greater than 0.")
	}
	g, density := surfaceGravity(masses, radius)

	text := fmt.Sprintf("The gravity for a planet with %#.3g Earth Masses and a radius of %.0f km is **%.5g** m/s^2 or **%.5g** g. It has a density of **%.5g** kg/m^3.",
		masses, radius, g, g/earthG, density)
	likely, possible := planetTypes(density)
	if len(likely) > 0 {
		text += "\n**Likely**: " + strings.Join(likely, ", ")
	}
	if len(possible) > 0 {
		text += "\n**Possible**: " + strings.Join(possible, ", ")
	}
	return c.Send(ctx, text)
}

func klyPerHour(ctx context.Context, c *dispatch.Context, args ...any) error {
	n := numbers(args)
	jumpRange, jumpTime, efficiency := n[0], n[1], n[2]
	switch {
	case jumpRange <= 0:
		return c.ReplyToChannel(ctx, "The jump range must be a number greater than 0.")
	case jumpTime <= 0:
		return c.ReplyToChannel(ctx, "The time per jump must be a number greater than 0.")
	case efficiency <= 0 || efficiency >= 100:
		return c.ReplyToChannel(ctx, "The efficiency must be a number greater than 0 and smaller than 100.")
	}

	avgJump := jumpRange * efficiency / 100
	perHour := math.Round(3600 / jumpTime * avgJump)
	return c.ReplyToChannel(ctx, "Spending an average of `%.0fs` per system, with an average hop of `%.0f` ly (`%.0f%%` efficiency of `%.1f`), you can travel **%.0f ly / hour**.",
		jumpTime, avgJump, efficiency, jumpRange, perHour)
}

// numbers flattens converted number arguments. An optional argument that
// did not convert reads as 0.
func numbers(args []any) []float64 {
	n := make([]float64, len(args))
	for i, arg := range args {
		n[i], _ = arg.(float64)
	}
	return n
}
