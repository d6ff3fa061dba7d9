package batch

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/golang/geo/r3"
	"github.com/paulmach/orb"
	"github.com/tzneal/plcoord"
)

// ErrUnknownOperation is returned for an operation name not in the registry.
var ErrUnknownOperation = errors.New("unknown operation")

// Unit selects how a column is formatted.
type Unit int

const (
	Meters Unit = iota
	Degrees
)

// Column describes one input or output value of an operation.
type Column struct {
	Name string
	Unit Unit
}

// Operation is one conversion the batch converter can apply to a record.
type Operation struct {
	Name string
	// Inputs lists the record columns. It depends on the ellipsoid because
	// the national grids take a height for Krasowski input.
	Inputs  func(e plcoord.Ellipsoid) []Column
	Outputs []Column

	run func(t *plcoord.Transformer, l0 float64, in []float64) ([]float64, error)
	// point returns the geodetic position of a record as (lng, lat), nil when
	// the operation has neither geodetic input nor output.
	point func(in, out []float64) orb.Point
}

// SupportsGeoJSON reports whether records of the operation have a geodetic
// position to use as the feature geometry.
func (o Operation) SupportsGeoJSON() bool { return o.point != nil }

var (
	latLng    = []Column{{"lat", Degrees}, {"lng", Degrees}}
	latLngH   = []Column{{"lat", Degrees}, {"lng", Degrees}, {"h", Meters}}
	cartesian = []Column{{"x", Meters}, {"y", Meters}, {"z", Meters}}
	planar    = []Column{{"x", Meters}, {"y", Meters}}
	neuInput  = []Column{
		{"xr", Meters}, {"yr", Meters}, {"zr", Meters},
		{"xt", Meters}, {"yt", Meters}, {"zt", Meters},
	}
)

func fixed(cols []Column) func(plcoord.Ellipsoid) []Column {
	return func(plcoord.Ellipsoid) []Column { return cols }
}

// gridInput is latitude and longitude, plus the height on Krasowski.
func gridInput(e plcoord.Ellipsoid) []Column {
	if e == plcoord.Krasowski {
		return latLngH
	}
	return latLng
}

func inputPoint(in, _ []float64) orb.Point   { return orb.Point{in[1], in[0]} }
func outputPoint(_, out []float64) orb.Point { return orb.Point{out[1], out[0]} }

var operations = map[string]Operation{
	"hirvonen": {
		Name:    "hirvonen",
		Inputs:  fixed(cartesian),
		Outputs: latLngH,
		run: func(t *plcoord.Transformer, _ float64, in []float64) ([]float64, error) {
			g, err := t.Hirvonen(in[0], in[1], in[2])
			if err != nil {
				return nil, err
			}
			return []float64{g.LatLng.Lat.Degrees(), g.LatLng.Lng.Degrees(), g.Height}, nil
		},
		point: outputPoint,
	},
	"flh2xyz": {
		Name:    "flh2xyz",
		Inputs:  fixed(latLngH),
		Outputs: cartesian,
		run: func(t *plcoord.Transformer, _ float64, in []float64) ([]float64, error) {
			p := t.FLH2XYZ(in[0], in[1], in[2])
			return []float64{p.X, p.Y, p.Z}, nil
		},
		point: inputPoint,
	},
	"neu": {
		Name:    "neu",
		Inputs:  fixed(neuInput),
		Outputs: []Column{{"n", Meters}, {"e", Meters}, {"u", Meters}},
		run: func(t *plcoord.Transformer, _ float64, in []float64) ([]float64, error) {
			v, err := t.NEU(r3.Vector{X: in[0], Y: in[1], Z: in[2]}, r3.Vector{X: in[3], Y: in[4], Z: in[5]})
			if err != nil {
				return nil, err
			}
			return []float64{v.North, v.East, v.Up}, nil
		},
	},
	"fl2gk": {
		Name:    "fl2gk",
		Inputs:  fixed(latLng),
		Outputs: planar,
		run: func(t *plcoord.Transformer, l0 float64, in []float64) ([]float64, error) {
			m := t.FL2GK(in[0], in[1], l0)
			return []float64{m.X, m.Y}, nil
		},
		point: inputPoint,
	},
	"fl2000": {
		Name:    "fl2000",
		Inputs:  gridInput,
		Outputs: planar,
		run: func(t *plcoord.Transformer, l0 float64, in []float64) ([]float64, error) {
			c, err := t.FL2000(in[0], in[1], l0, in[2:]...)
			if err != nil {
				return nil, err
			}
			return []float64{c.X, c.Y}, nil
		},
		point: inputPoint,
	},
	"fl1992": {
		Name:    "fl1992",
		Inputs:  gridInput,
		Outputs: planar,
		run: func(t *plcoord.Transformer, l0 float64, in []float64) ([]float64, error) {
			m, err := t.FL21992(in[0], in[1], l0, in[2:]...)
			if err != nil {
				return nil, err
			}
			return []float64{m.X, m.Y}, nil
		},
		point: inputPoint,
	},
	"kras2grs80": {
		Name:    "kras2grs80",
		Inputs:  fixed(latLngH),
		Outputs: cartesian,
		run: func(t *plcoord.Transformer, _ float64, in []float64) ([]float64, error) {
			p, err := t.Krasowski2GRS80(in[0], in[1], in[2])
			if err != nil {
				return nil, err
			}
			return []float64{p.X, p.Y, p.Z}, nil
		},
		point: inputPoint,
	},
	"pl20002fl": {
		Name:    "pl20002fl",
		Inputs:  fixed(planar),
		Outputs: latLng,
		run: func(t *plcoord.Transformer, _ float64, in []float64) ([]float64, error) {
			ll, err := t.PL20002FL(plcoord.PL2000Coord{X: in[0], Y: in[1]})
			if err != nil {
				return nil, err
			}
			return []float64{ll.Lat.Degrees(), ll.Lng.Degrees()}, nil
		},
		point: outputPoint,
	},
	"pl19922fl": {
		Name:    "pl19922fl",
		Inputs:  fixed(planar),
		Outputs: latLng,
		run: func(t *plcoord.Transformer, _ float64, in []float64) ([]float64, error) {
			ll, err := t.PL19922FL(in[0], in[1])
			if err != nil {
				return nil, err
			}
			return []float64{ll.Lat.Degrees(), ll.Lng.Degrees()}, nil
		},
		point: outputPoint,
	},
}

// LookupOperation returns the named operation. Names are case-insensitive.
func LookupOperation(name string) (Operation, error) {
	op, ok := operations[strings.ToLower(name)]
	if !ok {
		return Operation{}, fmt.Errorf("%w: %q", ErrUnknownOperation, name)
	}
	return op, nil
}

// OperationNames lists the registered operations in sorted order.
func OperationNames() []string {
	names := make([]string, 0, len(operations))
	for name := range operations {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
