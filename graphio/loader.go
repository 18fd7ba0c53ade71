package graphio

import (
	"context"
	"fmt"
	"os"
	"runtime"

	"github.com/paulmach/osm"
	"github.com/paulmach/osm/osmpbf"

	"github.com/hexterra/reachcore/core"
	"github.com/hexterra/reachcore/geo"
)

// Load parses the PBF extract at path under the given mode profile and
// compiles it into an immutable core.CsrGraph.
//
// Load makes two passes over the file: the first collects every node's
// coordinates (nodes precede ways in a well-formed PBF, but a defensive
// second open avoids relying on block ordering); the second walks ways,
// keeps only those whose highway tag is in the mode's profile, and emits
// one or two directed edges per consecutive node pair (two unless the mode
// respects one-way and the way is tagged oneway=yes/true/1).
func Load(path string, mode core.Mode) (*core.CsrGraph, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, ErrSourceMissing
		}
		return nil, fmt.Errorf("graphio: stat source: %w", err)
	}

	profile := core.NewProfile(mode)

	nodeIndex, lon, lat, err := scanNodes(path)
	if err != nil {
		return nil, err
	}

	b := core.NewBuilder(mode, lon, lat)
	if err := scanWays(path, profile, nodeIndex, b); err != nil {
		return nil, err
	}

	g, err := b.Freeze()
	if err != nil {
		return nil, fmt.Errorf("graphio: freeze: %w", err)
	}
	return g, nil
}

func openScanner(path string) (*os.File, *osmpbf.Scanner, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrSourceUnreadable, err)
	}
	procs := runtime.NumCPU()
	if procs < 1 {
		procs = 1
	}
	scanner := osmpbf.New(context.Background(), f, procs)
	return f, scanner, nil
}

// scanNodes builds a dense node-id -> array-index map and parallel
// coordinate arrays for every node in the extract.
func scanNodes(path string) (index map[int64]uint32, lon, lat []float32, err error) {
	f, scanner, err := openScanner(path)
	if err != nil {
		return nil, nil, nil, err
	}
	defer f.Close()
	defer scanner.Close()

	index = make(map[int64]uint32, 1<<20)
	for scanner.Scan() {
		obj := scanner.Object()
		n, ok := obj.(*osm.Node)
		if !ok {
			continue
		}
		id := int64(n.ID)
		if _, exists := index[id]; exists {
			continue
		}
		index[id] = uint32(len(lon))
		lon = append(lon, float32(n.Lon))
		lat = append(lat, float32(n.Lat))
	}
	if err := scanner.Err(); err != nil {
		return nil, nil, nil, fmt.Errorf("%w: %v", ErrSourceUnreadable, err)
	}
	return index, lon, lat, nil
}

// scanWays walks the PBF a second time, filtering ways by highway class and
// emitting edges for every consecutive node pair that survives.
func scanWays(path string, profile core.Profile, nodeIndex map[int64]uint32, b *core.Builder) error {
	f, scanner, err := openScanner(path)
	if err != nil {
		return err
	}
	defer f.Close()
	defer scanner.Close()

	for scanner.Scan() {
		obj := scanner.Object()
		w, ok := obj.(*osm.Way)
		if !ok {
			continue
		}
		highway := w.Tags.Find("highway")
		if highway == "" {
			continue
		}
		if profile.HighwayClasses != nil {
			if _, keep := profile.HighwayClasses[highway]; !keep {
				continue
			}
		} else if !isPedestrianAccessible(w.Tags) {
			continue
		}

		oneway := profile.RespectOneWay && isOneWay(w.Tags)
		speed := classSpeedMPS(profile, highway)

		for i := 0; i+1 < len(w.Nodes); i++ {
			fromID := int64(w.Nodes[i].ID)
			toID := int64(w.Nodes[i+1].ID)
			from, ok1 := nodeIndex[fromID]
			to, ok2 := nodeIndex[toID]
			if !ok1 || !ok2 || from == to {
				continue
			}

			weight := edgeWeightSeconds(b, from, to, speed)
			if err := b.AddEdge(from, to, weight); err != nil {
				return fmt.Errorf("graphio: %w", err)
			}
			if !oneway {
				if err := b.AddEdge(to, from, weight); err != nil {
					return fmt.Errorf("graphio: %w", err)
				}
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrSourceUnreadable, err)
	}
	return nil
}

// edgeWeightSeconds computes an edge's travel time from the great-circle
// distance between its endpoints and the class free-flow speed. A minimum
// of 1 second guards against zero-length ways collapsing to zero weight,
// which would otherwise behave like a free self-loop-adjacent shortcut.
func edgeWeightSeconds(b *core.Builder, from, to uint32, speedMPS float64) uint32 {
	lon1, lat1 := b.LonLat(from)
	lon2, lat2 := b.LonLat(to)
	meters := geo.HaversineM(float64(lon1), float64(lat1), float64(lon2), float64(lat2))
	seconds := meters / speedMPS
	if seconds < 1 {
		seconds = 1
	}
	return uint32(seconds + 0.5)
}

func classSpeedMPS(profile core.Profile, highway string) float64 {
	if v, ok := profile.SpeedMPS[highway]; ok {
		return v
	}
	if v, ok := profile.SpeedMPS["*"]; ok {
		return v
	}
	return core.WalkSpeedMPS
}

// pedestrianExcluded lists highway classes that are never walkable even
// though graphio's drive allowlist check is skipped for walk mode.
var pedestrianExcluded = map[string]struct{}{
	"motorway":      {},
	"motorway_link": {},
	"trunk_link":    {},
}

func isPedestrianAccessible(tags osm.Tags) bool {
	highway := tags.Find("highway")
	if _, excluded := pedestrianExcluded[highway]; excluded {
		return false
	}
	if foot := tags.Find("foot"); foot == "no" {
		return false
	}
	return true
}

func isOneWay(tags osm.Tags) bool {
	switch tags.Find("oneway") {
	case "yes", "true", "1":
		return true
	default:
		return false
	}
}
