//go:build ignore
// +build ignore

package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

type center struct {
	name string
	lon  float64
	lat  float64
}

// Центры по умолчанию соответствуют сценарию осмотра cmd/simulator
const defaultCenters = "barcelona:2.1734,41.3851;paris:2.3522,48.8566;tokyo:139.6917,35.6895"

func main() {
	out := flag.String("out", "catalog.geojson", "output catalog path")
	perCenter := flag.Int("per-center", 120, "geotagged photos per center")
	spread := flag.Float64("spread", 0.08, "scatter around each center, degrees")
	centersFlag := flag.String("centers", defaultCenters, "semicolon-separated name:lon,lat centers")
	unplaced := flag.Int("unplaced", 10, "records without coordinates (scanned slides)")
	seed := flag.Int64("seed", 42, "random seed")
	flag.Parse()

	centers, err := parseCenters(*centersFlag)
	if err != nil {
		log.Fatalf("Failed to parse centers: %v", err)
	}

	rng := rand.New(rand.NewSource(*seed))
	scatter := *spread
	fc := geojson.NewFeatureCollection()

	// Геопривязанные фотографии вокруг каждого центра
	for _, c := range centers {
		for i := 0; i < *perCenter; i++ {
			point := orb.Point{
				c.lon + (rng.Float64()-0.5)*2*scatter,
				c.lat + (rng.Float64()-0.5)*2*scatter,
			}

			f := geojson.NewFeature(point)
			f.Properties["id"] = uuid.NewString()
			f.Properties["title"] = fmt.Sprintf("%s shot %03d", c.name, i+1)
			fc.Append(f)
		}
	}

	// Отсканированные слайды: записи каталога без геопривязки
	for i := 0; i < *unplaced; i++ {
		f := geojson.NewFeature(nil)
		f.Properties["id"] = uuid.NewString()
		f.Properties["title"] = fmt.Sprintf("scanned slide %03d", i+1)
		fc.Append(f)
	}

	data, err := json.MarshalIndent(fc, "", "  ")
	if err != nil {
		log.Fatalf("Failed to marshal catalog: %v", err)
	}

	if err := os.WriteFile(*out, data, 0o644); err != nil {
		log.Fatalf("Failed to write catalog: %v", err)
	}

	fmt.Printf("✅ Catalog written successfully!\n")
	fmt.Printf("   Path: %s\n", *out)
	fmt.Printf("   Centers: %d\n", len(centers))
	fmt.Printf("   Geotagged photos: %d\n", len(centers)*(*perCenter))
	fmt.Printf("   Unplaced records: %d\n", *unplaced)
}

// parseCenters разбирает список центров вида "name:lon,lat;name:lon,lat"
func parseCenters(raw string) ([]center, error) {
	var centers []center

	for _, part := range strings.Split(raw, ";") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		name, coords, ok := strings.Cut(part, ":")
		if !ok {
			return nil, fmt.Errorf("center %q: want name:lon,lat", part)
		}

		lonStr, latStr, ok := strings.Cut(coords, ",")
		if !ok {
			return nil, fmt.Errorf("center %q: want name:lon,lat", part)
		}

		lon, err := strconv.ParseFloat(strings.TrimSpace(lonStr), 64)
		if err != nil {
			return nil, fmt.Errorf("center %q: bad longitude: %w", part, err)
		}
		lat, err := strconv.ParseFloat(strings.TrimSpace(latStr), 64)
		if err != nil {
			return nil, fmt.Errorf("center %q: bad latitude: %w", part, err)
		}

		centers = append(centers, center{name: name, lon: lon, lat: lat})
	}

	if len(centers) == 0 {
		return nil, fmt.Errorf("no centers given")
	}
	return centers, nil
}
