package main

import (
	"bytes"
	"flag"
	"fmt"
	"image/png"
	"log"
	"net/http"
	"os"
	"strconv"

	"github.com/gorilla/mux"
	"gopkg.in/yaml.v3"

	worldgen "github.com/romxai/world-generation-sub000"
)

var world *worldgen.World

var (
	seed       int64  = 12345
	addr       string = ":3333"
	configFile string = ""
	staticDir  string = "static"
)

func init() {
	flag.Int64Var(&seed, "seed", seed, "the world seed")
	flag.StringVar(&addr, "addr", addr, "listen address")
	flag.StringVar(&configFile, "config", configFile, "path to a YAML world config")
	flag.StringVar(&staticDir, "static", staticDir, "directory with the viewer files")
}

// loadConfig builds the world config from the defaults, the optional
// YAML file, and the -seed flag, in that order.
func loadConfig() (*worldgen.Config, error) {
	cfg := worldgen.NewConfig()
	if configFile != "" {
		data, err := os.ReadFile(configFile)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}
	cfg.Seed = seed
	return cfg, nil
}

func main() {
	flag.Parse()

	cfg, err := loadConfig()
	if err != nil {
		log.Fatal(err)
	}
	world, err = worldgen.NewWorldFromConfig(cfg)
	if err != nil {
		log.Fatal(err)
	}

	router := mux.NewRouter()
	router.HandleFunc("/tiles/{z}/{x}/{y}", tileHandler)
	router.HandleFunc("/tile/{x}/{y}", tileJSONHandler)
	router.HandleFunc("/debug/{x}/{y}", debugHandler)
	router.HandleFunc("/geojson_resources/{la1}/{lo1}/{la2}/{lo2}", geoJSONResourcesHandler)
	router.HandleFunc("/config", configHandler).Methods("POST")
	router.PathPrefix("/").Handler(http.FileServer(http.Dir(staticDir)))
	log.Println("Listening on", addr)
	log.Fatal(http.ListenAndServe(addr, router))
}

// tileHandler serves a rendered PNG tile. The display mode is selected
// with the 'mode' query parameter and defaults to biome.
func tileHandler(res http.ResponseWriter, req *http.Request) {
	vars := mux.Vars(req)
	tileX, err := strconv.Atoi(vars["x"])
	if err != nil {
		http.Error(res, err.Error(), http.StatusBadRequest)
		return
	}
	tileY, err := strconv.Atoi(vars["y"])
	if err != nil {
		http.Error(res, err.Error(), http.StatusBadRequest)
		return
	}
	tileZ, err := strconv.Atoi(vars["z"])
	if err != nil {
		http.Error(res, err.Error(), http.StatusBadRequest)
		return
	}
	if tileZ < 0 || tileZ > worldgen.MaxZoom {
		http.Error(res, fmt.Sprintf("zoom out of range [0,%d]", worldgen.MaxZoom), http.StatusBadRequest)
		return
	}
	mode := worldgen.DisplayBiome
	if name := req.URL.Query().Get("mode"); name != "" {
		mode, err = worldgen.ParseDisplayMode(name)
		if err != nil {
			http.Error(res, err.Error(), http.StatusBadRequest)
			return
		}
	}

	img := world.GetTile(tileX, tileY, tileZ, mode)
	buf := new(bytes.Buffer)
	if err := png.Encode(buf, img); err != nil {
		http.Error(res, err.Error(), http.StatusInternalServerError)
		return
	}
	res.Header().Set("Content-Type", "image/png")
	res.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	res.Write(buf.Bytes())
}

// tileJSONHandler serves the aggregate tile values at a world
// coordinate as JSON.
func tileJSONHandler(res http.ResponseWriter, req *http.Request) {
	x, y, err := parseWorldCoordinate(req)
	if err != nil {
		http.Error(res, err.Error(), http.StatusBadRequest)
		return
	}
	t := world.TileAt(x, y)
	res.Header().Set("Content-Type", "application/json")
	fmt.Fprintf(res, `{"elevation":%f,"moisture":%f,"temperature":%f,"biome":%q`,
		t.Elevation, t.Moisture, t.Temperature, t.Biome.String())
	if t.Resource != nil {
		fmt.Fprintf(res, `,"resource":{"kind":%q,"density":%f,"size":%d}`,
			t.Resource.Kind, t.Resource.Density, t.Resource.Size)
	}
	fmt.Fprint(res, "}")
}

// debugHandler serves the diagnostic summary for a world coordinate.
func debugHandler(res http.ResponseWriter, req *http.Request) {
	x, y, err := parseWorldCoordinate(req)
	if err != nil {
		http.Error(res, err.Error(), http.StatusBadRequest)
		return
	}
	res.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprint(res, world.DebugSummary(x, y))
}

// geoJSONResourcesHandler serves the deposits in a lat/lon bounding box.
func geoJSONResourcesHandler(res http.ResponseWriter, req *http.Request) {
	vars := mux.Vars(req)
	var coords [4]float64
	for i, key := range []string{"la1", "lo1", "la2", "lo2"} {
		v, err := strconv.ParseFloat(vars[key], 64)
		if err != nil {
			http.Error(res, err.Error(), http.StatusBadRequest)
			return
		}
		coords[i] = v
	}
	zoom := 4
	if z := req.URL.Query().Get("zoom"); z != "" {
		var err error
		if zoom, err = strconv.Atoi(z); err != nil {
			http.Error(res, err.Error(), http.StatusBadRequest)
			return
		}
	}
	if zoom < 0 || zoom > worldgen.MaxZoom {
		http.Error(res, fmt.Sprintf("zoom out of range [0,%d]", worldgen.MaxZoom), http.StatusBadRequest)
		return
	}
	data, err := world.GetGeoJSONResources(coords[0], coords[1], coords[2], coords[3], zoom)
	if err != nil {
		http.Error(res, err.Error(), http.StatusInternalServerError)
		return
	}
	res.Header().Set("Content-Type", "application/json")
	res.Header().Set("Content-Length", strconv.Itoa(len(data)))
	res.Write(data)
}

// configHandler replaces the active configuration from a YAML body.
func configHandler(res http.ResponseWriter, req *http.Request) {
	cfg := worldgen.NewConfig()
	if err := yaml.NewDecoder(req.Body).Decode(cfg); err != nil {
		http.Error(res, err.Error(), http.StatusBadRequest)
		return
	}
	if err := world.Configure(cfg); err != nil {
		http.Error(res, err.Error(), http.StatusBadRequest)
		return
	}
	res.WriteHeader(http.StatusNoContent)
}

func parseWorldCoordinate(req *http.Request) (float64, float64, error) {
	vars := mux.Vars(req)
	x, err := strconv.ParseFloat(vars["x"], 64)
	if err != nil {
		return 0, 0, err
	}
	y, err := strconv.ParseFloat(vars["y"], 64)
	if err != nil {
		return 0, 0, err
	}
	return x, y, nil
}
