package main

import (
	"flag"
	"log"
	"os"
	"runtime/pprof"

	worldgen "github.com/romxai/world-generation-sub000"
)

var cpuprofile = flag.String("cpuprofile", "", "write cpu profile to file")
var memprofile = flag.String("memprofile", "", "write memory profile to this file")

var (
	seed int64 = 1234
	size int   = 1024
	mode       = "biome"
	out        = "world"
)

func init() {
	flag.Int64Var(&seed, "seed", seed, "the world seed")
	flag.IntVar(&size, "size", size, "export size in pixels")
	flag.StringVar(&mode, "mode", mode, "display mode to export (or 'all')")
	flag.StringVar(&out, "out", out, "output file prefix")
}

func main() {
	flag.Parse()
	if *cpuprofile != "" {
		f, err := os.Create(*cpuprofile)
		if err != nil {
			log.Fatal(err)
		}
		pprof.StartCPUProfile(f)
		defer pprof.StopCPUProfile()
	}

	world, err := worldgen.NewWorld(seed)
	if err != nil {
		log.Fatal(err)
	}
	lo, hi := world.ElevationRange(64)
	log.Printf("Elevation range: %.3f - %.3f", lo, hi)

	modes := []worldgen.DisplayMode{
		worldgen.DisplayElevation,
		worldgen.DisplayMoisture,
		worldgen.DisplayTemperature,
		worldgen.DisplayBiome,
		worldgen.DisplayResource,
		worldgen.DisplayNoise,
	}
	if mode != "all" {
		m, err := worldgen.ParseDisplayMode(mode)
		if err != nil {
			log.Fatal(err)
		}
		modes = []worldgen.DisplayMode{m}
	}
	for _, m := range modes {
		name := out + "_" + m.String() + ".png"
		if err := world.ExportPng(name, size, size, m); err != nil {
			log.Fatal(err)
		}
		log.Println("Wrote", name)
	}

	if *memprofile != "" {
		f, err := os.Create(*memprofile)
		if err != nil {
			log.Fatal(err)
		}
		pprof.WriteHeapProfile(f)
		f.Close()
	}
}
