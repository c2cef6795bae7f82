// Package main provides the vecinfo command: it inspects PIV .vec
// files, loads whole directories into time-stacked sequences, prints
// grid and velocity summaries, and optionally records each load in a
// sqlite catalog.
package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/openpiv/pivgo/internal/catalog"
	"github.com/openpiv/pivgo/internal/config"
	"github.com/openpiv/pivgo/internal/field"
	"github.com/openpiv/pivgo/internal/fsutil"
	"github.com/openpiv/pivgo/internal/vec"
)

func main() {
	var (
		filePath   = flag.String("file", "", "inspect a single .vec file")
		dirPath    = flag.String("dir", "", "load every .vec file in a directory")
		configPath = flag.String("config", "", "loader options JSON file")
		dbPath     = flag.String("db", "", "sqlite catalog database path")
		list       = flag.Bool("list", false, "list catalogued loads (requires -db)")
		listLimit  = flag.Int("limit", 20, "max catalog entries to list")
	)
	flag.Parse()

	opts := config.EmptyOptions()
	if *configPath != "" {
		var err error
		opts, err = config.Load(*configPath)
		if err != nil {
			log.Fatalf("loading config: %v", err)
		}
	}

	fsys := fsutil.OSFileSystem{}

	switch {
	case *list:
		if *dbPath == "" {
			log.Fatal("-list requires -db")
		}
		listCatalog(*dbPath, *listLimit)
	case *filePath != "":
		inspectFile(fsys, *filePath, opts)
	case *dirPath != "":
		loadDir(fsys, *dirPath, opts, *dbPath)
	default:
		log.Fatal("one of -file, -dir or -list is required")
	}
}

func inspectFile(fsys fsutil.FileSystem, path string, opts *config.Options) {
	frame, err := vec.LoadField(fsys, path, vec.LoadOptions{Order: opts.GetScanOrder()})
	if err != nil {
		log.Fatalf("loading %s: %v", path, err)
	}

	u, found, err := vec.ReadUnits(fsys, path, opts.DefaultUnits())
	if err != nil {
		log.Fatalf("reading units from %s: %v", path, err)
	}

	rows, cols := frame.Dims()
	fmt.Printf("%s\n", path)
	fmt.Printf("  grid:  %d x %d (%d vectors)\n", rows, cols, rows*cols)
	fmt.Printf("  x:     %g .. %g\n", frame.X[0], frame.X[len(frame.X)-1])
	fmt.Printf("  y:     %g .. %g\n", frame.Y[0], frame.Y[len(frame.Y)-1])
	if found {
		fmt.Printf("  units: length %q, velocity %q, time %q\n", u.Length, u.Velocity, u.Time)
	} else {
		fmt.Printf("  units: none declared in header\n")
	}
	if frame.Attrs != nil {
		fmt.Printf("  dt:    %g us\n", frame.Attrs.DeltaT)
	}

	printStats("  ", frame.SpeedStats())
}

func printStats(prefix string, stats field.Stats) {
	fmt.Printf("%smean %.4g rms %.4g max %.4g\n", prefix, stats.MeanSpeed, stats.RMSSpeed, stats.MaxSpeed)
}

func loadDir(fsys fsutil.FileSystem, dir string, opts *config.Options, dbPath string) {
	seq, err := vec.LoadDirectory(fsys, dir, vec.DirectoryOptions{
		Order:        opts.GetScanOrder(),
		ValidateGrid: opts.GetValidateGrid(),
	})
	if err != nil {
		log.Fatalf("loading %s: %v", dir, err)
	}

	rows, cols := seq.Frames[0].Dims()
	fmt.Printf("%s\n", dir)
	fmt.Printf("  frames: %d\n", seq.Len())
	fmt.Printf("  grid:   %d x %d\n", rows, cols)
	fmt.Printf("  units:  %v\n", seq.Units)

	for i, stats := range seq.FrameStats() {
		fmt.Printf("  t=%d mean %.4g rms %.4g max %.4g\n", i, stats.MeanSpeed, stats.RMSSpeed, stats.MaxSpeed)
	}

	if dbPath != "" {
		recordLoad(dbPath, dir, seq, rows, cols)
	}
}

func recordLoad(dbPath, dir string, seq *field.Sequence, rows, cols int) {
	c, err := catalog.Open(dbPath)
	if err != nil {
		log.Fatalf("opening catalog %s: %v", dbPath, err)
	}
	defer c.Close()

	rec := catalog.Record{
		Directory: dir,
		Frames:    seq.Len(),
		Rows:      rows,
		Cols:      cols,
		MeanSpeed: seq.MeanSpeed(),
	}
	if len(seq.Units) > 0 {
		rec.LengthUnit = seq.Units[0]
	}
	if len(seq.Units) > 2 {
		rec.VelocityUnit = seq.Units[2]
	}
	if attrs := seq.Frames[0].Attrs; attrs != nil {
		rec.DeltaT = attrs.DeltaT
	}

	id, err := c.Insert(rec)
	if err != nil {
		log.Fatalf("recording load: %v", err)
	}
	log.Printf("catalogued load %s", id)
}

func listCatalog(dbPath string, limit int) {
	c, err := catalog.Open(dbPath)
	if err != nil {
		log.Fatalf("opening catalog %s: %v", dbPath, err)
	}
	defer c.Close()

	records, err := c.List(limit)
	if err != nil {
		log.Fatalf("listing catalog: %v", err)
	}
	if len(records) == 0 {
		fmt.Println("catalog is empty")
		return
	}
	for _, rec := range records {
		fmt.Printf("%s  %s\n", rec.LoadedAt.Format("2006-01-02 15:04:05"), rec.String())
	}
}
