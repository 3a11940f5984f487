package main

import (
	"log"
	"os"
	"path/filepath"
	"runtime"
	"runtime/pprof"
)

const pprofDir = "build/profiling"

// runProfiled 依 mode 包一層 pprof；空字串或未知值直接執行。
//
//	go run ./cmd/run -p cpu -worker 4 a.txt b.txt
func runProfiled(exe func(), mode string) {
	switch mode {
	case "cpu":
		f := create("cpu.pprof")
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			log.Fatal("failed to start pprof : " + err.Error())
		}
		defer pprof.StopCPUProfile()
		exe()
	case "heap", "allocs":
		exe()
		if mode == "heap" {
			runtime.GC() // live objects only
		}
		f := create(mode + ".pprof")
		defer f.Close()
		if err := pprof.Lookup(mode).WriteTo(f, 0); err != nil {
			log.Fatal("failed to write " + mode + " profile : " + err.Error())
		}
	default:
		exe()
	}
}

func create(name string) *os.File {
	_ = os.MkdirAll(pprofDir, 0o755)
	f, err := os.Create(filepath.Join(pprofDir, name))
	if err != nil {
		log.Fatal("failed to create " + name + " : " + err.Error())
	}
	return f
}
