package main

import (
	"flag"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/zintix-labs/betlab"
	"github.com/zintix-labs/betlab/configs"
	"github.com/zintix-labs/betlab/report"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var cfg *config = new(config)

type config struct {
	draw      string
	configs   string
	files     []string
	worker    int
	showpb    bool
	format    string
	pprofmode string
}

type listFlag struct{ p *[]string }

func (f listFlag) String() string {
	if f.p == nil {
		return ""
	}
	return strings.Join(*f.p, ",")
}

func (f listFlag) Set(s string) error {
	for _, v := range strings.Split(s, ",") {
		if v = strings.TrimSpace(v); v != "" {
			*f.p = append(*f.p, v)
		}
	}
	return nil
}

func bindVar() {
	flag.StringVar(&cfg.draw, "draw", "LSK3", "draw code")
	flag.StringVar(&cfg.configs, "configs", "", "draw config directory (default: embedded)")
	flag.Var(listFlag{&cfg.files}, "files", "comma separated paste files (positional args are appended)")
	flag.IntVar(&cfg.worker, "worker", 1, "number of workers")
	flag.BoolVar(&cfg.showpb, "pb", true, "show progress bar")
	flag.StringVar(&cfg.format, "format", "table", "output: table|json|yaml")
	flag.StringVar(&cfg.pprofmode, "p", "", "pprof: '', cpu, heap, allocs")

	flag.Parse()
	cfg.files = append(cfg.files, flag.Args()...)
}

// 解析所有貼上檔案並輸出合併的銷售報表
func executeBatch() {
	cfg.valid()

	var src fs.FS = configs.FS
	if cfg.configs != "" {
		src = os.DirFS(cfg.configs)
	}
	lab, err := betlab.NewAuto(betlab.Configs(src))
	if err != nil {
		log.Fatal(err)
	}
	docs, err := readDocs(cfg.files)
	if err != nil {
		log.Fatal(err)
	}

	green := "\033[1;32m"
	reset := "\033[0m"
	p := message.NewPrinter(language.English)
	if cfg.format == "table" {
		p.Printf("%s[DRAW:%s] [WORKERS:%d] [FILES:%d]%s\n", green, cfg.draw, cfg.worker, len(docs), reset)
	}

	res, err := lab.Batch(cfg.draw, docs, cfg.worker, cfg.showpb && cfg.format == "table")
	if err != nil {
		log.Fatal(err)
	}

	if cfg.format != "table" {
		if err := res.Sales.WriteWith(os.Stdout, report.RenderByName(cfg.format)); err != nil {
			log.Fatal(err)
		}
		return
	}
	for _, d := range res.Docs {
		p.Printf("%-24s lines:%6d  unmatched:%6d  entries:%8d\n", d.Name, d.Lines, d.Unmatched, d.Entries)
	}
	res.Sales.StdOut()
	p.Printf("used: %v\n", res.Used)
}

func readDocs(paths []string) ([]betlab.Doc, error) {
	docs := make([]betlab.Doc, 0, len(paths))
	for _, path := range paths {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		docs = append(docs, betlab.Doc{Name: filepath.Base(path), Text: string(b)})
	}
	return docs, nil
}

func (cfg *config) valid() {
	if cfg.worker < 1 {
		log.Fatal("value err : workers must > 0")
	}
	if len(cfg.files) == 0 {
		log.Fatal("value err : at least one paste file is required")
	}
	cfg.format = strings.ToLower(strings.TrimSpace(cfg.format))
	if cfg.format != "table" && report.RenderByName(cfg.format) == nil {
		log.Fatalf("value err : unknown format %q", cfg.format)
	}
	if strings.TrimSpace(cfg.draw) == "" {
		log.Fatal("value err : draw code is required")
	}
}
