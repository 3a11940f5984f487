// Copyright 2025 Zintix Labs
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"flag"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/zintix-labs/betlab"
	"github.com/zintix-labs/betlab/configs"
	"github.com/zintix-labs/betlab/server"
	"github.com/zintix-labs/betlab/server/logger"
	"github.com/zintix-labs/betlab/server/svrcfg"
)

// Terminal server entrypoint. Draw settings default to the embedded configs;
// -configs points at a directory that replaces them.
func main() {
	cfg, err := loadConfigFromFlags()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	server.Run(cfg)
}

type config struct {
	Addr      string
	LogMode   string
	Configs   string
	SubmitURL string
	Timeout   time.Duration
	Origins   string
}

func loadConfigFromFlags() (*svrcfg.SvrCfg, error) {
	cfg := new(config)
	flag.StringVar(&cfg.Addr, "addr", ":5808", "listen address")
	flag.StringVar(&cfg.LogMode, "log-mode", "dev", "log mode: dev|prod|silence")
	flag.StringVar(&cfg.Configs, "configs", "", "draw config directory (default: embedded)")
	flag.StringVar(&cfg.SubmitURL, "submit-url", os.Getenv("BETLAB_SUBMIT_URL"), "order backend endpoint")
	flag.DurationVar(&cfg.Timeout, "submit-timeout", 15*time.Second, "order backend timeout")
	flag.StringVar(&cfg.Origins, "origins", "", "comma separated CORS origins")

	flag.Parse()

	mode, ok := logger.ParseMode(cfg.LogMode)
	if !ok {
		mode = logger.ModeDev
	}
	log, _ := logger.NewAsync(4096, mode)

	var src fs.FS = configs.FS
	if cfg.Configs != "" {
		src = os.DirFS(cfg.Configs)
	}
	lab, err := betlab.NewAuto(betlab.Configs(src))
	if err != nil {
		return nil, err
	}
	return &svrcfg.SvrCfg{
		Log:            log,
		Addr:           cfg.Addr,
		Betlab:         lab,
		SubmitURL:      cfg.SubmitURL,
		SubmitTimeout:  cfg.Timeout,
		AllowedOrigins: splitList(cfg.Origins),
	}, nil
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
