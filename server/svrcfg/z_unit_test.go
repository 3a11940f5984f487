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

package svrcfg_test

import (
	"testing"
	"time"

	"github.com/zintix-labs/betlab"
	"github.com/zintix-labs/betlab/configs"
	"github.com/zintix-labs/betlab/server/logger"
	"github.com/zintix-labs/betlab/server/svrcfg"
	"github.com/zintix-labs/betlab/submit"
)

func TestVaildDefaults(t *testing.T) {
	lab, err := betlab.NewAuto(betlab.Configs(configs.FS))
	if err != nil {
		t.Fatalf("NewAuto: %v", err)
	}
	sc := &svrcfg.SvrCfg{
		Log:           logger.NewDefaultLogger(logger.ModeSilence),
		Betlab:        lab,
		SubmitURL:     "http://backend.local/bills",
		SubmitTimeout: time.Hour,
	}
	if err := sc.Vaild(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sc.Addr != ":5808" || sc.SubmitTimeout != time.Minute {
		t.Fatalf("defaults not applied: %+v", sc)
	}
	c, ok := sc.Submitter.(*submit.Client)
	if !ok || c.Endpoint() != "http://backend.local/bills" {
		t.Fatalf("submitter not built from url: %#v", sc.Submitter)
	}
}

func TestVaildRequiresBetlab(t *testing.T) {
	sc := &svrcfg.SvrCfg{Log: logger.NewDefaultLogger(logger.ModeSilence)}
	if err := sc.Vaild(); err == nil {
		t.Fatalf("expected error without betlab")
	}
}
