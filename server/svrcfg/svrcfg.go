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

package svrcfg

import (
	"log/slog"
	"strings"
	"time"

	"github.com/zintix-labs/betlab"
	"github.com/zintix-labs/betlab/errs"
	"github.com/zintix-labs/betlab/server/logger"
	"github.com/zintix-labs/betlab/submit"
)

const (
	defaultAddr          = ":5808"
	defaultSubmitTimeout = 15 * time.Second
)

type SvrCfg struct {
	Log    *slog.Logger
	Addr   string
	Betlab *betlab.Betlab

	// 送單後端；Submitter 未注入時依 SubmitURL 建立 submit.Client
	SubmitURL     string
	SubmitTimeout time.Duration
	Submitter     submit.Submitter

	// 允許跨域的來源（瀏覽器終端）；空白表示不啟用 CORS
	AllowedOrigins []string
}

func (sc *SvrCfg) Vaild() error {
	if sc.Log != nil {
		if ah, ok := sc.Log.Handler().(*logger.AsyncHandler); ok && !ah.Ready() {
			return errs.NewFatal("nil default log handler: async handler is nil")
		}
	} else {
		// 保持安靜、合法
		sc.Log, _ = logger.NewAsync(1024, logger.ModeDev)
	}
	if sc.Betlab == nil {
		return errs.NewFatal("betlab is required")
	}
	if strings.TrimSpace(sc.Addr) == "" {
		sc.Addr = defaultAddr
	}
	// 1s <= SubmitTimeout <= 60s
	if sc.SubmitTimeout <= 0 {
		sc.SubmitTimeout = defaultSubmitTimeout
	}
	sc.SubmitTimeout = min(max(time.Second, sc.SubmitTimeout), time.Minute)

	if sc.Submitter == nil && strings.TrimSpace(sc.SubmitURL) != "" {
		sc.Submitter = submit.NewClient(sc.SubmitURL, sc.SubmitTimeout)
	}
	if sc.Submitter == nil {
		sc.Log.Warn("[betlab] submit backend not configured; sheets can be edited but not submitted")
	}
	return nil
}
