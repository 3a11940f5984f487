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

package api

import (
	"log/slog"
	"net/http"
	"sync"

	"github.com/zintix-labs/betlab"
	v1 "github.com/zintix-labs/betlab/server/api/v1"
	"github.com/zintix-labs/betlab/server/httperr"
	"github.com/zintix-labs/betlab/server/netsvr"
	"github.com/zintix-labs/betlab/server/netsvr/middleware"
	"github.com/zintix-labs/betlab/server/svrcfg"
	"github.com/zintix-labs/betlab/submit"
)

var statusOnce sync.Once

// RegisterRoutes 註冊
func RegisterRoutes(svr netsvr.NetSvr, sCfg *svrcfg.SvrCfg, rt *betlab.SheetRuntime) error {
	registerStatus()                                       // 1. 錯誤狀態碼
	registerMiddleware(svr, sCfg.Log, sCfg.AllowedOrigins) // 2. 註冊 middleware
	return registerV1API(svr, sCfg, rt)                    // 3. 註冊 v1 api
}

// 特定錯誤不走等級映射
func registerStatus() {
	statusOnce.Do(func() {
		httperr.Register(betlab.ErrSubmitting, http.StatusConflict)
		httperr.Register(betlab.ErrUnknownDraw, http.StatusNotFound)
		httperr.Register(submit.ErrRejected, http.StatusUnprocessableEntity)
		httperr.Register(submit.ErrBackend, http.StatusBadGateway)
	})
}

// 註冊 middleware
func registerMiddleware(svr netsvr.NetSvr, log *slog.Logger, origins []string) {
	svr.Use(middleware.RequestID)
	svr.Use(middleware.AccessLog(log))
	svr.Use(middleware.Recover(log))
	svr.Use(middleware.CORS(origins))
	svr.Use(middleware.Compression)
}

// 註冊 v1 api
func registerV1API(svr netsvr.NetSvr, sCfg *svrcfg.SvrCfg, rt *betlab.SheetRuntime) error {
	h, err := v1.NewHandler(sCfg, rt)
	if err != nil {
		return err
	}
	svr.Group("/v1", func(vOne netsvr.NetRouter) {
		vOne.Get("/draws", h.Draws)
		vOne.Get("/draws/{code}", h.Draw)

		vOne.Post("/expand", h.Expand)
		vOne.Post("/paste", h.Paste)
		vOne.Post("/match", h.Match)
		vOne.Post("/sales", h.Sales)

		vOne.Get("/sheets/{agent}", h.Sheet)
		vOne.Post("/sheets/{agent}", h.AddToSheet)
		vOne.Delete("/sheets/{agent}", h.DeleteFromSheet)
		vOne.Post("/sheets/{agent}/submit", h.Submit)
	})
	return nil
}
