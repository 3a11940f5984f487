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

package server

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/zintix-labs/betlab"
	"github.com/zintix-labs/betlab/errs"
	"github.com/zintix-labs/betlab/server/api"
	"github.com/zintix-labs/betlab/server/app"
	"github.com/zintix-labs/betlab/server/netsvr"
	"github.com/zintix-labs/betlab/server/svrcfg"
)

// Run 是 server 套件的「組裝器（assembler）」與「啟動入口（runtime entry）」。
//
// 它負責：
//  1. 驗證輸入的 SvrCfg（包含必要依賴，例如 logger、Betlab）。
//  2. 建立 HTTP server（netsvr）與 SheetRuntime。
//  3. 註冊路由與 middleware（api.RegisterRoutes）。
//  4. 啟動 app.Run() 並回傳停止原因。
//
// 注意：Run 不綁定任何「檔案路徑」或「環境變數」策略；所有依賴都應透過 SvrCfg 明確注入。
func Run(sCfg *svrcfg.SvrCfg) {
	if err := sCfg.Vaild(); err != nil {
		// 防止外層傳入的logger不可用
		fmt.Fprintln(os.Stderr, err)
		return
	}
	svr := netsvr.NewChiServer(sCfg.Addr)
	runWith(sCfg, svr, "http://localhost"+svr.Address())
}

// RunWithSvr 與 Run() 相同，差別在於允許呼叫端注入自訂的 NetSvr
// （例如自己包裝的 adapter、listener 或 TLS 設定）。
//
// svr 必須非 nil；若是 ChiAdapter 會要求 Ready() 為 true。
func RunWithSvr(sCfg *svrcfg.SvrCfg, svr netsvr.NetSvr) {
	if err := sCfg.Vaild(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return
	}
	if svr == nil {
		sCfg.Log.Error(errs.NewFatal("svr is required").Error())
		return
	}
	if s, ok := svr.(*netsvr.ChiAdapter); ok && !s.Ready() {
		sCfg.Log.Error(errs.NewFatal("default server is not ready").Error())
		return
	}
	runWith(sCfg, svr, svr.Address())
}

func runWith(sCfg *svrcfg.SvrCfg, svr netsvr.NetSvr, addr string) {
	rt, err := sCfg.Betlab.BuildRuntime(sCfg.Submitter)
	if err != nil {
		sCfg.Log.Error("[betlab] build runtime", slog.Any("err", err))
		return
	}
	// 註冊 Api
	if err := api.RegisterRoutes(svr, sCfg, rt); err != nil {
		sCfg.Log.Error("[betlab] register routes", slog.Any("err", err))
		return
	}

	// 運行：runtime 先註冊、最後關閉
	a := app.NewWith(&runtimeComponent{rt: rt}, svr).WithLogger(sCfg.Log)
	sCfg.Log.Info("[betlab] listening on " + addr)
	if err := a.Run(); err != nil {
		sCfg.Log.Error("app stopped:", slog.Any("err", err))
	}
}

// runtimeComponent 讓 SheetRuntime 跟著 app 一起關閉
type runtimeComponent struct {
	rt *betlab.SheetRuntime
}

func (c *runtimeComponent) Run() error {
	<-c.rt.Done()
	return nil
}

func (c *runtimeComponent) Shutdown(ctx context.Context) error {
	c.rt.Close()
	return nil
}
