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

// Package betlab 是投注終端引擎的組裝入口（assembler）與執行入口（runtime entry）。
//
// Betlab 把開獎目錄（Catalog）與設定來源（fs.FS）組在一起，對外提供：
//   - Expand / Paste：把一次選擇或一段貼上文字轉成投注清單。
//   - Match：依開獎結果比對投注並計算派彩。
//   - Sales / Batch：銷售彙總與批次解析。
//   - BuildRuntime：建立以代理為單位、持有投注清單並負責送單的 SheetRuntime。
//
// 使用流程分成兩階段：
//   - 註冊/組裝階段：建立 catalog、註冊開獎設定、檢查重複。
//   - 執行階段：Freeze 之後才能查詢設定與建立 runtime。
//
//	lab, _ := betlab.NewAuto(betlab.Configs(configs.FS))
//	entries, _ := lab.Expand("LSK3", sel)
package betlab

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
	"sync"

	"github.com/zintix-labs/betlab/bet"
	"github.com/zintix-labs/betlab/catalog"
	"github.com/zintix-labs/betlab/errs"
	"github.com/zintix-labs/betlab/paste"
	"github.com/zintix-labs/betlab/report"
	"github.com/zintix-labs/betlab/result"
	"github.com/zintix-labs/betlab/spec"
)

var (
	ErrNotFrozen   = errs.NewFatal("catalog is not frozen yet")
	ErrUnknownDraw = errs.NewWarn("draw code not found")
)

// Configs 把一或多個設定來源（go:embed / os.DirFS）打包成 New() 需要的參數。
func Configs(cfgs ...fs.FS) []fs.FS {
	return cfgs
}

// Betlab 持有開獎目錄與已解析的開獎設定。
//
// 設定在 Freeze 後不再變動，因此解析結果可以安全快取並跨 goroutine 共用。
type Betlab struct {
	cat *catalog.Catalog
	sum []catalog.Summary

	mu       sync.RWMutex
	settings map[string]*spec.DrawSetting // draw code -> setting
}

// New 建立 Betlab（註冊/組裝階段）；cfgs 至少一個。
func New(cfgs []fs.FS) (*Betlab, error) {
	if len(cfgs) == 0 {
		return nil, errs.NewFatal("configs required")
	}
	cata, err := catalog.New(cfgs...)
	if err != nil {
		return nil, err
	}
	return &Betlab{
		cat:      cata,
		settings: make(map[string]*spec.DrawSetting, 8),
	}, nil
}

// NewAuto 建立 Betlab，註冊所有設定檔並直接進入執行階段。
func NewAuto(cfgs []fs.FS) (*Betlab, error) {
	lab, err := New(cfgs)
	if err != nil {
		return nil, err
	}
	if err := lab.RegisterAll(); err != nil {
		return nil, err
	}
	lab.Freeze()
	return lab, nil
}

func (b *Betlab) Register(ents ...catalog.Entry) error {
	return b.cat.Register(ents...)
}

// RegisterAll 掃描所有設定來源，把 .yaml/.yml/.json 解析成 DrawSetting 後一次性註冊。
//
//  1. Fail-fast：任何檔案讀取或解析失敗都立刻回傳 error。
//  2. 原子性：全部檔案都通過檢查才呼叫 Register，catalog 不會停在半完成狀態。
//  3. 穩定性：依檔名排序處理。
func (b *Betlab) RegisterAll() error {
	cfgs := b.cat.Cfg()
	if len(cfgs.Sources()) == 0 {
		return errs.NewFatal("configs required")
	}

	entries := make([]catalog.Entry, 0, 16)
	parsed := make(map[string]*spec.DrawSetting, 16)
	seenCode := map[string]string{}
	seenName := map[string]string{}

	for _, base := range cfgs.Names() {
		src, ok := cfgs.GetFS(base)
		if !ok {
			return errs.NewFatal(fmt.Sprintf("config source missing: %s", base))
		}
		raw, err := fs.ReadFile(src, base)
		if err != nil {
			return errs.WrapWithExtra(err, "read config failed", base)
		}
		ds, err := catalog.ParseByExt(base, raw)
		if err != nil {
			return errs.WrapWithExtra(err, "parse draw setting failed", base)
		}

		if prev, ok := seenCode[ds.DrawCode]; ok {
			return errs.NewFatal(fmt.Sprintf("duplicate draw code: %s (config=%s and %s)", ds.DrawCode, prev, base))
		}
		if _, ok := b.cat.GetByCode(ds.DrawCode); ok {
			return errs.NewFatal(fmt.Sprintf("draw code already registered: %s (config=%s)", ds.DrawCode, base))
		}
		if prev, ok := seenName[ds.DrawName]; ok {
			return errs.NewFatal(fmt.Sprintf("duplicate draw name: %s (config=%s and %s)", ds.DrawName, prev, base))
		}
		if _, ok := b.cat.GetByName(ds.DrawName); ok {
			return errs.NewFatal(fmt.Sprintf("draw name already registered: %s (config=%s)", ds.DrawName, base))
		}
		seenCode[ds.DrawCode] = base
		seenName[ds.DrawName] = base
		parsed[ds.DrawCode] = ds

		entries = append(entries, catalog.Entry{
			Code:       ds.DrawCode,
			Name:       ds.DrawName,
			ConfigName: filepath.Base(base),
		})
	}

	if len(entries) == 0 {
		return errs.NewFatal("no config files found to register")
	}
	if err := b.cat.Register(entries...); err != nil {
		return err
	}

	b.mu.Lock()
	for code, ds := range parsed {
		b.settings[code] = ds
	}
	b.mu.Unlock()
	return nil
}

func (b *Betlab) Freeze() {
	b.cat.Freeze()
}

func (b *Betlab) EntryByCode(code string) (catalog.Entry, bool) {
	return b.cat.GetByCode(code)
}

func (b *Betlab) EntryByName(name string) (catalog.Entry, bool) {
	return b.cat.GetByName(name)
}

func (b *Betlab) Codes() []string {
	return b.cat.Codes()
}

func (b *Betlab) All() []catalog.Entry {
	return b.cat.All()
}

// DrawSetting 回傳開獎設定；未知代碼回傳 Warn。
func (b *Betlab) DrawSetting(code string) (*spec.DrawSetting, error) {
	if !b.cat.IsFrozen() {
		return nil, ErrNotFrozen
	}
	code = strings.TrimSpace(code)
	b.mu.RLock()
	ds, ok := b.settings[code]
	b.mu.RUnlock()
	if ok {
		return ds, nil
	}
	if _, ok := b.cat.GetByCode(code); !ok {
		return nil, errs.With(ErrUnknownDraw, "draw_code="+code)
	}
	ds, err := b.cat.DrawSettingByCode(code)
	if err != nil {
		return nil, err
	}
	b.mu.Lock()
	b.settings[code] = ds
	b.mu.Unlock()
	return ds, nil
}

func (b *Betlab) Summary() ([]catalog.Summary, error) {
	if !b.cat.IsFrozen() {
		return nil, ErrNotFrozen
	}
	b.mu.RLock()
	sum := b.sum
	b.mu.RUnlock()
	if sum != nil {
		return sum, nil
	}
	codes := b.cat.Codes()
	cs := make([]catalog.Summary, 0, len(codes))
	for _, code := range codes {
		ds, err := b.DrawSetting(code)
		if err != nil {
			return nil, err
		}
		cs = append(cs, catalog.Summary{
			Code:  ds.DrawCode,
			Name:  ds.DrawName,
			Times: append([]spec.TimeSlot(nil), ds.Times...),
		})
	}
	b.mu.Lock()
	b.sum = cs
	b.mu.Unlock()
	return cs, nil
}

// Expand 展開一次選擇；放棄時回傳原因（Warn），不會回傳部分結果。
func (b *Betlab) Expand(code string, sel bet.Selection) ([]bet.Entry, error) {
	ds, err := b.DrawSetting(code)
	if err != nil {
		return nil, err
	}
	return bet.Plan(ds.DrawCode, sel)
}

// Paste 解析貼上文字；無法辨識的行直接略過。
func (b *Betlab) Paste(code string, text string) ([]bet.Entry, error) {
	ds, err := b.DrawSetting(code)
	if err != nil {
		return nil, err
	}
	return paste.Parse(ds.DrawCode, text), nil
}

// PasteLines 同 Paste，但保留逐行結果
func (b *Betlab) PasteLines(code string, text string) ([]paste.LineResult, error) {
	ds, err := b.DrawSetting(code)
	if err != nil {
		return nil, err
	}
	return paste.ParseLines(ds.DrawCode, text), nil
}

// Match 以開獎設定的派彩方案比對投注
func (b *Betlab) Match(code string, entries []bet.Entry, r result.Result) ([]result.MatchedEntry, error) {
	ds, err := b.DrawSetting(code)
	if err != nil {
		return nil, err
	}
	if err := r.Validate(); err != nil {
		return nil, err
	}
	return result.MatchWinningEntries(entries, ds.DrawCode, r, result.Schemes(ds.Schemes)), nil
}

// Sales 彙總投注金額
func (b *Betlab) Sales(code string, entries []bet.Entry) (*report.SalesReport, error) {
	ds, err := b.DrawSetting(code)
	if err != nil {
		return nil, err
	}
	return report.Sales(ds, entries), nil
}
