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

package betlab

import (
	"context"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/zintix-labs/betlab/bet"
	"github.com/zintix-labs/betlab/dto"
	"github.com/zintix-labs/betlab/errs"
	"github.com/zintix-labs/betlab/spec"
	"github.com/zintix-labs/betlab/submit"
)

var (
	ErrEmptyAgent  = errs.NewWarn("agent is required")
	ErrEmptySheet  = errs.NewWarn("sheet is empty")
	ErrIndex       = errs.NewWarn("entry index out of range")
	ErrSubmitting  = errs.NewWarn("sheet is being submitted")
	ErrTimeCode    = errs.NewWarn("time code not found for draw")
	ErrNoSubmitter = errs.NewFatal("submitter not configured")
)

// SheetRuntime 以代理（agent）為單位持有投注清單，並負責送單。
//
// 送單期間該代理的清單被鎖住：Add / Paste / Delete / Clear 會回傳 ErrSubmitting。
// 送單成功後清單清空；失敗時清單維持原樣，使用者可以直接重送。
type SheetRuntime struct {
	lab *Betlab
	sub submit.Submitter

	mu     sync.Mutex
	sheets map[string]*agentSheet

	// lifecycle
	done      chan struct{}
	closeOnce sync.Once
	closed    atomic.Bool
	reason    atomic.Value // string
}

type agentSheet struct {
	sheet      *bet.Sheet
	submitting bool
}

// BuildRuntime 建立 SheetRuntime；sub 為 nil 時仍可編輯清單，但 Submit 會失敗。
func (b *Betlab) BuildRuntime(sub submit.Submitter) (*SheetRuntime, error) {
	// 進入 runtime 前，catalog 必須 Freeze
	b.Freeze()
	if len(b.cat.Codes()) == 0 {
		return nil, errs.NewFatal("no draws registered")
	}
	rt := &SheetRuntime{
		lab:    b,
		sub:    sub,
		sheets: make(map[string]*agentSheet, 16),
		done:   make(chan struct{}),
	}
	rt.reason.Store("")
	return rt, nil
}

func (rt *SheetRuntime) Lab() *Betlab {
	return rt.lab
}

// Add 展開一次選擇並前插到代理的清單，回傳新增筆數與下一個輸入焦點。
//
// 放棄展開時清單不變，回傳原因。
func (rt *SheetRuntime) Add(agent, code string, sel bet.Selection) (int, bet.Focus, error) {
	if err := rt.alive(); err != nil {
		return 0, "", err
	}
	entries, err := rt.lab.Expand(code, sel)
	if err != nil {
		return 0, "", err
	}
	n, err := rt.prepend(agent, entries)
	if err != nil {
		return 0, "", err
	}
	return n, bet.FocusFor(sel), nil
}

// Paste 解析整段文字並前插，回傳新增筆數
func (rt *SheetRuntime) Paste(agent, code, text string) (int, error) {
	if err := rt.alive(); err != nil {
		return 0, err
	}
	entries, err := rt.lab.Paste(code, text)
	if err != nil {
		return 0, err
	}
	return rt.prepend(agent, entries)
}

func (rt *SheetRuntime) prepend(agent string, entries []bet.Entry) (int, error) {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	as, err := rt.editable(agent)
	if err != nil {
		return 0, err
	}
	return as.sheet.Prepend(entries), nil
}

// Delete 刪除第 i 筆（0 為最新）
func (rt *SheetRuntime) Delete(agent string, i int) error {
	if err := rt.alive(); err != nil {
		return err
	}
	rt.mu.Lock()
	defer rt.mu.Unlock()
	as, err := rt.editable(agent)
	if err != nil {
		return err
	}
	if !as.sheet.Delete(i) {
		return ErrIndex
	}
	return nil
}

// Clear 清空代理的清單
func (rt *SheetRuntime) Clear(agent string) error {
	if err := rt.alive(); err != nil {
		return err
	}
	rt.mu.Lock()
	defer rt.mu.Unlock()
	as, err := rt.editable(agent)
	if err != nil {
		return err
	}
	as.sheet.Clear()
	return nil
}

// Entries 回傳清單副本；未知代理回傳空清單。
func (rt *SheetRuntime) Entries(agent string) []bet.Entry {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	if as, ok := rt.sheets[key(agent)]; ok {
		return as.sheet.Entries()
	}
	return []bet.Entry{}
}

// View 回傳清單與總計
func (rt *SheetRuntime) View(agent string) dto.SheetView {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	v := dto.SheetView{Agent: key(agent), Entries: []bet.Entry{}}
	if as, ok := rt.sheets[v.Agent]; ok {
		v.Entries = as.sheet.Entries()
		v.Count, v.Rows = as.sheet.Totals()
	}
	return v
}

// SubmitOptions 送單時由操作員提供的欄位
type SubmitOptions struct {
	DrawCode    string
	CreatedBy   string
	TimeCode    string
	ToggleCount int
}

// Submit 把代理清單中屬於 opt.DrawCode 的投注送到後端，回傳後端回應與送出筆數。
//
// 清單可以混有多個開獎的投注；只有該開獎的部分會以該開獎的時段送出。
// 成功時只移除已送出的投注；任何失敗（含 context 取消）清單都維持原樣。
func (rt *SheetRuntime) Submit(ctx context.Context, agent string, opt SubmitOptions) (*submit.Response, int, error) {
	select {
	case <-ctx.Done():
		return nil, 0, ctx.Err()
	default:
	}
	if err := rt.alive(); err != nil {
		return nil, 0, err
	}
	if rt.sub == nil {
		return nil, 0, ErrNoSubmitter
	}
	ds, err := rt.lab.DrawSetting(opt.DrawCode)
	if err != nil {
		return nil, 0, err
	}
	slot, ok := ds.TimeByCode(strings.TrimSpace(opt.TimeCode))
	if !ok {
		return nil, 0, errs.With(ErrTimeCode, "time_code="+opt.TimeCode)
	}
	ofDraw := func(e bet.Entry) bool {
		_, ok := spec.ClassOf(ds.DrawCode, e.Type)
		return ok
	}

	rt.mu.Lock()
	as, err := rt.editable(agent)
	if err != nil {
		rt.mu.Unlock()
		return nil, 0, err
	}
	entries := make([]bet.Entry, 0, as.sheet.Len())
	for _, e := range as.sheet.Entries() {
		if ofDraw(e) {
			entries = append(entries, e)
		}
	}
	if len(entries) == 0 {
		rt.mu.Unlock()
		return nil, 0, errs.With(ErrEmptySheet, "draw_code="+ds.DrawCode)
	}
	as.submitting = true
	rt.mu.Unlock()

	payload := dto.NewSubmitPayload(entries, key(agent), opt.CreatedBy, slot, opt.ToggleCount)
	resp, err := rt.sub.Submit(ctx, payload)

	rt.mu.Lock()
	as.submitting = false
	if err == nil {
		// 送單期間清單被鎖住，因此移除的正是剛送出的那批
		as.sheet.Keep(func(e bet.Entry) bool { return !ofDraw(e) })
	}
	rt.mu.Unlock()
	if err != nil {
		return resp, 0, err
	}
	return resp, len(entries), nil
}

// editable 取得（或建立）可編輯的清單；呼叫端需持有 rt.mu。
func (rt *SheetRuntime) editable(agent string) (*agentSheet, error) {
	k := key(agent)
	if k == "" {
		return nil, ErrEmptyAgent
	}
	as, ok := rt.sheets[k]
	if !ok {
		as = &agentSheet{sheet: bet.NewSheet()}
		rt.sheets[k] = as
	}
	if as.submitting {
		return nil, ErrSubmitting
	}
	return as, nil
}

func key(agent string) string {
	return strings.TrimSpace(agent)
}

func (rt *SheetRuntime) alive() error {
	select {
	case <-rt.done:
		// done is the source of truth; keep a fast boolean for cheap reads.
		rt.closed.Store(true)
		return errs.NewFatal("sheet runtime closed: " + rt.ClosedReason())
	default:
		return nil
	}
}

// Close transitions the runtime into a closed state. It is safe to call multiple times.
func (rt *SheetRuntime) Close() {
	rt.closeWithReason("closed")
}

// closeWithReason closes the runtime and records the reason (written once).
func (rt *SheetRuntime) closeWithReason(reason string) {
	rt.closeOnce.Do(func() {
		if reason == "" {
			reason = "closed"
		}
		rt.reason.Store(reason)
		rt.closed.Store(true)
		close(rt.done)
	})
}

// Done is closed once the runtime is closed.
func (rt *SheetRuntime) Done() <-chan struct{} {
	return rt.done
}

// Closed reports whether the runtime has been closed.
func (rt *SheetRuntime) Closed() bool {
	return rt.closed.Load()
}

func (rt *SheetRuntime) ClosedReason() string {
	if v := rt.reason.Load(); v != nil {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}
