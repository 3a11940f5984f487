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

package dto

import (
	"github.com/zintix-labs/betlab/bet"
	"github.com/zintix-labs/betlab/paste"
	"github.com/zintix-labs/betlab/report"
	"github.com/zintix-labs/betlab/result"
	"github.com/zintix-labs/betlab/spec"
)

// SubmitPayload 是送往後端下單端點的 JSON body。
//
// 欄位名稱由後端決定，不可更動；後端回應的內容與語意（限額、單號）不在此處理。
type SubmitPayload struct {
	Entries       []bet.Entry `json:"entries"`
	SelectedAgent string      `json:"selectedAgent"`
	CreatedBy     string      `json:"createdBy"`
	TimeLabel     string      `json:"timeLabel"`
	TimeCode      string      `json:"timeCode"`
	ToggleCount   int         `json:"toggleCount"`
}

// NewSubmitPayload 組出送單內容；entries 為 nil 時輸出空陣列而不是 null。
func NewSubmitPayload(entries []bet.Entry, agent, createdBy string, slot spec.TimeSlot, toggle int) SubmitPayload {
	if entries == nil {
		entries = []bet.Entry{}
	}
	return SubmitPayload{
		Entries:       entries,
		SelectedAgent: agent,
		CreatedBy:     createdBy,
		TimeLabel:     slot.Label,
		TimeCode:      slot.Code,
		ToggleCount:   toggle,
	}
}

// ExpandResult 是展開（或貼上解析）的回應
type ExpandResult struct {
	DrawCode string      `json:"draw_code"`
	Entries  []bet.Entry `json:"entries"`
	Count    int         `json:"count"` // 總注數
	Focus    bet.Focus   `json:"focus,omitempty"`
}

func NewExpandResult(drawCode string, entries []bet.Entry, focus bet.Focus) ExpandResult {
	if entries == nil {
		entries = []bet.Entry{}
	}
	total := 0
	for _, e := range entries {
		total += e.Count
	}
	return ExpandResult{DrawCode: drawCode, Entries: entries, Count: total, Focus: focus}
}

// SheetView 是某位代理目前的投注清單
type SheetView struct {
	Agent   string      `json:"agent"`
	Entries []bet.Entry `json:"entries"`
	Count   int         `json:"count"`
	Rows    int         `json:"rows"`
}

// MatchResult 是比對開獎結果的回應
type MatchResult struct {
	Matched []result.MatchedEntry `json:"matched"`
	Report  *report.WinningReport `json:"report"`
}

// PasteResult 在 ExpandResult 之外附上逐行解析結果（detail=true 時）
type PasteResult struct {
	ExpandResult
	Lines []paste.LineResult `json:"lines,omitempty"`
}

// SheetUpdate 是新增到清單後的回應
type SheetUpdate struct {
	Added int       `json:"added"`
	Focus bet.Focus `json:"focus,omitempty"`
	Sheet SheetView `json:"sheet"`
}

// SubmitResult 包含後端原樣回傳的 body
type SubmitResult struct {
	Agent    string `json:"agent"`
	Entries  int    `json:"entries"`
	Status   int    `json:"status"`
	Response string `json:"response,omitempty"`
}
