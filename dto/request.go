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
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/zintix-labs/betlab/bet"
	"github.com/zintix-labs/betlab/errs"
	"github.com/zintix-labs/betlab/result"
	"github.com/zintix-labs/betlab/spec"
)

// 防止 body 過大（1MiB）
const maxBody = 1 << 20

var (
	ErrNilRequest = errs.NewWarn("nil request")
	ErrMethod     = errs.NewWarn("method not allowed")
	ErrBadJSON    = errs.NewWarn("invalid json")
	ErrMode       = errs.NewWarn("unknown mode")
	ErrClass      = errs.NewWarn("unknown bet class")
	ErrNoInput    = errs.NewWarn("selection or text is required")
)

// SelectionRequest 對應一次按鍵的輸入；數值欄位維持字串，解析交給 bet.Plan。
type SelectionRequest struct {
	Width      int    `json:"width"`
	Mode       string `json:"mode,omitempty"` // single / range / hundred / tripleOne
	Set        bool   `json:"set,omitempty"`  // 排列（set mode）
	Class      string `json:"class"`          // SUPER / BOX / AB / ... / ALL
	Number     string `json:"number,omitempty"`
	Count      string `json:"count,omitempty"`
	BoxCount   string `json:"box_count,omitempty"`
	RangeStart string `json:"range_start,omitempty"`
	RangeEnd   string `json:"range_end,omitempty"`
	RangeCount string `json:"range_count,omitempty"`
}

// Selection 轉成 bet.Selection；只檢查模式與類別名稱，其餘規則由 bet 判斷。
func (sr *SelectionRequest) Selection() (bet.Selection, error) {
	mode, ok := bet.ParseMode(sr.Mode)
	if !ok {
		return bet.Selection{}, errs.With(ErrMode, "mode="+sr.Mode)
	}
	class, ok := spec.ParseClass(sr.Class)
	if !ok {
		return bet.Selection{}, errs.With(ErrClass, "class="+sr.Class)
	}
	return bet.Selection{
		DigitWidth: sr.Width,
		Mode:       mode,
		Permute:    sr.Set,
		Class:      class,
		Number:     sr.Number,
		Count:      sr.Count,
		BoxCount:   sr.BoxCount,
		RangeStart: sr.RangeStart,
		RangeEnd:   sr.RangeEnd,
		RangeCount: sr.RangeCount,
	}, nil
}

// ExpandRequest : POST /v1/expand
type ExpandRequest struct {
	DrawCode string `json:"draw_code"`
	SelectionRequest
}

// PasteRequest : POST /v1/paste
type PasteRequest struct {
	DrawCode string `json:"draw_code"`
	Text     string `json:"text"`
	Detail   bool   `json:"detail,omitempty"` // 回傳逐行解析結果
}

// MatchRequest : POST /v1/match
type MatchRequest struct {
	DrawCode string        `json:"draw_code"`
	Entries  []bet.Entry   `json:"entries"`
	Result   result.Result `json:"result"`
}

// SalesRequest : POST /v1/sales
type SalesRequest struct {
	DrawCode string      `json:"draw_code"`
	Entries  []bet.Entry `json:"entries"`
}

// SheetRequest : POST /v1/sheets/{agent}
//
// Selection 與 Text 擇一；兩者都有時以 Selection 為準。
type SheetRequest struct {
	DrawCode  string            `json:"draw_code"`
	Selection *SelectionRequest `json:"selection,omitempty"`
	Text      string            `json:"text,omitempty"`
}

// SubmitRequest : POST /v1/sheets/{agent}/submit
type SubmitRequest struct {
	DrawCode    string `json:"draw_code"`
	CreatedBy   string `json:"created_by"`
	TimeCode    string `json:"time_code"`
	ToggleCount int    `json:"toggle_count"`
}

func DecodeExpandRequest(r *http.Request) (*ExpandRequest, error) {
	return decodePost[ExpandRequest](r)
}

func DecodePasteRequest(r *http.Request) (*PasteRequest, error) {
	return decodePost[PasteRequest](r)
}

func DecodeSalesRequest(r *http.Request) (*SalesRequest, error) {
	return decodePost[SalesRequest](r)
}

func DecodeMatchRequest(r *http.Request) (*MatchRequest, error) {
	req, err := decodePost[MatchRequest](r)
	if err != nil {
		return nil, err
	}
	if err := req.Result.Validate(); err != nil {
		return nil, err
	}
	return req, nil
}

func DecodeSheetRequest(r *http.Request) (*SheetRequest, error) {
	req, err := decodePost[SheetRequest](r)
	if err != nil {
		return nil, err
	}
	if req.Selection == nil && strings.TrimSpace(req.Text) == "" {
		return nil, ErrNoInput
	}
	return req, nil
}

func DecodeSubmitRequest(r *http.Request) (*SubmitRequest, error) {
	return decodePost[SubmitRequest](r)
}

// decodePost 解碼 JSON body。
//
// 注意：
//   - 這裡只負責解碼（decode），不檢查開獎代碼是否存在；由上層（Betlab）決定。
//   - body 上限 1MiB，並開啟 DisallowUnknownFields()，對未知欄位採用嚴格拒絕，以避免靜默丟資料。
func decodePost[T any](r *http.Request) (*T, error) {
	if r == nil {
		return nil, ErrNilRequest
	}
	if r.Method != http.MethodPost {
		return nil, errs.With(ErrMethod, r.Method)
	}
	req := new(T)
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBody))
	dec.DisallowUnknownFields()
	if err := dec.Decode(req); err != nil {
		return nil, errs.With(ErrBadJSON, err.Error())
	}
	return req, nil
}
