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

package api_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/zintix-labs/betlab"
	"github.com/zintix-labs/betlab/configs"
	"github.com/zintix-labs/betlab/dto"
	"github.com/zintix-labs/betlab/errs"
	"github.com/zintix-labs/betlab/server/api"
	"github.com/zintix-labs/betlab/server/netsvr"
	"github.com/zintix-labs/betlab/server/svrcfg"
	"github.com/zintix-labs/betlab/submit"
)

type fakeSubmitter struct {
	mu      sync.Mutex
	got     []dto.SubmitPayload
	status  int
	failure error
}

func (f *fakeSubmitter) Submit(ctx context.Context, p dto.SubmitPayload) (*submit.Response, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.got = append(f.got, p)
	if f.failure != nil {
		return &submit.Response{Status: f.status, Body: []byte(`{"ok":false}`)}, f.failure
	}
	return &submit.Response{Status: http.StatusOK, Body: []byte(`{"ok":true}`)}, nil
}

func newServer(t *testing.T, sub submit.Submitter) netsvr.NetSvr {
	t.Helper()
	lab, err := betlab.NewAuto(betlab.Configs(configs.FS))
	if err != nil {
		t.Fatalf("NewAuto: %v", err)
	}
	sCfg := &svrcfg.SvrCfg{
		Log:       slog.New(slog.NewTextHandler(io.Discard, nil)),
		Betlab:    lab,
		Submitter: sub,
	}
	if err := sCfg.Vaild(); err != nil {
		t.Fatalf("Vaild: %v", err)
	}
	rt, err := lab.BuildRuntime(sCfg.Submitter)
	if err != nil {
		t.Fatalf("BuildRuntime: %v", err)
	}
	t.Cleanup(rt.Close)
	svr := netsvr.NewChiServer(":0")
	if err := api.RegisterRoutes(svr, sCfg, rt); err != nil {
		t.Fatalf("RegisterRoutes: %v", err)
	}
	return svr
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.NewDecoder(rec.Body).Decode(&v); err != nil {
		t.Fatalf("decode %s: %v", rec.Body.String(), err)
	}
	return v
}

func TestDraws(t *testing.T) {
	svr := newServer(t, nil)
	rec := do(t, svr, http.MethodGet, "/v1/draws", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", rec.Code, rec.Body.String())
	}
	if sum := decode[[]map[string]any](t, rec); len(sum) != 4 {
		t.Fatalf("expected 4 draws, got %v", sum)
	}
	if rec := do(t, svr, http.MethodGet, "/v1/draws/LSK3", ""); rec.Code != http.StatusOK {
		t.Fatalf("draw status=%d", rec.Code)
	}
	if rec := do(t, svr, http.MethodGet, "/v1/draws/NOPE", ""); rec.Code != http.StatusNotFound {
		t.Fatalf("unknown draw status=%d", rec.Code)
	}
	if rec.Header().Get("X-Request-Id") == "" {
		t.Fatalf("missing request id header")
	}
}

func TestExpandAndPaste(t *testing.T) {
	svr := newServer(t, nil)
	rec := do(t, svr, http.MethodPost, "/v1/expand", `{"draw_code":"LSK3","width":3,"class":"ALL","number":"123","count":"5"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", rec.Code, rec.Body.String())
	}
	res := decode[dto.ExpandResult](t, rec)
	if len(res.Entries) != 2 || res.Count != 10 || res.Focus != "number" {
		t.Fatalf("unexpected expand result: %+v", res)
	}

	rec = do(t, svr, http.MethodPost, "/v1/expand", `{"draw_code":"LSK3","width":3,"class":"SUPER","number":"12","count":"5"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for short number, got %d", rec.Code)
	}

	rec = do(t, svr, http.MethodPost, "/v1/paste", `{"draw_code":"D-1-","text":"a 5 10\nhello","detail":true}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("paste status=%d body=%s", rec.Code, rec.Body.String())
	}
	pr := decode[dto.PasteResult](t, rec)
	if len(pr.Entries) != 1 || pr.Entries[0].Type != "D-1-A" || len(pr.Lines) != 2 {
		t.Fatalf("unexpected paste result: %+v", pr)
	}
}

func TestMatchAndSales(t *testing.T) {
	svr := newServer(t, nil)
	body := `{"draw_code":"LSK3","entries":[{"number":"123","count":5,"type":"LSK3SUPER"},{"number":"123","count":5,"type":"LSK3BOX"}],"result":{"prizes":["123"]}}`
	rec := do(t, svr, http.MethodPost, "/v1/match", body)
	if rec.Code != http.StatusOK {
		t.Fatalf("match status=%d body=%s", rec.Code, rec.Body.String())
	}
	mr := decode[dto.MatchResult](t, rec)
	if len(mr.Matched) != 2 || mr.Report == nil || mr.Report.TotalPrize.String() != "26250" {
		t.Fatalf("unexpected match result: %+v", mr)
	}

	rec = do(t, svr, http.MethodPost, "/v1/match", `{"draw_code":"LSK3","entries":[],"result":{"prizes":[]}}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for empty result, got %d", rec.Code)
	}

	rec = do(t, svr, http.MethodPost, "/v1/sales", `{"draw_code":"LSK3","entries":[{"number":"123","count":3,"type":"LSK3SUPER"}]}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("sales status=%d body=%s", rec.Code, rec.Body.String())
	}
	if sr := decode[map[string]any](t, rec); sr["total_amount"] != "30" {
		t.Fatalf("unexpected sales: %v", sr)
	}
}

func TestSheetFlow(t *testing.T) {
	sub := &fakeSubmitter{}
	svr := newServer(t, sub)

	rec := do(t, svr, http.MethodPost, "/v1/sheets/ag", `{"draw_code":"D-1-","text":"a 5 10\nb 6 2"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("paste status=%d body=%s", rec.Code, rec.Body.String())
	}
	up := decode[dto.SheetUpdate](t, rec)
	if up.Added != 2 || up.Sheet.Rows != 2 || up.Sheet.Count != 12 {
		t.Fatalf("unexpected update: %+v", up)
	}

	rec = do(t, svr, http.MethodPost, "/v1/sheets/ag", `{"draw_code":"D-1-","selection":{"width":1,"class":"C","number":"7","count":"1"}}`)
	if up := decode[dto.SheetUpdate](t, rec); up.Added != 1 || up.Focus != "number" || up.Sheet.Entries[0].Type != "D-1-C" {
		t.Fatalf("unexpected add: %+v", up)
	}

	if rec := do(t, svr, http.MethodDelete, "/v1/sheets/ag?index=x", ""); rec.Code != http.StatusBadRequest {
		t.Fatalf("bad index status=%d", rec.Code)
	}
	if rec := do(t, svr, http.MethodDelete, "/v1/sheets/ag?index=9", ""); rec.Code != http.StatusBadRequest {
		t.Fatalf("out of range status=%d", rec.Code)
	}
	rec = do(t, svr, http.MethodDelete, "/v1/sheets/ag?index=0", "")
	if v := decode[dto.SheetView](t, rec); v.Rows != 2 {
		t.Fatalf("expected 2 rows after delete, got %+v", v)
	}

	if rec := do(t, svr, http.MethodPost, "/v1/sheets/ag/submit", `{"draw_code":"D-1-","created_by":"op","time_code":"99"}`); rec.Code != http.StatusBadRequest {
		t.Fatalf("unknown time code status=%d", rec.Code)
	}

	rec = do(t, svr, http.MethodPost, "/v1/sheets/ag/submit", `{"draw_code":"D-1-","created_by":"op","time_code":"13","toggle_count":1}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("submit status=%d body=%s", rec.Code, rec.Body.String())
	}
	res := decode[dto.SubmitResult](t, rec)
	if res.Entries != 2 || res.Status != http.StatusOK || res.Response != `{"ok":true}` {
		t.Fatalf("unexpected submit result: %+v", res)
	}
	if len(sub.got) != 1 || sub.got[0].TimeLabel != "1 PM" || sub.got[0].SelectedAgent != "ag" || sub.got[0].CreatedBy != "op" {
		t.Fatalf("unexpected payload: %+v", sub.got)
	}
	if v := decode[dto.SheetView](t, do(t, svr, http.MethodGet, "/v1/sheets/ag", "")); v.Rows != 0 {
		t.Fatalf("sheet should be cleared after submit: %+v", v)
	}
	if rec := do(t, svr, http.MethodPost, "/v1/sheets/ag/submit", `{"draw_code":"D-1-","time_code":"13"}`); rec.Code != http.StatusBadRequest {
		t.Fatalf("empty sheet status=%d", rec.Code)
	}
}

func TestSubmitRejectedKeepsSheet(t *testing.T) {
	sub := &fakeSubmitter{status: http.StatusForbidden, failure: errs.With(submit.ErrRejected, "status=403")}
	svr := newServer(t, sub)
	do(t, svr, http.MethodPost, "/v1/sheets/ag", `{"draw_code":"LSK3","text":"123 5"}`)

	rec := do(t, svr, http.MethodPost, "/v1/sheets/ag/submit", `{"draw_code":"LSK3","time_code":"15"}`)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d body=%s", rec.Code, rec.Body.String())
	}
	if v := decode[dto.SheetView](t, do(t, svr, http.MethodGet, "/v1/sheets/ag", "")); v.Rows != 1 {
		t.Fatalf("sheet should be kept on rejection: %+v", v)
	}

	sub.failure = errs.With(submit.ErrBackend, "status=503")
	if rec := do(t, svr, http.MethodPost, "/v1/sheets/ag/submit", `{"draw_code":"LSK3","time_code":"15"}`); rec.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", rec.Code)
	}
}

func TestSubmitWithoutBackend(t *testing.T) {
	svr := newServer(t, nil)
	do(t, svr, http.MethodPost, "/v1/sheets/ag", `{"draw_code":"LSK3","text":"123 5"}`)
	if rec := do(t, svr, http.MethodPost, "/v1/sheets/ag/submit", `{"draw_code":"LSK3","time_code":"15"}`); rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
}
