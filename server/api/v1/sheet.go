package v1

import (
	"context"
	"net/http"
	"strconv"

	"github.com/zintix-labs/betlab"
	"github.com/zintix-labs/betlab/dto"
	"github.com/zintix-labs/betlab/errs"
	"github.com/zintix-labs/betlab/server/netsvr"
)

var ErrIndexParam = errs.NewWarn("index must be an integer")

// Sheet : GET /v1/sheets/{agent}
func (h *Handler) Sheet(w http.ResponseWriter, q *http.Request) {
	writeJSON(w, http.StatusOK, h.rt.View(netsvr.URLParam(q, "agent")))
}

// AddToSheet : POST /v1/sheets/{agent}
//
// body 帶 selection 時展開後前插；只帶 text 時以貼上解析。
func (h *Handler) AddToSheet(w http.ResponseWriter, q *http.Request) {
	agent := netsvr.URLParam(q, "agent")
	req, err := dto.DecodeSheetRequest(q)
	if err != nil {
		h.fail(w, "[v1] sheet add", err)
		return
	}
	res := dto.SheetUpdate{}
	if req.Selection != nil {
		sel, err := req.Selection.Selection()
		if err != nil {
			h.fail(w, "[v1] sheet add", err)
			return
		}
		res.Added, res.Focus, err = h.rt.Add(agent, req.DrawCode, sel)
		if err != nil {
			h.fail(w, "[v1] sheet add", err)
			return
		}
	} else {
		res.Added, err = h.rt.Paste(agent, req.DrawCode, req.Text)
		if err != nil {
			h.fail(w, "[v1] sheet paste", err)
			return
		}
	}
	res.Sheet = h.rt.View(agent)
	writeJSON(w, http.StatusOK, res)
}

// DeleteFromSheet : DELETE /v1/sheets/{agent}[?index=i]
//
// 帶 index 時只刪除該筆，否則清空。
func (h *Handler) DeleteFromSheet(w http.ResponseWriter, q *http.Request) {
	agent := netsvr.URLParam(q, "agent")
	var err error
	if raw := q.URL.Query().Get("index"); raw != "" {
		i, perr := strconv.Atoi(raw)
		if perr != nil {
			h.fail(w, "[v1] sheet delete", errs.With(ErrIndexParam, "index="+raw))
			return
		}
		err = h.rt.Delete(agent, i)
	} else {
		err = h.rt.Clear(agent)
	}
	if err != nil {
		h.fail(w, "[v1] sheet delete", err)
		return
	}
	writeJSON(w, http.StatusOK, h.rt.View(agent))
}

// Submit : POST /v1/sheets/{agent}/submit
func (h *Handler) Submit(w http.ResponseWriter, q *http.Request) {
	agent := netsvr.URLParam(q, "agent")
	req, err := dto.DecodeSubmitRequest(q)
	if err != nil {
		h.fail(w, "[v1] submit", err)
		return
	}
	// 請求解析完成，設置超時 context
	ctx, cancel := context.WithTimeout(q.Context(), h.timeout)
	defer cancel()

	resp, rows, err := h.rt.Submit(ctx, agent, betlab.SubmitOptions{
		DrawCode:    req.DrawCode,
		CreatedBy:   req.CreatedBy,
		TimeCode:    req.TimeCode,
		ToggleCount: req.ToggleCount,
	})
	if err != nil {
		h.fail(w, "[v1] submit", err)
		return
	}
	writeJSON(w, http.StatusOK, dto.SubmitResult{
		Agent:    agent,
		Entries:  rows,
		Status:   resp.Status,
		Response: string(resp.Body),
	})
}
