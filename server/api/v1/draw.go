package v1

import (
	"net/http"

	"github.com/zintix-labs/betlab/bet"
	"github.com/zintix-labs/betlab/dto"
	"github.com/zintix-labs/betlab/report"
	"github.com/zintix-labs/betlab/server/netsvr"
)

// Draws : GET /v1/draws
func (h *Handler) Draws(w http.ResponseWriter, q *http.Request) {
	sum, err := h.lab.Summary()
	if err != nil {
		h.fail(w, "[v1] draws", err)
		return
	}
	writeJSON(w, http.StatusOK, sum)
}

// Draw : GET /v1/draws/{code}
func (h *Handler) Draw(w http.ResponseWriter, q *http.Request) {
	ds, err := h.lab.DrawSetting(netsvr.URLParam(q, "code"))
	if err != nil {
		h.fail(w, "[v1] draw", err)
		return
	}
	writeJSON(w, http.StatusOK, ds)
}

// Expand : POST /v1/expand
func (h *Handler) Expand(w http.ResponseWriter, q *http.Request) {
	req, err := dto.DecodeExpandRequest(q)
	if err != nil {
		h.fail(w, "[v1] expand", err)
		return
	}
	sel, err := req.Selection()
	if err != nil {
		h.fail(w, "[v1] expand", err)
		return
	}
	entries, err := h.lab.Expand(req.DrawCode, sel)
	if err != nil {
		h.fail(w, "[v1] expand", err)
		return
	}
	writeJSON(w, http.StatusOK, dto.NewExpandResult(req.DrawCode, entries, bet.FocusFor(sel)))
}

// Paste : POST /v1/paste
func (h *Handler) Paste(w http.ResponseWriter, q *http.Request) {
	req, err := dto.DecodePasteRequest(q)
	if err != nil {
		h.fail(w, "[v1] paste", err)
		return
	}
	lines, err := h.lab.PasteLines(req.DrawCode, req.Text)
	if err != nil {
		h.fail(w, "[v1] paste", err)
		return
	}
	entries := make([]bet.Entry, 0, len(lines))
	for _, l := range lines {
		entries = append(entries, l.Entries...)
	}
	res := dto.PasteResult{ExpandResult: dto.NewExpandResult(req.DrawCode, entries, "")}
	if req.Detail {
		res.Lines = lines
	}
	writeJSON(w, http.StatusOK, res)
}

// Match : POST /v1/match
func (h *Handler) Match(w http.ResponseWriter, q *http.Request) {
	req, err := dto.DecodeMatchRequest(q)
	if err != nil {
		h.fail(w, "[v1] match", err)
		return
	}
	ms, err := h.lab.Match(req.DrawCode, req.Entries, req.Result)
	if err != nil {
		h.fail(w, "[v1] match", err)
		return
	}
	writeJSON(w, http.StatusOK, dto.MatchResult{
		Matched: ms,
		Report:  report.Winning(req.DrawCode, req.Result, ms),
	})
}

// Sales : POST /v1/sales
func (h *Handler) Sales(w http.ResponseWriter, q *http.Request) {
	req, err := dto.DecodeSalesRequest(q)
	if err != nil {
		h.fail(w, "[v1] sales", err)
		return
	}
	rep, err := h.lab.Sales(req.DrawCode, req.Entries)
	if err != nil {
		h.fail(w, "[v1] sales", err)
		return
	}
	writeJSON(w, http.StatusOK, rep)
}
