package v1

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/zintix-labs/betlab"
	"github.com/zintix-labs/betlab/errs"
	"github.com/zintix-labs/betlab/server/httperr"
	"github.com/zintix-labs/betlab/server/svrcfg"
)

// ============================================================
// ** Handler **
// ============================================================

// Handler 持有 v1 api 需要的依賴；Betlab 為唯讀，清單狀態在 SheetRuntime。
type Handler struct {
	lab     *betlab.Betlab
	rt      *betlab.SheetRuntime
	log     *slog.Logger
	timeout time.Duration
}

func NewHandler(sCfg *svrcfg.SvrCfg, rt *betlab.SheetRuntime) (*Handler, error) {
	if sCfg == nil || sCfg.Betlab == nil {
		return nil, errs.NewFatal("betlab is required")
	}
	if rt == nil {
		return nil, errs.NewFatal("sheet runtime is required")
	}
	h := &Handler{
		lab:     sCfg.Betlab,
		rt:      rt,
		log:     sCfg.Log,
		timeout: sCfg.SubmitTimeout,
	}
	if h.timeout <= 0 {
		h.timeout = 15 * time.Second
	}
	return h, nil
}

func (h *Handler) fail(w http.ResponseWriter, msg string, err error) {
	httperr.Log(h.log, msg, err)
	httperr.Errs(w, err)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
