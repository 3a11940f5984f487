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

package httperr

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/zintix-labs/betlab/errs"
)

func TestStatusCode(t *testing.T) {
	conflict := errs.NewWarn("busy")
	Register(conflict, http.StatusConflict)

	cases := []struct {
		err  error
		want int
	}{
		{errs.NewWarn("bad input"), http.StatusBadRequest},
		{errs.NewFatal("broken"), http.StatusInternalServerError},
		{fmt.Errorf("plain"), http.StatusInternalServerError},
		{fmt.Errorf("wrapped: %w", context.DeadlineExceeded), http.StatusGatewayTimeout},
		{context.Canceled, http.StatusRequestTimeout},
		{errs.With(conflict, "agent=a"), http.StatusConflict},
	}
	for _, c := range cases {
		if got := StatusCode(c.err); got != c.want {
			t.Fatalf("%v: got %d want %d", c.err, got, c.want)
		}
	}
}

func TestErrsWritesJSON(t *testing.T) {
	w := httptest.NewRecorder()
	Errs(w, errs.With(errs.NewWarn("number must match digit width"), "number=12"))
	if w.Code != http.StatusBadRequest || w.Header().Get("Content-Type") != "application/json" {
		t.Fatalf("unexpected response: %d %s", w.Code, w.Header().Get("Content-Type"))
	}
	var b Body
	if err := json.NewDecoder(w.Body).Decode(&b); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if b.Error != "number must match digit width" || b.Level != "warn" || b.Extra != "number=12" {
		t.Fatalf("unexpected body: %+v", b)
	}

	w = httptest.NewRecorder()
	Errs(w, errs.NewFatal("db password leaked"))
	_ = json.NewDecoder(w.Body).Decode(&b)
	if w.Code != http.StatusInternalServerError || b.Error != "Internal Server Error" {
		t.Fatalf("5xx should hide detail: %d %+v", w.Code, b)
	}
}
