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

package spec_test

import (
	"testing"

	"github.com/zintix-labs/betlab/spec"
)

const drawYAML = `
draw_name: " Dear 1PM "
draw_code: "D-1-"
times:
  - label: "1 PM"
    code: "13"
prices:
  SUPER: "10"
  BOX: "10"
  A: "12.5"
schemes:
  SUPER:
    rates: ["5000", "500", "250"]
    complement: "20"
`

func TestGetDrawSettingByYAML(t *testing.T) {
	ds, err := spec.GetDrawSettingByYAML([]byte(drawYAML))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ds.DrawName != "dear 1pm" || ds.DrawCode != "D-1-" {
		t.Fatalf("unexpected setting: %+v", ds)
	}
	if got := ds.Price(spec.A).String(); got != "12.5" {
		t.Fatalf("price A got %s", got)
	}
	sc := ds.Schemes[spec.Super]
	if sc.Rate(1).String() != "5000" || sc.Rate(3).String() != "250" || !sc.Rate(4).IsZero() {
		t.Fatalf("unexpected rates: %v", sc.RateTable)
	}
	if sc.ComplementValue.String() != "20" {
		t.Fatalf("complement got %s", sc.ComplementValue)
	}
	if _, ok := ds.TimeByCode("13"); !ok {
		t.Fatalf("time 13 should exist")
	}
}

func TestGetDrawSettingRejectsBadInput(t *testing.T) {
	cases := map[string]string{
		"unknown class": "draw_name: x\ndraw_code: X\ntimes: [{label: a, code: a}]\nprices: {ZZ: \"1\"}\n",
		"zero price":    "draw_name: x\ndraw_code: X\ntimes: [{label: a, code: a}]\nprices: {A: \"0\"}\n",
		"no times":      "draw_name: x\ndraw_code: X\n",
		"bad rate":      "draw_name: x\ndraw_code: X\ntimes: [{label: a, code: a}]\nschemes: {A: {rates: [\"abc\"]}}\n",
		"dup time":      "draw_name: x\ndraw_code: X\ntimes: [{label: a, code: a}, {label: b, code: a}]\n",
	}
	for name, raw := range cases {
		if _, err := spec.GetDrawSettingByYAML([]byte(raw)); err == nil {
			t.Fatalf("%s: expected error", name)
		}
	}
}

func TestGetDrawSettingByJSON(t *testing.T) {
	raw := `{"draw_name":"lsk","draw_code":"LSK3","times":[{"label":"3 PM","code":"15"}],"prices":{"SUPER":"10"}}`
	ds, err := spec.GetDrawSettingByJSON([]byte(raw))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ds.Price(spec.Super).String() != "10" {
		t.Fatalf("unexpected price: %s", ds.Price(spec.Super))
	}
}

func TestTypeCode(t *testing.T) {
	cases := []struct {
		code  string
		class spec.Class
		want  string
	}{
		{"LSK3", spec.Super, "LSK3SUPER"},
		{"LSK3", spec.Box, "LSK3BOX"},
		{"LSK3", spec.AB, "LSK3AB"},
		{"LSK3", spec.A, "LSK3-A"},
		{"D-1-", spec.C, "D-1-C"},
		{"D-1-", spec.Super, "D-1-SUPER"},
	}
	for _, c := range cases {
		got := spec.TypeCode(c.code, c.class)
		if got != c.want {
			t.Fatalf("TypeCode(%s,%s) got %s want %s", c.code, c.class, got, c.want)
		}
		back, ok := spec.ClassOf(c.code, got)
		if !ok || back != c.class {
			t.Fatalf("ClassOf(%s,%s) got %s %v", c.code, got, back, ok)
		}
	}
	if _, ok := spec.ClassOf("LSK3", "LSK3A"); ok {
		t.Fatalf("LSK3A is not a valid type")
	}
	if _, ok := spec.ClassOf("LSK3", "D-1-SUPER"); ok {
		t.Fatalf("foreign draw code should not match")
	}
}

func TestParseClass(t *testing.T) {
	if c, ok := spec.ParseClass(" super "); !ok || c != spec.Super {
		t.Fatalf("got %s %v", c, ok)
	}
	if c, ok := spec.ParseClass("-a"); !ok || c != spec.A {
		t.Fatalf("got %s %v", c, ok)
	}
	if c, ok := spec.ParseClass("all"); !ok || c != spec.All {
		t.Fatalf("got %s %v", c, ok)
	}
	if _, ok := spec.ParseClass("XYZ"); ok {
		t.Fatalf("XYZ should be rejected")
	}
	if !spec.Box.ValidFor(3) || spec.Box.ValidFor(2) || spec.All.ValidFor(3) {
		t.Fatalf("ValidFor mismatch")
	}
	if got := spec.ClassesFor(2); len(got) != 3 || got[0] != spec.AB || got[2] != spec.AC {
		t.Fatalf("ClassesFor(2) got %v", got)
	}
}
