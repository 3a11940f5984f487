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
	"io"
	"sync"
	"time"

	"github.com/cheggaaa/pb/v3"
	"github.com/zintix-labs/betlab/errs"
	"github.com/zintix-labs/betlab/paste"
	"github.com/zintix-labs/betlab/report"
)

// Doc 是一份待解析的貼上文件（例如一個檔案）
type Doc struct {
	Name string
	Text string
}

// DocResult 單份文件的解析摘要
type DocResult struct {
	Name      string `json:"name"`
	Lines     int    `json:"lines"`
	Unmatched int    `json:"unmatched"`
	Entries   int    `json:"entries"`
}

// BatchResult 批次解析結果：合併後的銷售報表與每份文件的摘要（依輸入順序）
type BatchResult struct {
	Sales *report.SalesReport
	Docs  []DocResult
	Used  time.Duration
}

// Batch 以 workers 個 goroutine 平行解析多份文件，合併出單一銷售報表。
func (b *Betlab) Batch(code string, docs []Doc, workers int, showpb bool) (*BatchResult, error) {
	if workers <= 0 {
		return nil, errs.NewWarn("workers must > 0")
	}
	if len(docs) == 0 {
		return nil, errs.NewWarn("no documents to parse")
	}
	ds, err := b.DrawSetting(code)
	if err != nil {
		return nil, err
	}
	workers = min(workers, len(docs))

	parts := make([]*report.SalesReport, workers)
	for i := range parts {
		parts[i] = report.NewSales(ds)
	}
	out := make([]DocResult, len(docs))

	// 以索引派工，結果直接寫回對應位置，維持輸入順序
	jobs := make(chan int, len(docs))
	wg := new(sync.WaitGroup)
	wg.Add(workers)

	bar := pb.StartNew(len(docs))
	if !showpb {
		bar.SetWriter(io.Discard)
	}
	for w := 0; w < workers; w++ {
		go func(sr *report.SalesReport) {
			defer wg.Done()
			for i := range jobs {
				out[i] = parseDoc(ds.DrawCode, docs[i], sr)
				bar.Increment()
			}
		}(parts[w])
	}
	for i := range docs {
		jobs <- i
	}
	close(jobs)
	wg.Wait()
	used := time.Since(bar.StartTime())
	bar.Finish()

	merged := parts[0]
	for _, p := range parts[1:] {
		merged.Merge(p)
	}
	merged.Done()
	return &BatchResult{Sales: merged, Docs: out, Used: used}, nil
}

func parseDoc(drawCode string, d Doc, sr *report.SalesReport) DocResult {
	res := DocResult{Name: d.Name}
	for _, l := range paste.ParseLines(drawCode, d.Text) {
		res.Lines++
		if l.Pattern == paste.NoMatch {
			res.Unmatched++
			continue
		}
		res.Entries += len(l.Entries)
		sr.Add(l.Entries)
	}
	return res
}
