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

// Package catalog 是開獎目錄：以 draw code 與 draw name 為索引，指向 fs.FS 中的設定檔。
package catalog

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/zintix-labs/betlab/errs"
	"github.com/zintix-labs/betlab/spec"
)

var (
	ErrDupCode = errs.NewFatal("duplicate draw code")
	ErrDupName = errs.NewFatal("duplicate draw name")
)

type Entry struct {
	Code       string
	Name       string
	ConfigName string
}

type Summary struct {
	Code  string          `json:"code"`
	Name  string          `json:"name"`
	Times []spec.TimeSlot `json:"times"`
}

type Catalog struct {
	byCode map[string]Entry
	byName map[string]Entry
	codes  []string            // 穩定排序
	unique map[string]struct{} // 一組開獎，檔名需唯一
	config *multiFS
	frozen bool
}

func New(cfg ...fs.FS) (*Catalog, error) {
	multFS, err := newMultiFS(cfg...)
	if err != nil {
		return nil, errs.Wrap(err, "can not create catalog")
	}
	return &Catalog{
		byCode: map[string]Entry{},
		byName: map[string]Entry{},
		codes:  make([]string, 0, 16),
		unique: map[string]struct{}{},
		config: multFS,
	}, nil
}

// Register 一次性註冊多筆；任何一筆不合法則全部不寫入。
func (c *Catalog) Register(metas ...Entry) error {
	if c.frozen {
		return errs.NewWarn("can not register when catalog already frozen")
	}
	seenCode := map[string]struct{}{}
	seenName := map[string]struct{}{}
	seenCfg := map[string]struct{}{}
	for i := range metas {
		meta := &metas[i]
		meta.Name = strings.ToLower(strings.TrimSpace(meta.Name))
		meta.Code = strings.TrimSpace(meta.Code)
		if meta.Name == "" {
			return errs.NewFatal("draw name required")
		}
		if meta.Code == "" {
			return errs.NewFatal("draw code required")
		}
		if err := validFileName(meta.ConfigName); err != nil {
			return err
		}
		if _, ok := c.config.index[meta.ConfigName]; !ok {
			return errs.NewFatal(fmt.Sprintf("config file not found: %s", meta.ConfigName))
		}
		if _, ok := c.byCode[meta.Code]; ok {
			return ErrDupCode
		}
		if _, ok := c.byName[meta.Name]; ok {
			return ErrDupName
		}
		if _, ok := c.unique[meta.ConfigName]; ok {
			return errs.NewFatal(fmt.Sprintf("duplicate config name: %s", meta.ConfigName))
		}
		if _, ok := seenCode[meta.Code]; ok {
			return ErrDupCode
		}
		if _, ok := seenName[meta.Name]; ok {
			return ErrDupName
		}
		if _, ok := seenCfg[meta.ConfigName]; ok {
			return errs.NewFatal(fmt.Sprintf("duplicate config name: %s", meta.ConfigName))
		}
		seenCode[meta.Code] = struct{}{}
		seenName[meta.Name] = struct{}{}
		seenCfg[meta.ConfigName] = struct{}{}
	}
	for _, meta := range metas {
		c.unique[meta.ConfigName] = struct{}{}
		c.byCode[meta.Code] = meta
		c.byName[meta.Name] = meta
		c.codes = append(c.codes, meta.Code)
	}
	sort.Strings(c.codes)
	return nil
}

func (c *Catalog) GetByCode(code string) (Entry, bool) {
	m, ok := c.byCode[strings.TrimSpace(code)]
	return m, ok
}

func (c *Catalog) GetByName(name string) (Entry, bool) {
	m, ok := c.byName[strings.ToLower(strings.TrimSpace(name))]
	return m, ok
}

func (c *Catalog) Codes() []string {
	if len(c.codes) == 0 {
		return nil
	}
	return append([]string(nil), c.codes...)
}

func (c *Catalog) All() []Entry {
	m := make([]Entry, 0, len(c.codes))
	for _, code := range c.codes {
		if meta, ok := c.byCode[code]; ok {
			m = append(m, meta)
		}
	}
	return m
}

func (c *Catalog) Cfg() *multiFS {
	return c.config
}

func (c *Catalog) Freeze() {
	c.frozen = true
}

func (c *Catalog) IsFrozen() bool {
	return c.frozen
}

// DrawSettingByCode 讀取 fs.FS 中的 YAML/JSON 設定、初始化並檢查後回傳
func (c *Catalog) DrawSettingByCode(code string) (*spec.DrawSetting, error) {
	e, ok := c.GetByCode(code)
	if !ok {
		return nil, errs.NewWarn(fmt.Sprintf("draw code does not exist in catalog: %q", code))
	}
	return c.load(e)
}

func (c *Catalog) DrawSettingByName(name string) (*spec.DrawSetting, error) {
	e, ok := c.GetByName(name)
	if !ok {
		return nil, errs.NewWarn(fmt.Sprintf("draw name does not exist in catalog: %q", name))
	}
	return c.load(e)
}

func (c *Catalog) load(e Entry) (*spec.DrawSetting, error) {
	src, ok := c.config.GetFS(e.ConfigName)
	if !ok {
		return nil, errs.NewWarn("file name does not exist in catalog")
	}
	raw, err := fs.ReadFile(src, e.ConfigName)
	if err != nil {
		return nil, errs.Wrap(err, "catalog read file error")
	}
	return ParseByExt(e.ConfigName, raw)
}

// ParseByExt 依副檔名選擇 YAML 或 JSON 解析
func ParseByExt(filename string, raw []byte) (*spec.DrawSetting, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".yaml", ".yml":
		return spec.GetDrawSettingByYAML(raw)
	case ".json":
		return spec.GetDrawSettingByJSON(raw)
	default:
		return nil, errs.NewFatal(fmt.Sprintf("unsupported config format: %q", filename))
	}
}

func isConfigFile(name string) bool {
	lower := strings.ToLower(name)
	return strings.HasSuffix(lower, ".yaml") || strings.HasSuffix(lower, ".yml") || strings.HasSuffix(lower, ".json")
}

func validFileName(file string) error {
	if file == "" {
		return errs.NewFatal("empty config filename")
	}
	if strings.ContainsAny(file, `/\:`) {
		return errs.NewFatal(fmt.Sprintf("invalid config filename: %q (must be a basename)", file))
	}
	if !isConfigFile(file) {
		return errs.NewFatal(fmt.Sprintf("invalid config filename: %q (must end with .yaml, .yml, or .json)", file))
	}
	if strings.HasPrefix(file, ".") {
		return errs.NewFatal(fmt.Sprintf("invalid config filename: %q (cannot start with '.')", file))
	}
	return nil
}

// multiFS 把多個扁平的設定來源合併成一個以檔名為鍵的索引
type multiFS struct {
	src   []fs.FS
	index map[string]int // name -> src index
}

func newMultiFS(src ...fs.FS) (*multiFS, error) {
	if len(src) == 0 {
		return nil, errs.NewFatal("no fs provided")
	}
	for i, s := range src {
		if s == nil {
			return nil, errs.NewFatal(fmt.Sprintf("fs[%d] is nil", i))
		}
	}

	m := &multiFS{
		src:   src,
		index: make(map[string]int, 64),
	}

	for i := range src {
		err := fs.WalkDir(src[i], ".", func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				// 只允許根目錄
				if path == "." {
					return nil
				}
				return errs.NewFatal(fmt.Sprintf("config FS must be flat (no subdirectories): %q", path))
			}
			if !isConfigFile(path) || strings.HasPrefix(path, ".") {
				return nil
			}
			if prev, ok := m.index[path]; ok {
				return errs.NewFatal(fmt.Sprintf("duplicate config %q in fs[%d] and fs[%d]", path, prev, i))
			}
			m.index[path] = i
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *multiFS) GetFS(name string) (fs.FS, bool) {
	if id, ok := m.index[name]; ok {
		return m.src[id], ok
	}
	return nil, false
}

// Names 依字母序回傳所有設定檔名
func (m *multiFS) Names() []string {
	names := make([]string, 0, len(m.index))
	for n := range m.index {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Sources exposes config FS sources for read-only iteration.
func (m *multiFS) Sources() []fs.FS {
	if m == nil || len(m.src) == 0 {
		return nil
	}
	return append([]fs.FS(nil), m.src...)
}
