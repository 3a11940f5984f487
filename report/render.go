package report

import (
	"encoding/json"
	"io"

	"gopkg.in/yaml.v3"
)

// Render 將報表寫出
type Render interface {
	Write(w io.Writer, v any) error
}

// Json渲染
type JsonRender struct{}

func (jr *JsonRender) Write(w io.Writer, v any) error {
	return json.NewEncoder(w).Encode(v)
}

// YAML渲染
type YAMLRender struct{}

func (yr *YAMLRender) Write(w io.Writer, v any) error {
	// 只有最內層的一維陣列輸出成 flow style：[..., ...]，外層維持展開
	return forceReadableList(w, v)
}

// RenderByName 依名稱取得輸出格式（"json" / "yaml"），未知時回傳 nil。
func RenderByName(name string) Render {
	switch name {
	case "json":
		return &JsonRender{}
	case "yaml", "yml":
		return &YAMLRender{}
	default:
		return nil
	}
}

func (r *SalesReport) WriteWith(w io.Writer, rep Render) error {
	r.Done()
	return rep.Write(w, r)
}

func (r *WinningReport) WriteWith(w io.Writer, rep Render) error {
	return rep.Write(w, r)
}

func forceReadableList(w io.Writer, v any) error {
	var node yaml.Node
	if err := node.Encode(v); err != nil {
		return err
	}
	styleReadableSequences(&node)

	enc := yaml.NewEncoder(w)
	defer enc.Close()
	return enc.Encode(&node)
}

func styleReadableSequences(n *yaml.Node) {
	if n == nil {
		return
	}

	switch n.Kind {
	case yaml.DocumentNode, yaml.MappingNode:
		for _, c := range n.Content {
			styleReadableSequences(c)
		}

	case yaml.SequenceNode:
		// 只含純量的 sequence 才改成 flow；內含 mapping 或子 sequence 的保持展開
		nested := false
		for _, c := range n.Content {
			if c != nil && (c.Kind == yaml.SequenceNode || c.Kind == yaml.MappingNode) {
				nested = true
			}
			styleReadableSequences(c)
		}
		if !nested {
			n.Style = yaml.FlowStyle
		}
	}
}
