// 包 render：在内存画布上绘制分级统计图并编码为 SVG
package render

import (
	"bufio"
	"bytes"
	"encoding/xml"
	"io"
	"strconv"
)

type Attr struct {
	Name, Value string
}

// Node：一个 SVG 元素
// 约束：属性按插入顺序输出，相同输入的两次渲染字节一致
type Node struct {
	Tag      string
	Attrs    []Attr
	Text     string
	Children []*Node
}

// El：按 name, value 成对传入属性，落单的末尾参数忽略
func El(tag string, attrs ...string) *Node {
	n := &Node{Tag: tag}
	for i := 0; i+1 < len(attrs); i += 2 {
		n.Attrs = append(n.Attrs, Attr{Name: attrs[i], Value: attrs[i+1]})
	}
	return n
}

// Set：已存在则覆盖原值，保持原位置
func (n *Node) Set(name, value string) *Node {
	for i := range n.Attrs {
		if n.Attrs[i].Name == name {
			n.Attrs[i].Value = value
			return n
		}
	}
	n.Attrs = append(n.Attrs, Attr{Name: name, Value: value})
	return n
}

func (n *Node) Attr(name string) (string, bool) {
	for _, a := range n.Attrs {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

func (n *Node) Append(c *Node) *Node {
	n.Children = append(n.Children, c)
	return c
}

// Find：按文档顺序返回满足 pred 的全部后代，不含 n 自身
func (n *Node) Find(pred func(*Node) bool) []*Node {
	var out []*Node
	var walk func(*Node)
	walk = func(x *Node) {
		for _, c := range x.Children {
			if pred(c) {
				out = append(out, c)
			}
			walk(c)
		}
	}
	walk(n)
	return out
}

// Canvas：绘制面，根节点为固定视口的 <svg>
type Canvas struct {
	Width, Height int
	root          *Node
}

func NewCanvas(width, height int) *Canvas {
	c := &Canvas{Width: width, Height: height}
	c.Clear()
	return c
}

// Clear：丢弃已绘制内容，重建根节点
func (c *Canvas) Clear() {
	w, h := strconv.Itoa(c.Width), strconv.Itoa(c.Height)
	c.root = El("svg",
		"xmlns", "http://www.w3.org/2000/svg",
		"width", w,
		"height", h,
		"viewBox", "0 0 "+w+" "+h,
		"style", "max-width: 100%; height: auto;",
	)
}

func (c *Canvas) Root() *Node { return c.root }

func (c *Canvas) Append(n *Node) *Node { return c.root.Append(n) }

// WriteSVG：属性值与文本经 XML 转义，末尾带换行
func (c *Canvas) WriteSVG(w io.Writer) error {
	bw := bufio.NewWriter(w)
	if err := writeNode(bw, c.root); err != nil {
		return err
	}
	if _, err := bw.WriteString("\n"); err != nil {
		return err
	}
	return bw.Flush()
}

func (c *Canvas) SVG() ([]byte, error) {
	var buf bytes.Buffer
	if err := c.WriteSVG(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeNode(w *bufio.Writer, n *Node) error {
	w.WriteByte('<')
	w.WriteString(n.Tag)
	for _, a := range n.Attrs {
		w.WriteByte(' ')
		w.WriteString(a.Name)
		w.WriteString(`="`)
		if err := xml.EscapeText(w, []byte(a.Value)); err != nil {
			return err
		}
		w.WriteByte('"')
	}
	if n.Text == "" && len(n.Children) == 0 {
		_, err := w.WriteString("/>")
		return err
	}
	w.WriteByte('>')
	if n.Text != "" {
		if err := xml.EscapeText(w, []byte(n.Text)); err != nil {
			return err
		}
	}
	for _, c := range n.Children {
		if err := writeNode(w, c); err != nil {
			return err
		}
	}
	w.WriteString("</")
	w.WriteString(n.Tag)
	_, err := w.WriteString(">")
	return err
}
