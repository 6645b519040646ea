// Package svgpath 将画板笔画（点序列）转换为 SVG path 数据
package svgpath

import (
	"errors"
	"fmt"
	"html"
	"strconv"
	"strings"
)

// ErrNoStrokes 没有可绘制的笔画
var ErrNoStrokes = errors.New("no strokes to render")

// Point 画板坐标
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Stroke 一笔（手指按下到抬起之间的点）
type Stroke []Point

// Style 描边样式
type Style struct {
	Width       float64
	Height      float64
	StrokeColor string
	StrokeWidth float64
}

// DefaultStyle 画板默认样式
var DefaultStyle = Style{Width: 400, Height: 400, StrokeColor: "#000000", StrokeWidth: 4}

// PathData 生成 path 的 d 属性：每一笔一个 "M x y L x y ..." 子路径
// 空笔画被忽略；单点笔画输出 "M x y L x y" 以便渲染为一个点
func PathData(strokes []Stroke) string {
	var b strings.Builder
	for _, stroke := range strokes {
		if len(stroke) == 0 {
			continue
		}
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		b.WriteString("M ")
		writePoint(&b, stroke[0])
		rest := stroke[1:]
		if len(rest) == 0 {
			rest = stroke[:1]
		}
		for _, p := range rest {
			b.WriteString(" L ")
			writePoint(&b, p)
		}
	}
	return b.String()
}

// Render 生成完整的 SVG 文档
func Render(strokes []Stroke, style Style) (string, error) {
	d := PathData(strokes)
	if d == "" {
		return "", ErrNoStrokes
	}
	style = withDefaults(style)

	return fmt.Sprintf(
		`<svg xmlns="http://www.w3.org/2000/svg" width="%s" height="%s" viewBox="0 0 %s %s">`+
			`<path d="%s" fill="none" stroke="%s" stroke-width="%s" stroke-linecap="round" stroke-linejoin="round"/>`+
			`</svg>`,
		formatNum(style.Width), formatNum(style.Height),
		formatNum(style.Width), formatNum(style.Height),
		d, html.EscapeString(style.StrokeColor), formatNum(style.StrokeWidth),
	), nil
}

func withDefaults(s Style) Style {
	if s.Width <= 0 {
		s.Width = DefaultStyle.Width
	}
	if s.Height <= 0 {
		s.Height = DefaultStyle.Height
	}
	if s.StrokeColor == "" {
		s.StrokeColor = DefaultStyle.StrokeColor
	}
	if s.StrokeWidth <= 0 {
		s.StrokeWidth = DefaultStyle.StrokeWidth
	}
	return s
}

func writePoint(b *strings.Builder, p Point) {
	b.WriteString(formatNum(p.X))
	b.WriteByte(' ')
	b.WriteString(formatNum(p.Y))
}

// formatNum 保留两位小数并去掉多余的 0
func formatNum(v float64) string {
	s := strconv.FormatFloat(v, 'f', 2, 64)
	s = strings.TrimRight(s, "0")
	s = strings.TrimSuffix(s, ".")
	if s == "-0" {
		return "0"
	}
	return s
}
