package svgpath

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestPathData(t *testing.T) {
	Convey("PathData 把笔画转为 SVG path", t, func() {
		Convey("单笔多点", func() {
			d := PathData([]Stroke{{{X: 1, Y: 2}, {X: 3.5, Y: 4}, {X: 5.126, Y: 6}}})
			So(d, ShouldEqual, "M 1 2 L 3.5 4 L 5.13 6")
		})

		Convey("多笔画各自一个子路径，空笔画忽略", func() {
			d := PathData([]Stroke{{{X: 0, Y: 0}, {X: 10, Y: 10}}, {}, {{X: 20, Y: 20}, {X: 30, Y: 25}}})
			So(d, ShouldEqual, "M 0 0 L 10 10 M 20 20 L 30 25")
		})

		Convey("单点笔画渲染为一个点", func() {
			So(PathData([]Stroke{{{X: 7, Y: 8}}}), ShouldEqual, "M 7 8 L 7 8")
		})

		Convey("没有笔画返回空串", func() {
			So(PathData(nil), ShouldEqual, "")
		})

		Convey("负零按 0 输出", func() {
			So(PathData([]Stroke{{{X: -0.001, Y: 1}}}), ShouldEqual, "M 0 1 L 0 1")
		})
	})
}

func TestRender(t *testing.T) {
	Convey("Render 生成 SVG 文档", t, func() {
		svg, err := Render([]Stroke{{{X: 1, Y: 1}, {X: 2, Y: 2}}}, Style{StrokeColor: `"red"`})
		So(err, ShouldBeNil)
		So(svg, ShouldStartWith, `<svg xmlns="http://www.w3.org/2000/svg" width="400" height="400"`)
		So(svg, ShouldContainSubstring, `d="M 1 1 L 2 2"`)
		So(svg, ShouldContainSubstring, `stroke="&#34;red&#34;"`)
		So(svg, ShouldContainSubstring, `stroke-width="4"`)

		_, err = Render([]Stroke{{}}, DefaultStyle)
		So(err, ShouldEqual, ErrNoStrokes)
	})
}
