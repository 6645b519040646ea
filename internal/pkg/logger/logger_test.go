package logger

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"slpece/internal/config"
)

func TestNew(t *testing.T) {
	Convey("New 按配置输出 JSON 日志", t, func() {
		var buf bytes.Buffer
		l := New(&config.LogConfig{Level: "debug", Format: "json"}, &buf)
		l.Info().Str("story_id", "abc").Msg("story created")

		var entry map[string]any
		So(json.Unmarshal(buf.Bytes(), &entry), ShouldBeNil)
		So(entry["message"], ShouldEqual, "story created")
		So(entry["story_id"], ShouldEqual, "abc")
		So(entry["service"], ShouldEqual, "slpece")
		So(entry["level"], ShouldEqual, "info")
	})

	Convey("非法级别回退到 info", t, func() {
		var buf bytes.Buffer
		l := New(&config.LogConfig{Level: "loud", Format: "json"}, &buf)
		l.Debug().Msg("hidden")
		So(buf.Len(), ShouldEqual, 0)
	})
}

func TestInit_FileOutput(t *testing.T) {
	Convey("file 输出缺少路径时报错", t, func() {
		So(Init(&config.LogConfig{Output: "file"}), ShouldNotBeNil)
	})

	Convey("file 输出写入指定文件", t, func() {
		path := filepath.Join(t.TempDir(), "app.log")
		So(Init(&config.LogConfig{Output: "file", FilePath: path, Format: "json"}), ShouldBeNil)
	})
}
