package storygen

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	. "github.com/smartystreets/goconvey/convey"
)

func TestHTTPGenerator(t *testing.T) {
	Convey("HTTPGenerator 调用外部故事服务", t, func() {
		var gotPrompt string
		reply := `{"story_parts":[{"text":"A lion wakes up.","image_url":"https://img/1.png"},{"text":"  "},{"story_text":"He finds a friend.","imageUrl":"https://img/2.png"}]}`
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var body map[string]string
			_ = json.NewDecoder(r.Body).Decode(&body)
			gotPrompt = body["story_prompt"]
			_, _ = w.Write([]byte(reply))
		}))
		defer srv.Close()

		g := NewHTTPGenerator(srv.URL, time.Second)

		Convey("解析并重新编号片段", func() {
			parts, err := g.Generate(context.Background(), "a brave lion")
			So(err, ShouldBeNil)
			So(gotPrompt, ShouldEqual, "a brave lion")
			So(parts, ShouldResemble, []Part{
				{Part: 1, Text: "A lion wakes up.", ImageURL: "https://img/1.png"},
				{Part: 2, Text: "He finds a friend.", ImageURL: "https://img/2.png"},
			})
		})

		Convey("支持 parts 字段", func() {
			reply = `{"parts":[{"content":"Only part"}]}`
			parts, err := g.Generate(context.Background(), "x")
			So(err, ShouldBeNil)
			So(len(parts), ShouldEqual, 1)
			So(parts[0].Text, ShouldEqual, "Only part")
		})

		Convey("没有片段视为上游错误", func() {
			reply = `{"story_parts":[]}`
			_, err := g.Generate(context.Background(), "x")
			So(errors.Is(err, ErrUpstream), ShouldBeTrue)
		})

		Convey("空提示", func() {
			_, err := g.Generate(context.Background(), "")
			So(err, ShouldEqual, ErrEmptyPrompt)
		})
	})

	Convey("上游非 200", t, func() {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer srv.Close()

		_, err := NewHTTPGenerator(srv.URL, time.Second).Generate(context.Background(), "x")
		So(errors.Is(err, ErrUpstream), ShouldBeTrue)
	})
}

type fakeChat struct {
	reply string
	err   error
	input []*schema.Message
}

func (f *fakeChat) Generate(ctx context.Context, input []*schema.Message, opts ...model.Option) (*schema.Message, error) {
	f.input = input
	if f.err != nil {
		return nil, f.err
	}
	return schema.AssistantMessage(f.reply, nil), nil
}

func TestLLMGenerator(t *testing.T) {
	Convey("LLMGenerator 解析模型输出", t, func() {
		chat := &fakeChat{reply: "```json\n[{\"text\":\"Once upon a time.\"},{\"text\":\"The end.\"}]\n```"}
		g := &LLMGenerator{chat: chat}

		parts, err := g.Generate(context.Background(), "a sleepy owl")
		So(err, ShouldBeNil)
		So(len(parts), ShouldEqual, 2)
		So(parts[1], ShouldResemble, Part{Part: 2, Text: "The end."})
		So(chat.input[1].Content, ShouldEqual, "a sleepy owl")

		Convey("输出不是 JSON", func() {
			chat.reply = "Sorry, I can't."
			_, err := g.Generate(context.Background(), "x")
			So(errors.Is(err, ErrUpstream), ShouldBeTrue)
		})

		Convey("模型调用失败", func() {
			chat.err = errors.New("quota")
			_, err := g.Generate(context.Background(), "x")
			So(errors.Is(err, ErrUpstream), ShouldBeTrue)
		})
	})
}
