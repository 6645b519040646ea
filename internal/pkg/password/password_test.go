package password

import (
	"strings"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestHashVerify(t *testing.T) {
	Convey("bcrypt 哈希与校验", t, func() {
		hash, err := Hash("secret123")
		So(err, ShouldBeNil)
		So(hash, ShouldNotEqual, "secret123")

		So(Verify("secret123", hash), ShouldBeTrue)
		So(Verify("secret124", hash), ShouldBeFalse)
		So(Verify("secret123", "not-a-hash"), ShouldBeFalse)
	})

	Convey("超过 MaxBytes 的密码无法哈希", t, func() {
		_, err := Hash(strings.Repeat("a", MaxBytes))
		So(err, ShouldBeNil)

		_, err = Hash(strings.Repeat("a", MaxBytes+1))
		So(err, ShouldNotBeNil)
	})
}
