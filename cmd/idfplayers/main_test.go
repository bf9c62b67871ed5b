package main

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/parisfoot/idfplayers/internal/app"
	. "github.com/smartystreets/goconvey/convey"
)

func TestRootCommand(t *testing.T) {
	Convey("Given the root command", t, func() {
		root := newRootCmd()

		Convey("Then every pipeline operation is registered", func() {
			names := make(map[string]bool)
			for _, sub := range root.Commands() {
				names[sub.Name()] = true
			}
			for _, want := range []string{"collect", "retry", "analyze", "status", "upload"} {
				So(names[want], ShouldBeTrue)
			}
		})
	})
}

func TestStatusCommand(t *testing.T) {
	Convey("Given a fresh pipeline with no captures", t, func() {
		t.Setenv("IDF_RAW_DIR", filepath.Join(t.TempDir(), "raw"))
		t.Setenv("IDF_EXPORT_DIR", filepath.Join(t.TempDir(), "export"))

		root := newRootCmd()
		var out, errOut bytes.Buffer
		root.SetOut(&out)
		root.SetErr(&errOut)
		root.SetArgs([]string{"status"})

		Convey("When status runs", func() {
			err := root.ExecuteContext(context.Background())

			Convey("Then it reports every département as missing", func() {
				So(err, ShouldBeNil)
				So(out.String(), ShouldContainSubstring, "total: 0 players")
				So(out.String(), ShouldContainSubstring, "missing: 75, 92, 93, 94, 95, 77, 78, 91")
			})
		})
	})
}

func TestAnalyzeWithoutCaptures(t *testing.T) {
	Convey("Given a fresh pipeline with no captures", t, func() {
		t.Setenv("IDF_RAW_DIR", filepath.Join(t.TempDir(), "raw"))
		t.Setenv("IDF_EXPORT_DIR", filepath.Join(t.TempDir(), "export"))

		root := newRootCmd()
		root.SetOut(&bytes.Buffer{})
		root.SetErr(&bytes.Buffer{})
		root.SetArgs([]string{"analyze"})

		Convey("Then analyze refuses to run", func() {
			err := root.ExecuteContext(context.Background())
			So(err, ShouldWrap, app.ErrNoCaptures)
		})
	})
}
