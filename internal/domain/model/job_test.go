package model_test

import (
	"testing"

	model "github.com/okian/aucscore/internal/domain/model"
	"github.com/smartystreets/goconvey/convey"
)

func TestSubmissionIDFromPath(t *testing.T) {
	convey.Convey("Given submission file paths", t, func() {
		convey.Convey("When the file has an extension", func() {
			convey.So(model.SubmissionIDFromPath("/data/subs/team-a.csv"), convey.ShouldEqual, "team-a")
		})

		convey.Convey("When the file has several dots", func() {
			convey.So(model.SubmissionIDFromPath("runs/v1.2.csv"), convey.ShouldEqual, "v1.2")
		})

		convey.Convey("When the file has no extension", func() {
			convey.So(model.SubmissionIDFromPath("subs/final"), convey.ShouldEqual, "final")
		})

		convey.Convey("When the name is only an extension", func() {
			convey.So(model.SubmissionIDFromPath(".csv"), convey.ShouldEqual, ".csv")
		})
	})
}

func TestSubmissionIDs(t *testing.T) {
	convey.Convey("Given the files of one ranking run", t, func() {
		convey.Convey("When every file name is distinct", func() {
			ids := model.SubmissionIDs([]string{"a/perfect.csv", "b/okay.csv"})

			convey.Convey("Then the file names are the ids", func() {
				convey.So(ids, convey.ShouldResemble, []string{"perfect", "okay"})
			})
		})

		convey.Convey("When teams use the same file names", func() {
			ids := model.SubmissionIDs([]string{
				"runs/team_a/submission.csv",
				"runs/team_b/submission.csv",
				"runs/team_b/bad.csv",
				"runs/team_a/bad.csv",
			})

			convey.Convey("Then the team directory tells them apart", func() {
				convey.So(ids, convey.ShouldResemble, []string{
					"team_a/submission",
					"team_b/submission",
					"team_b/bad",
					"team_a/bad",
				})
			})
		})

		convey.Convey("When only some names collide", func() {
			ids := model.SubmissionIDs([]string{"subs/a/final.csv", "subs/b/final.csv", "subs/c/other.csv"})

			convey.Convey("Then only the colliding ones are qualified", func() {
				convey.So(ids, convey.ShouldResemble, []string{"a/final", "b/final", "other"})
			})
		})

		convey.Convey("When names differ only by extension", func() {
			ids := model.SubmissionIDs([]string{"x/sub.csv", "x/sub.txt"})

			convey.Convey("Then the extension is kept", func() {
				convey.So(ids, convey.ShouldResemble, []string{"sub.csv", "sub.txt"})
			})
		})

		convey.Convey("When the same path is given twice", func() {
			ids := model.SubmissionIDs([]string{"x/a.csv", "x/a.csv"})

			convey.Convey("Then the second one is numbered", func() {
				convey.So(ids, convey.ShouldResemble, []string{"a.csv", "a.csv#2"})
			})
		})
	})
}

func TestNewJob(t *testing.T) {
	convey.Convey("Given a path and digest", t, func() {
		job := model.NewJob("team-b", "subs/team-b.csv", "abc")

		convey.Convey("Then the job carries both and a timestamp", func() {
			convey.So(job.SubmissionID, convey.ShouldEqual, "team-b")
			convey.So(job.Path, convey.ShouldEqual, "subs/team-b.csv")
			convey.So(job.Digest, convey.ShouldEqual, "abc")
			convey.So(job.EnqueuedAt.IsZero(), convey.ShouldBeFalse)
		})
	})
}
