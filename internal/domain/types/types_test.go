package types_test

import (
	"encoding/json"
	"testing"

	types "github.com/okian/aucscore/internal/domain/types"
	. "github.com/smartystreets/goconvey/convey"
)

func TestEntryJSON(t *testing.T) {
	Convey("Given a leaderboard entry", t, func() {
		entry := types.Entry{Rank: 1, SubmissionID: "team-a", Score: 0.75, Scored: []string{"A"}}

		Convey("When encoding it", func() {
			data, err := json.Marshal(entry)

			Convey("Then the wire names are snake case and empty lists are omitted", func() {
				So(err, ShouldBeNil)
				So(string(data), ShouldEqual, `{"rank":1,"submission_id":"team-a","score":0.75,"scored_columns":["A"]}`)
			})
		})
	})
}

func TestFailureJSON(t *testing.T) {
	Convey("Given a failure without a path", t, func() {
		f := types.Failure{SubmissionID: "team-b", Kind: "participant", Message: "Input contains NaN."}

		Convey("When encoding it", func() {
			data, err := json.Marshal(f)

			Convey("Then the path is omitted", func() {
				So(err, ShouldBeNil)
				So(string(data), ShouldEqual, `{"submission_id":"team-b","kind":"participant","message":"Input contains NaN."}`)
			})
		})
	})
}
