package scoring

import (
	"errors"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestTreatAsParticipantError(t *testing.T) {
	Convey("Given metric error messages", t, func() {
		Convey("Messages without digits pass for a numeric solution", func() {
			So(TreatAsParticipantError("Input contains NaN.", true, false), ShouldBeTrue)
		})

		Convey("Any digit keeps the message internal", func() {
			So(TreatAsParticipantError("shape mismatch: [3, 2]", true, false), ShouldBeFalse)
			So(TreatAsParticipantError("row 7 is bad", true, true), ShouldBeFalse)
		})

		Convey("A non-numeric solution keeps every message internal", func() {
			So(TreatAsParticipantError("Input contains NaN.", false, false), ShouldBeFalse)
		})

		Convey("Bool solutions reject true and false in any case", func() {
			So(TreatAsParticipantError("expected True labels", true, true), ShouldBeFalse)
			So(TreatAsParticipantError("got false", true, true), ShouldBeFalse)
			So(TreatAsParticipantError("got false", true, false), ShouldBeTrue)
		})
	})
}

func TestSafeCall(t *testing.T) {
	Convey("Given a metric function", t, func() {
		Convey("When it succeeds", func() {
			score, err := safeCall(func() (float64, error) { return 0.5, nil }, true, false)

			Convey("Then the score passes through", func() {
				So(err, ShouldBeNil)
				So(score, ShouldEqual, 0.5)
			})
		})

		Convey("When it panics", func() {
			score, err := safeCall(func() (float64, error) { panic("boom") }, true, false)

			Convey("Then the panic becomes an internal error", func() {
				So(score, ShouldEqual, 0)
				So(errors.Is(err, ErrMetricPanic), ShouldBeTrue)
				So(KindOf(err), ShouldEqual, KindInternal)
			})
		})

		Convey("When it returns an already classified error", func() {
			orig := participantError(errors.New("bad 1"))
			_, err := safeCall(func() (float64, error) { return 0, orig }, true, false)

			Convey("Then the classification is kept", func() {
				So(err, ShouldEqual, orig)
				So(KindOf(err), ShouldEqual, KindParticipant)
			})
		})

		Convey("When it returns a plain error", func() {
			_, safe := safeCall(func() (float64, error) { return 0, errors.New("scores must be finite") }, true, false)
			_, leaky := safeCall(func() (float64, error) { return 0, errors.New("label 42 unknown") }, true, false)

			Convey("Then the message heuristic decides the kind", func() {
				So(KindOf(safe), ShouldEqual, KindParticipant)
				So(KindOf(leaky), ShouldEqual, KindInternal)
				So(PublicMessage(leaky), ShouldEqual, redactedMessage)
			})
		})
	})
}
