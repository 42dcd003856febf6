package imputation

import (
	"math"
	"testing"

	"github.com/sjwhitworth/golearn/base"
	"github.com/smartystreets/goconvey/convey"

	adapters "github.com/wdm0006/imputer/adapters/golearn"
	j "github.com/wdm0006/imputer/pkg/frame"
	"github.com/wdm0006/imputer/pkg/transform/impute"
)

func ageAt(inst *base.DenseInstances, row int) float64 {
	for _, a := range inst.AllAttributes() {
		if a.GetName() == "Age" {
			spec, _ := inst.GetAttribute(a)
			return base.UnpackBytesToFloat(inst.Get(spec, row))
		}
	}
	return math.NaN()
}

func TestRandomRangeImputer(t *testing.T) {
	convey.Convey("Given instances with missing ages", t, func() {
		age := j.NewFloatColumnFrom("Age", []float64{22, math.NaN(), 38, math.NaN()}, nil)
		surv := j.NewStringColumnFrom("Survived", []string{"0", "1", "1", "0"}, nil)
		f, err := j.FromColumns(age, surv)
		convey.So(err, convey.ShouldBeNil)
		inst, err := adapters.ToDenseInstances(f, "Survived")
		convey.So(err, convey.ShouldBeNil)

		convey.Convey("Imputing the Age attribute", func() {
			imputer, err := NewRandomRangeImputer("Age", impute.WithRange(20, 30), impute.WithSeed(42))
			convey.So(err, convey.ShouldBeNil)
			clean, err := imputer.Transform(inst)
			convey.So(err, convey.ShouldBeNil)

			convey.Convey("fills every missing cell inside the range", func() {
				for _, r := range []int{1, 3} {
					v := ageAt(clean, r)
					convey.So(math.IsNaN(v), convey.ShouldBeFalse)
					convey.So(v, convey.ShouldBeBetweenOrEqual, 20, 30)
					convey.So(v, convey.ShouldEqual, math.Trunc(v))
				}
				convey.So(ageAt(clean, 0), convey.ShouldEqual, 22)
				convey.So(ageAt(clean, 2), convey.ShouldEqual, 38)
			})

			convey.Convey("leaves the input untouched", func() {
				convey.So(math.IsNaN(ageAt(inst, 1)), convey.ShouldBeTrue)
			})

			convey.Convey("is reproducible for the same seed", func() {
				again, err := imputer.Transform(inst)
				convey.So(err, convey.ShouldBeNil)
				convey.So(ageAt(again, 1), convey.ShouldEqual, ageAt(clean, 1))
				convey.So(ageAt(again, 3), convey.ShouldEqual, ageAt(clean, 3))
			})
		})

		convey.Convey("A categorical attribute is rejected", func() {
			imputer, err := NewRandomRangeImputer("Survived")
			convey.So(err, convey.ShouldBeNil)
			_, err = imputer.Transform(inst)
			convey.So(err, convey.ShouldNotBeNil)
		})
	})
}
