package coupler

import (
	"context"
	"math"

	ginkgo "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/coastsim/internal/bmi"
	"github.com/san-kum/coastsim/internal/engines/coastline"
	"github.com/san-kum/coastsim/internal/engines/waves"
)

var _ = ginkgo.Describe("Wave-coastline coupling", func() {
	ginkgo.It("keeps the depth field finite over a long run", func() {
		coast := bmi.Open(coastline.New())
		climate := bmi.Open(waves.New())

		Expect(coast.Initialize(bmi.Config{
			"number_of_rows": 100,
			"number_of_cols": 200,
			"grid_spacing":   200.0,
		})).To(Succeed())
		Expect(climate.Initialize(bmi.Config{
			"angle_asymmetry":       0.3,
			"angle_highness_factor": 0.3,
			"seed":                  17,
		})).To(Succeed())

		// the wave model must advance before the coastline consumes its
		// output, so it comes first in the update order
		driver := New(climate, coast)
		driver.Bind(Binding{
			Source: climate, SourceVar: waves.VarAngle,
			Target: coast, TargetVar: coastline.VarAngle,
		})
		driver.Bind(Binding{
			Source: climate, SourceVar: waves.VarHeight,
			Target: coast, TargetVar: coastline.VarHeight,
			Transform: Constant(1.5),
		})
		driver.Bind(Binding{
			Source: climate, SourceVar: waves.VarPeriod,
			Target: coast, TargetVar: coastline.VarPeriod,
			Transform: Constant(7.0),
		})

		result, err := driver.Run(context.Background(), 3000)
		Expect(err).ToNot(HaveOccurred())
		Expect(result.StepsTaken).To(Equal(3000))

		v, ok := coast.Var(coastline.VarDepth)
		Expect(ok).To(BeTrue())
		g, ok := coast.Grid(v.Grid)
		Expect(ok).To(BeTrue())
		Expect(g.Shape).To(Equal([]int{100, 200}))

		depth, err := coast.GetValue(coastline.VarDepth, nil)
		Expect(err).ToNot(HaveOccurred())
		Expect(depth).To(HaveLen(100 * 200))
		for _, d := range depth {
			Expect(math.IsNaN(d)).To(BeFalse())
			Expect(math.IsInf(d, 0)).To(BeFalse())
		}
	})
})
