package sim_test

import (
	"errors"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/voigtsim/internal/sim"
	"github.com/san-kum/voigtsim/internal/voigt"
)

var rubberBand = voigt.Params{L0: 1.0, E: 2.0e6, F: 150.0, V: 0.001, Eta: 5e5}

var _ = Describe("Grid", func() {
	DescribeTable("covers the horizon",
		func(dt, duration float64, wantLen int) {
			times, err := sim.Grid(sim.Config{Dt: dt, Duration: duration})
			Expect(err).NotTo(HaveOccurred())
			Expect(times).To(HaveLen(wantLen))
			Expect(times[0]).To(Equal(0.0))

			for i := 1; i < len(times); i++ {
				Expect(times[i]).To(BeNumerically(">", times[i-1]))
			}

			last := times[len(times)-1]
			Expect(last).To(BeNumerically(">=", duration))
			Expect(last).To(BeNumerically("<", duration+dt))
		},
		Entry("default grid", 0.1, 20.0, 201),
		Entry("exact multiple", 0.5, 2.0, 5),
		Entry("partial last step", 0.3, 1.0, 5),
		Entry("horizon below one step", 1.0, 0.25, 2),
		Entry("fine grid", 0.001, 3.0, 3001),
		Entry("awkward step", 0.7, 7.0, 11),
	)

	DescribeTable("rejects invalid configs",
		func(cfg sim.Config, want error) {
			_, err := sim.Grid(cfg)
			Expect(err).To(MatchError(want))
		},
		Entry("zero dt", sim.Config{Dt: 0, Duration: 1}, sim.ErrInvalidConfig),
		Entry("negative dt", sim.Config{Dt: -0.1, Duration: 1}, sim.ErrInvalidConfig),
		Entry("NaN dt", sim.Config{Dt: math.NaN(), Duration: 1}, sim.ErrInvalidConfig),
		Entry("zero duration", sim.Config{Dt: 0.1, Duration: 0}, sim.ErrInvalidConfig),
		Entry("infinite duration", sim.Config{Dt: 0.1, Duration: math.Inf(1)}, sim.ErrInvalidConfig),
		Entry("negative limit", sim.Config{Dt: 0.1, Duration: 1, MaxSamples: -1}, sim.ErrInvalidConfig),
		Entry("grid too large", sim.Config{Dt: 1e-12, Duration: 1e3}, sim.ErrGridTooLarge),
		Entry("over explicit limit", sim.Config{Dt: 0.1, Duration: 20, MaxSamples: 100}, sim.ErrGridTooLarge),
	)
})

var _ = Describe("Simulate", func() {
	It("produces 201 aligned samples for the default scenario", func() {
		series, err := sim.Simulate(rubberBand, sim.DefaultConfig())
		Expect(err).NotTo(HaveOccurred())
		Expect(series.Len()).To(Equal(201))
		Expect(series.Lengths).To(HaveLen(len(series.Times)))
		Expect(series.Times[0]).To(Equal(0.0))
		Expect(series.Times[200]).To(BeNumerically("~", 20.0, 1e-12))
		Expect(series.Lengths[0]).To(BeNumerically("~", 1.0, 1e-12))

		for i, t := range series.Times {
			want, err := rubberBand.Length(t)
			Expect(err).NotTo(HaveOccurred())
			Expect(series.Lengths[i]).To(Equal(want))
		}
	})

	It("settles toward the asymptote", func() {
		series, err := sim.Simulate(rubberBand, sim.DefaultConfig())
		Expect(err).NotTo(HaveOccurred())

		limit, ok := rubberBand.Asymptote()
		Expect(ok).To(BeTrue())

		_, final, ok := series.Final()
		Expect(ok).To(BeTrue())
		Expect(final).To(BeNumerically("~", limit, 1e-9))
	})

	It("fails as a whole on degenerate parameters", func() {
		degenerate := voigt.Params{L0: 1.0, E: 1000.0, F: 1000.0, V: 1.0, Eta: 1.0}
		series, err := sim.Simulate(degenerate, sim.DefaultConfig())
		Expect(err).To(MatchError(voigt.ErrDegenerateParameters))
		Expect(series).To(BeNil())

		var degErr *voigt.DegenerateParametersError
		Expect(errors.As(err, &degErr)).To(BeTrue())
		Expect(degErr.Params).To(Equal(degenerate))
	})

	It("accepts the soft scenario", func() {
		soft := voigt.Params{L0: 1.0, E: 1000.0, F: 1.0, V: 1.0, Eta: 1.0}
		series, err := sim.Simulate(soft, sim.Config{Dt: 0.01, Duration: 1})
		Expect(err).NotTo(HaveOccurred())
		for _, l := range series.Lengths {
			Expect(math.IsNaN(l) || math.IsInf(l, 0)).To(BeFalse())
		}
	})

	It("reports config errors before degeneracy", func() {
		degenerate := voigt.Params{L0: 1.0, E: 1000.0, F: 1000.0, V: 1.0, Eta: 1.0}
		_, err := sim.Simulate(degenerate, sim.Config{Dt: -1, Duration: 1})
		Expect(err).To(MatchError(sim.ErrInvalidConfig))
	})
})

var _ = Describe("Walk", func() {
	It("visits the same samples as Simulate", func() {
		cfg := sim.Config{Dt: 0.25, Duration: 3}
		series, err := sim.Simulate(rubberBand, cfg)
		Expect(err).NotTo(HaveOccurred())

		var times, lengths []float64
		err = sim.Walk(rubberBand, cfg, func(t, l float64) bool {
			times = append(times, t)
			lengths = append(lengths, l)
			return true
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(times).To(Equal(series.Times))
		Expect(lengths).To(Equal(series.Lengths))
	})

	It("stops when the callback returns false and restarts from zero", func() {
		cfg := sim.DefaultConfig()
		for run := 0; run < 2; run++ {
			var seen []float64
			err := sim.Walk(rubberBand, cfg, func(t, _ float64) bool {
				seen = append(seen, t)
				return len(seen) < 3
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(seen).To(HaveLen(3))
			Expect(seen[0]).To(Equal(0.0))
		}
	})

	It("does not call back for degenerate parameters", func() {
		degenerate := voigt.Params{L0: 1.0, E: 1000.0, F: 1000.0, V: 1.0, Eta: 1.0}
		calls := 0
		err := sim.Walk(degenerate, sim.DefaultConfig(), func(float64, float64) bool {
			calls++
			return true
		})
		Expect(err).To(MatchError(voigt.ErrDegenerateParameters))
		Expect(calls).To(BeZero())
	})
})

var _ = Describe("SimulateParallel", func() {
	DescribeTable("matches Simulate",
		func(cfg sim.Config, workers int) {
			want, err := sim.Simulate(rubberBand, cfg)
			Expect(err).NotTo(HaveOccurred())

			got, err := sim.SimulateParallel(rubberBand, cfg, workers)
			Expect(err).NotTo(HaveOccurred())
			Expect(got.Times).To(Equal(want.Times))
			Expect(got.Lengths).To(Equal(want.Lengths))
		},
		Entry("small grid stays serial", sim.DefaultConfig(), 4),
		Entry("large grid", sim.Config{Dt: 1e-4, Duration: 5}, 4),
		Entry("default workers", sim.Config{Dt: 1e-4, Duration: 5}, 0),
	)

	It("propagates degeneracy", func() {
		degenerate := voigt.Params{L0: 1.0, E: 1000.0, F: 1000.0, V: 1.0, Eta: 1.0}
		_, err := sim.SimulateParallel(degenerate, sim.DefaultConfig(), 2)
		Expect(err).To(MatchError(voigt.ErrDegenerateParameters))
	})
})

var _ = Describe("ParallelFor", func() {
	It("covers every index exactly once", func() {
		n := 10_000
		hits := make([]int, n)
		sim.ParallelFor(n, 3, 100, func(start, end int) {
			for i := start; i < end; i++ {
				hits[i]++
			}
		})
		for _, h := range hits {
			Expect(h).To(Equal(1))
		}
	})
})

var _ = Describe("SimulateAll", func() {
	It("returns one series per parameter set in order", func() {
		soft := voigt.Params{L0: 1.0, E: 1000.0, F: 1.0, V: 1.0, Eta: 1.0}
		results, err := sim.SimulateAll([]voigt.Params{rubberBand, soft}, sim.DefaultConfig())
		Expect(err).NotTo(HaveOccurred())
		Expect(results).To(HaveLen(2))

		single, _ := sim.Simulate(soft, sim.DefaultConfig())
		Expect(results[1].Lengths).To(Equal(single.Lengths))
	})

	It("fails if any parameter set is degenerate", func() {
		degenerate := voigt.Params{L0: 1.0, E: 1000.0, F: 1000.0, V: 1.0, Eta: 1.0}
		_, err := sim.SimulateAll([]voigt.Params{rubberBand, degenerate}, sim.DefaultConfig())
		Expect(err).To(MatchError(voigt.ErrDegenerateParameters))
	})
})
