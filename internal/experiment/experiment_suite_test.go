package experiment_test

import (
	"context"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/debrislab/internal/experiment"
	"github.com/san-kum/debrislab/internal/scenario"
)

func TestExperimentSuite(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Experiment Suite")
}

var _ = Describe("Ensemble", func() {
	var cfg experiment.Config

	BeforeEach(func() {
		cfg = experiment.Config{Dt: 0.01, Duration: 1.5}
	})

	It("produces one result per seed", func() {
		scn, err := scenario.Get("single")
		Expect(err).NotTo(HaveOccurred())

		ens := experiment.NewEnsemble(cfg, scn, 3, 7, experiment.DefaultMetrics)
		results, err := ens.Run(context.Background())
		Expect(err).NotTo(HaveOccurred())
		Expect(results).To(HaveLen(3))

		for _, r := range results {
			Expect(r.Spawned).To(Equal(20))
			Expect(r.Metrics).To(HaveKey("kinetic_energy"))
		}
	})

	It("scatters debris differently across seeds", func() {
		scn, err := scenario.Get("single")
		Expect(err).NotTo(HaveOccurred())

		ens := experiment.NewEnsemble(cfg, scn, 2, 7, experiment.DefaultMetrics)
		results, err := ens.Run(context.Background())
		Expect(err).NotTo(HaveOccurred())

		Expect(results[0].Metrics["kinetic_energy"]).NotTo(Equal(results[1].Metrics["kinetic_energy"]))
	})

	It("reproduces runs for a fixed seed window", func() {
		scn, err := scenario.Get("single")
		Expect(err).NotTo(HaveOccurred())

		first, err := experiment.NewEnsemble(cfg, scn, 2, 11, experiment.DefaultMetrics).Run(context.Background())
		Expect(err).NotTo(HaveOccurred())
		second, err := experiment.NewEnsemble(cfg, scn, 2, 11, experiment.DefaultMetrics).Run(context.Background())
		Expect(err).NotTo(HaveOccurred())

		Expect(second[0].Metrics).To(Equal(first[0].Metrics))
		Expect(second[1].Samples).To(Equal(first[1].Samples))
	})
})

var _ = Describe("Sweep", func() {
	build := func(params map[string]float64) (*experiment.Experiment, error) {
		scn := &scenario.Scenario{
			Name:     "sweep-point",
			Duration: 0.5,
			Bursts: []scenario.Burst{{
				At: 0, X: 600, Y: 400, Force: 200,
				Count: int(params["count"]), Kind: "soft",
			}},
		}
		exp := experiment.New(experiment.Config{Dt: 0.01, Seed: 5})
		if err := exp.Setup(scn, experiment.DefaultMetrics()); err != nil {
			return nil, err
		}
		return exp, nil
	}

	It("finds the grid point minimizing a metric", func() {
		sw := experiment.NewSweep([]string{"count"}, [][]float64{{5, 10, 20}})
		best, val, err := sw.Search(context.Background(), build, "peak_count", true)
		Expect(err).NotTo(HaveOccurred())
		Expect(best["count"]).To(Equal(5.0))
		Expect(val).To(Equal(5.0))
		Expect(sw.Evaluations).To(HaveLen(3))
	})

	It("maximizes when asked", func() {
		sw := experiment.NewSweep([]string{"count"}, [][]float64{{5, 10, 20}})
		best, val, err := sw.Search(context.Background(), build, "peak_count", false)
		Expect(err).NotTo(HaveOccurred())
		Expect(best["count"]).To(Equal(20.0))
		Expect(val).To(Equal(20.0))
	})
})
