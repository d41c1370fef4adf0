package results_test

import (
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"

	"github.com/mason-leap-lab/gmbcplot/common/results"
)

var _ = Describe("Locator", func() {
	It("should name files like the ARS scripts", func() {
		locator := results.NewLocator("results", results.DefaultProfile())
		Expect(locator.VanillaSurvival(1000)).To(Equal("spot_ars_vanilla_survival_1000"))
		Expect(locator.AgentSurvival(579, 1000)).To(Equal("spot_ars_agent_579_survival_1000"))
		Expect(locator.RandTraining(3)).To(Equal("spot_ars_rand_seed3.npy"))
		Expect(locator.NoRandTraining(0)).To(Equal("spot_ars_norand_seed0.npy"))
		Expect(locator.Path("x")).To(Equal(filepath.Join("results", "x")))
	})
})

var _ = Describe("Profile", func() {
	var dir string

	BeforeEach(func() {
		var err error
		dir, err = os.MkdirTemp("", "profile")
		Expect(err).To(BeNil())
	})

	AfterEach(func() {
		os.RemoveAll(dir)
	})

	It("should overlay a YAML file on the defaults", func() {
		path := filepath.Join(dir, "profile.yml")
		Expect(os.WriteFile(path, []byte("prefix: minitaur_\nrand_label: Randomized\n"), 0644)).To(Succeed())

		profile, err := results.LoadProfile(path)
		Expect(err).To(BeNil())
		Expect(profile.Prefix).To(Equal("minitaur_"))
		Expect(profile.RandLabel).To(Equal("Randomized"))
		Expect(profile.VanillaLabel).To(Equal("Vanilla"))

		locator := results.NewLocator(dir, profile)
		Expect(locator.VanillaSurvival(10)).To(Equal("minitaur_vanilla_survival_10"))
	})

	It("should fall back to labels for unset summary names", func() {
		path := filepath.Join(dir, "profile.yml")
		Expect(os.WriteFile(path, []byte("rand_summary: \"\"\nrand_label: Randomized\n"), 0644)).To(Succeed())

		profile, err := results.LoadProfile(path)
		Expect(err).To(BeNil())
		Expect(results.SummaryName(profile.RandSummary, profile.RandLabel)).To(Equal("Randomized"))
		Expect(results.SummaryName(profile.NoRandSummary, profile.NoRandLabel)).To(Equal("NOT RANDOM"))
	})

	It("should reject unknown fields", func() {
		path := filepath.Join(dir, "profile.yml")
		Expect(os.WriteFile(path, []byte("prefixx: oops\n"), 0644)).To(Succeed())

		_, err := results.LoadProfile(path)
		Expect(err).To(HaveOccurred())
	})

	It("should reject empty templates", func() {
		path := filepath.Join(dir, "profile.yml")
		Expect(os.WriteFile(path, []byte("agent_survival: \"\"\n"), 0644)).To(Succeed())

		_, err := results.LoadProfile(path)
		Expect(err).To(HaveOccurred())
	})
})
