package cli_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/katalvlaran/allot/internal/cli"
)

const scenarioD = "1 1 2\n1 1 1\n1 0 1\n1 1 1\n2 1 1\n"

func run(stdin string, args ...string) (string, string, error) {
	var stdout, stderr bytes.Buffer
	cmd := cli.NewCommand(strings.NewReader(stdin), &stdout, &stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()

	return stdout.String(), stderr.String(), err
}

var _ = Describe("allot", func() {
	Context("reading stdin", func() {
		It("prints the optimum", func() {
			out, _, err := run(scenarioD)
			Expect(err).NotTo(HaveOccurred())
			Expect(out).To(Equal("1\n"))
		})

		It("prints -1 for an infeasible instance", func() {
			out, _, err := run("1 1 1\n1 1 1\n1 0 2\n1 1 1\n")
			Expect(err).NotTo(HaveOccurred())
			Expect(out).To(Equal("-1\n"))
		})

		It("prints -1 for malformed input without failing", func() {
			out, _, err := run("1 1 1\n1 x 1\n")
			Expect(err).NotTo(HaveOccurred())
			Expect(out).To(Equal("-1\n"))
		})

		DescribeTable("agrees across engines and worker counts",
			func(args ...string) {
				out, _, err := run(scenarioD, args...)
				Expect(err).NotTo(HaveOccurred())
				Expect(out).To(Equal("1\n"))
			},
			Entry("gonum", "--relaxation", "gonum"),
			Entry("parallel", "--workers", "3"),
			Entry("no flow check", "--region-flow=false"),
		)
	})

	Context("with files", func() {
		var dir string

		BeforeEach(func() {
			dir = GinkgoT().TempDir()
		})

		It("reads a YAML instance", func() {
			path := filepath.Join(dir, "instance.yaml")
			Expect(os.WriteFile(path, []byte(`
producers: [{id: 1, region: 1, capacity: 2}]
regions: [{id: 1, exportQuota: 0, minFulfillment: 0}]
requesters: [{id: 1, region: 1, wants: [1]}, {id: 2, region: 1, wants: [1]}]
`), 0o600)).To(Succeed())

			out, _, err := run("", "--input", path, "--format", "yaml")
			Expect(err).NotTo(HaveOccurred())
			Expect(out).To(Equal("2\n"))
		})

		It("writes the assignment and metrics", func() {
			prom := filepath.Join(dir, "allot.prom")
			out, errOut, err := run(scenarioD, "--assignment", "--metrics-out", prom)
			Expect(err).NotTo(HaveOccurred())
			Expect(out).To(Equal("1\n"))
			Expect(errOut).To(MatchRegexp(`requester [12] <- producer 1`))

			data, err := os.ReadFile(prom)
			Expect(err).NotTo(HaveOccurred())
			Expect(string(data)).To(ContainSubstring(`allot_solves_total{status="optimal"} 1`))
		})

		It("takes defaults from a config file", func() {
			cfg := filepath.Join(dir, "allot.yaml")
			Expect(os.WriteFile(cfg, []byte("format: yaml\n"), 0o600)).To(Succeed())

			out, _, err := run("producers: []\nregions: [{id: 1, exportQuota: 0, minFulfillment: 0}]\n", "--config", cfg)
			Expect(err).NotTo(HaveOccurred())
			Expect(out).To(Equal("0\n"))
		})

		It("fails on a missing input file", func() {
			_, _, err := run("", "--input", filepath.Join(dir, "absent"))
			Expect(err).To(MatchError(ContainSubstring("open input")))
		})
	})

	Context("with bad settings", func() {
		It("rejects invalid values", func() {
			_, _, err := run(scenarioD, "--workers", "0")
			Expect(err).To(HaveOccurred())

			_, _, err = run(scenarioD, "--relaxation", "simplex2")
			Expect(err).To(HaveOccurred())
		})

		It("rejects positional arguments", func() {
			_, _, err := run(scenarioD, "instance.txt")
			Expect(err).To(HaveOccurred())
		})

		It("logs at the requested verbosity", func() {
			_, errOut, err := run(scenarioD, "--log-level", "info", "--log-format", "json")
			Expect(err).NotTo(HaveOccurred())
			Expect(errOut).To(ContainSubstring(`"msg":"solved"`))
		})
	})
})
