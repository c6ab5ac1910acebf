package monitoring

import (
	"encoding/json"
	"net/http/httptest"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/cnbltyasar/sdramsim/sim"
)

type namedComp struct {
	name string
}

func (c namedComp) Name() string {
	return c.name
}

var _ = Describe("Monitor", func() {
	var m *Monitor

	BeforeEach(func() {
		m = NewMonitor()
		m.RegisterEngine(sim.NewSerialEngine())
	})

	It("should list registered components", func() {
		m.RegisterComponent(namedComp{name: "Ctrl"})
		m.RegisterComponent(namedComp{name: "Device"})

		w := httptest.NewRecorder()
		m.listComponents(w, httptest.NewRequest(
			"GET", "/api/list_components", nil))

		Expect(w.Body.String()).To(Equal(`["Ctrl","Device"]`))
	})

	It("should report the simulated time", func() {
		w := httptest.NewRecorder()
		m.now(w, httptest.NewRequest("GET", "/api/now", nil))

		rsp := map[string]float64{}
		Expect(json.Unmarshal(w.Body.Bytes(), &rsp)).To(Succeed())
		Expect(rsp["now"]).To(BeZero())
	})

	It("should track progress bars", func() {
		bar := m.CreateProgressBar("Workload", 100)
		bar.IncrementFinished(40)

		w := httptest.NewRecorder()
		m.listProgressBars(w, httptest.NewRequest(
			"GET", "/api/progress", nil))

		var bars []ProgressBar
		Expect(json.Unmarshal(w.Body.Bytes(), &bars)).To(Succeed())
		Expect(bars).To(HaveLen(1))
		Expect(bars[0].Name).To(Equal("Workload"))
		Expect(bars[0].Finished).To(Equal(uint64(40)))

		m.CompleteProgressBar(bar)

		w = httptest.NewRecorder()
		m.listProgressBars(w, httptest.NewRequest(
			"GET", "/api/progress", nil))

		bars = nil
		Expect(json.Unmarshal(w.Body.Bytes(), &bars)).To(Succeed())
		Expect(bars).To(BeEmpty())
	})

	It("should 404 on unknown components", func() {
		w := httptest.NewRecorder()
		found := m.findComponentOr404(w, "Nope")

		Expect(found).To(BeNil())
		Expect(w.Code).To(Equal(404))
	})

	It("should fall back to a random port for privileged ports", func() {
		m.WithPortNumber(80)

		Expect(m.portNumber).To(BeZero())
	})
})
