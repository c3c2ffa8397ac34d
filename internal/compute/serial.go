package compute

// Serial runs every group and lane on the calling goroutine. It is the
// reference backend: deterministic, no synchronization, and the
// semantics every parallel backend must match.
type Serial struct{}

func NewSerial() *Serial { return &Serial{} }

func (s *Serial) Name() string    { return "serial" }
func (s *Serial) Available() bool { return true }
func (s *Serial) Cleanup()        {}

func (s *Serial) Run(groups, width int, phases []Phase) {
	for g := 0; g < groups; g++ {
		for _, phase := range phases {
			for lane := 0; lane < width; lane++ {
				phase(g, lane)
			}
		}
	}
}
