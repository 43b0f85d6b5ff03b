package delivery

// ReadyFrames is the number of consecutive qualifying frames required
// before a pending item may be delivered.
const ReadyFrames = 6

// Status is the player state sampled once per frame.
type Status struct {
	Scene          uint8 `json:"scene"`
	Paused         bool  `json:"paused,omitempty"`
	InCutscene     bool  `json:"in_cutscene,omitempty"`
	InShop         bool  `json:"in_shop,omitempty"`
	InMinigame     bool  `json:"in_minigame,omitempty"`
	MessageBoxOpen bool  `json:"message_box_open,omitempty"`
	ReceivingItem  bool  `json:"receiving_item,omitempty"`
	Climbing       bool  `json:"climbing,omitempty"`
	Swimming       bool  `json:"swimming,omitempty"`
	RidingEpona    bool  `json:"riding_epona,omitempty"`
	HoldingActor   bool  `json:"holding_actor,omitempty"`
	Airborne       bool  `json:"airborne,omitempty"`
	Dead           bool  `json:"dead,omitempty"`
}

// Qualifies reports whether an item could be handed to the player this frame.
func (s Status) Qualifies() bool {
	switch {
	case s.Paused, s.InCutscene, s.InShop, s.InMinigame:
		return false
	case s.MessageBoxOpen, s.ReceivingItem:
		return false
	case s.Climbing, s.Swimming, s.RidingEpona, s.HoldingActor, s.Airborne:
		return false
	case s.Dead:
		return false
	}
	return true
}

// Gate debounces delivery: it opens only after ReadyFrames qualifying
// frames in a row and closes again on any disqualifying frame.
type Gate struct {
	frames int
}

// Update records one frame and reports whether the gate is open.
func (g *Gate) Update(s Status) bool {
	if !s.Qualifies() {
		g.frames = 0
		return false
	}
	if g.frames < ReadyFrames {
		g.frames++
	}
	return g.Open()
}

func (g *Gate) Open() bool {
	return g.frames >= ReadyFrames
}

func (g *Gate) Frames() int {
	return g.frames
}

// Reset closes the gate, e.g. right after an item was delivered.
func (g *Gate) Reset() {
	g.frames = 0
}
