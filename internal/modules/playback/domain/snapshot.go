package domain

type Snapshot struct {
	Ref        string
	Path       string
	Loaded     bool
	Playing    bool
	Completed  bool
	PositionMs int
	DurationMs int
	Rate       float64
}
