package dto

type LoadInput struct {
	Ref     string
	StartMs int
}

type StatusOutput struct {
	Ref        string
	Path       string
	Loaded     bool
	Playing    bool
	Completed  bool
	PositionMs int
	DurationMs int
	Rate       float64
}
