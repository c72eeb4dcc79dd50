package dto

import "time"

type HandoffInput struct {
	DocumentRef string
	Subject     string
	Body        string
	MIME        string
	Count       int
	Preferred   string
}

type HandoffOutput struct {
	Route    string
	Target   string
	Location string
}

type TargetInfo struct {
	Name      string
	Kind      string
	Available bool
	Detail    string
}

type DoctorResult struct {
	Name            string
	ChecksumValid   bool
	BinaryReachable bool
	LifecycleOK     bool
	Error           string
}

type HistoryEntry struct {
	ID          string
	DocumentRef string
	Subject     string
	Count       int
	Route       string
	Target      string
	ExportedAt  time.Time
}
