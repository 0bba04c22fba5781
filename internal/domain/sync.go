package domain

import "time"

type TableSyncResult struct {
	Table       string `json:"table"`
	LocalCount  int    `json:"local_count"`
	RemoteCount int    `json:"remote_count"`
	Pushed      int    `json:"pushed"`
	Pulled      int    `json:"pulled"`
	Failed      int    `json:"failed"`
}

type SyncReport struct {
	StartedAt  time.Time         `json:"started_at"`
	FinishedAt time.Time         `json:"finished_at"`
	Tables     []TableSyncResult `json:"tables"`
}

func (r *SyncReport) Failed() int {
	n := 0
	for _, t := range r.Tables {
		n += t.Failed
	}
	return n
}
