package dto

import "time"

// PlanRequest describes one search. Unset fields take the server defaults.
type PlanRequest struct {
	Hub               string     `json:"hub" validate:"omitempty,alphanum,max=8"`
	StartAt           *time.Time `json:"start_at"`
	EndAt             *time.Time `json:"end_at"`
	TurnaroundMinutes *int       `json:"turnaround_minutes" validate:"omitempty,min=0,max=1440"`
	DurationScale     *float64   `json:"duration_scale" validate:"omitempty,gt=0,lte=100"`
	CloseAtHub        bool       `json:"close_at_hub"`
}

type LegResponse struct {
	Kind   string    `json:"kind"`
	Orig   string    `json:"orig"`
	Dest   string    `json:"dest"`
	DeptAt time.Time `json:"dept_at"`
	ArrvAt time.Time `json:"arrv_at"`
}

type PlanResponse struct {
	Legs           []LegResponse `json:"legs"`
	AirTimeMinutes int           `json:"air_time_minutes"`
}

type RunResponse struct {
	ID                string         `json:"id"`
	Hub               string         `json:"hub"`
	StartAt           time.Time      `json:"start_at"`
	EndAt             time.Time      `json:"end_at"`
	TurnaroundMinutes int            `json:"turnaround_minutes"`
	DurationScale     float64        `json:"duration_scale"`
	CloseAtHub        bool           `json:"close_at_hub"`
	CreatedAt         time.Time      `json:"created_at"`
	Plans             []PlanResponse `json:"plans"`
}

type RunSummaryResponse struct {
	ID        string    `json:"id"`
	Hub       string    `json:"hub"`
	StartAt   time.Time `json:"start_at"`
	EndAt     time.Time `json:"end_at"`
	PlanCount int       `json:"plan_count"`
	CreatedAt time.Time `json:"created_at"`
}

type ListRunsResponse struct {
	Runs []RunSummaryResponse `json:"runs"`
}
