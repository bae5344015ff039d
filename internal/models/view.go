package models

// DashboardView is the full output of one refresh cycle: the five panels plus
// the summary. Message is empty on success; on an internal failure every
// figure is an empty placeholder and Message carries the user-visible text.
type DashboardView struct {
	Map           *Figure `json:"map"`
	TimeSeries    *Figure `json:"time_series"`
	Distribution  *Figure `json:"distribution"`
	RegionBoxplot *Figure `json:"region_boxplot"`
	Scatter       *Figure `json:"scatter"`
	Summary       Summary `json:"summary"`
	Message       string  `json:"message,omitempty"`
}

// FilterOptions drives the two selector controls.
type FilterOptions struct {
	Years         []int    `json:"years"`
	Regions       []string `json:"regions"`
	DefaultYear   int      `json:"default_year"`
	DefaultRegion string   `json:"default_region"`
}
