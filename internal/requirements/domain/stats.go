package domain

// StageCount is the number of requirements currently in a stage.
type StageCount struct {
	Stage Stage `json:"stage"`
	Count int   `json:"count"`
}

// Stats is the dashboard aggregation over the current requirement list.
type Stats struct {
	Total           int          `json:"total"`
	UniqueAssignees int          `json:"unique_assignees"`
	HighPriority    int          `json:"high_priority"`
	PostLaunch      int          `json:"post_launch"`
	ByStage         []StageCount `json:"by_stage"`
}

// ComputeStats derives the dashboard counters. Every stage is reported in
// enumeration order, including those with no requirements. Assignees are
// compared exactly (case-sensitive).
func ComputeStats(reqs []Requirement) Stats {
	idx := make(map[Stage]int, len(stageOrder))
	byStage := make([]StageCount, len(stageOrder))
	for i, s := range stageOrder {
		idx[s] = i
		byStage[i] = StageCount{Stage: s}
	}

	assignees := make(map[string]struct{}, len(reqs))
	st := Stats{Total: len(reqs), ByStage: byStage}
	for _, r := range reqs {
		assignees[r.Assignee] = struct{}{}
		if r.Priority == PriorityHigh {
			st.HighPriority++
		}
		if i, ok := idx[r.Stage]; ok {
			byStage[i].Count++
		}
	}
	st.UniqueAssignees = len(assignees)
	st.PostLaunch = byStage[idx[StagePostLaunch]].Count

	return st
}

// ChartSlice is one segment of the stage pie chart.
type ChartSlice struct {
	Stage Stage  `json:"stage"`
	Count int    `json:"count"`
	Color string `json:"color"`
}

// StageChart returns the pie chart series: stages in enumeration order with
// empty stages left out.
func StageChart(reqs []Requirement) []ChartSlice {
	out := make([]ChartSlice, 0, len(stageOrder))
	for _, sc := range ComputeStats(reqs).ByStage {
		if sc.Count == 0 {
			continue
		}
		out = append(out, ChartSlice{Stage: sc.Stage, Count: sc.Count, Color: sc.Stage.Color()})
	}
	return out
}
