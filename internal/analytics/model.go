package analytics

// readyNowThreshold is the readiness score from which an employee counts as ready now.
const readyNowThreshold = 80

type Personal struct {
	ActivePlans       int `json:"activePlans"`
	CompletedLearning int `json:"completedLearning"`
	Achievements      int `json:"achievements"`
	AvgProgress       int `json:"avgProgress"`
}

type Organizational struct {
	TotalEmployees   int `json:"totalEmployees"`
	HighPotential    int `json:"highPotential"`
	ReadyNow         int `json:"readyNow"`
	InDevelopment    int `json:"inDevelopment"`
	SuccessionHealth int `json:"successionHealth"`
}

// Dashboard carries the organizational block only for privileged users.
type Dashboard struct {
	Personal       Personal        `json:"personal"`
	Organizational *Organizational `json:"organizational"`
}

type DepartmentHealth struct {
	Department    string `json:"department"`
	Total         int    `json:"total"`
	HighPotential int    `json:"highPotential"`
	ReadyNow      int    `json:"readyNow"`
	HealthScore   int    `json:"healthScore"`
}
