package types

// QueryOptions are the option flags sent with every solver query.
type QueryOptions struct {
	Offensive bool `json:"offensive"`
	NounsOnly bool `json:"nounsOnly"`
}

// SolverResponse is a decoded and validated solver answer.
type SolverResponse struct {
	Query string   `json:"q"`
	Count int      `json:"c"`
	Words []string `json:"w"`
}
