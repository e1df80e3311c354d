package domain

type Status string

const (
	StatusSuccess Status = "success"
	StatusFailed  Status = "error"
)

// Outcome is the user-facing result of a submission.
type Outcome struct {
	Status  Status `json:"status"`
	Message string `json:"message"`
}

func (o Outcome) OK() bool { return o.Status == StatusSuccess }
