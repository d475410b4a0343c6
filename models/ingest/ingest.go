package ingest

import (
	"github.com/google/uuid"
)

type State string

const (
	Queued  State = "Queued"
	Running State = "Running"
	Done    State = "Done"
	Error   State = "Error"
)

type SyncRequest struct {
	Id        uuid.UUID `json:"id"`
	Source    string    `json:"source"`
	State     State     `json:"state"`
	Message   string    `json:"message"`
	CreatedAt string    `json:"createdAt"`
	UpdatedAt string    `json:"updatedAt"`
}

// RecordFailure ties an error to the position and natural key of the
// import record that produced it.
type RecordFailure struct {
	Index       int    `json:"index"`
	Key         string `json:"key"`
	EscellClone string `json:"escellClone,omitempty"`
	Err         error  `json:"-"`
	Message     string `json:"message"`
}

type SyncReport struct {
	SyncRequest

	Records         int             `json:"records"`
	AllelesFound    int             `json:"allelesFound"`
	AllelesCreated  int             `json:"allelesCreated"`
	ProductsFound   int             `json:"productsFound"`
	ProductsCreated int             `json:"productsCreated"`
	Failures        []RecordFailure `json:"failures"`
}
