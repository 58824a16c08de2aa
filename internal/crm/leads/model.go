package leads

import "time"

// Status is a flat pipeline stage. Movement between stages is unconstrained.
type Status string

const (
	StatusNew       Status = "new"
	StatusContacted Status = "contacted"
	StatusQuoted    Status = "quoted"
	StatusConverted Status = "converted"
	StatusLost      Status = "lost"
)

// Valid reports whether s is one of the five pipeline stages.
func (s Status) Valid() bool {
	switch s {
	case StatusNew, StatusContacted, StatusQuoted, StatusConverted, StatusLost:
		return true
	}
	return false
}

// Lead is an inquiry moving through the pipeline. ClientID is set once the
// lead is converted; it is a weak reference and survives client deletion.
type Lead struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	Email            string    `json:"email"`
	Phone            string    `json:"phone"`
	ProductType      string    `json:"product_type"`
	Category         string    `json:"category"`
	Message          string    `json:"message"`
	Status           Status    `json:"status"`
	EstimatedValue   float64   `json:"estimated_value"`
	Note             string    `json:"note"`
	ClientID         *string   `json:"client_id,omitempty"`
	IsExistingClient bool      `json:"is_existing_client"`
	CreatedAt        time.Time `json:"created_at"`
	LastUpdated      time.Time `json:"last_updated"`
}
