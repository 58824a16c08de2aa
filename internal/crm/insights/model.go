package insights

import (
	"time"

	"github.com/bakehouse-crm/bakehouse-crm/internal/sales/orders"
	"github.com/bakehouse-crm/bakehouse-crm/internal/sales/saleslog"
)

// Snapshot is the dashboard payload. It is cached and rebuilt whenever the
// underlying collections change.
type Snapshot struct {
	GeneratedAt    time.Time             `json:"generated_at"`
	TotalLeads     int                   `json:"total_leads"`
	LeadsByStage   map[string]int        `json:"leads_by_stage"`
	ActiveLeads    int                   `json:"active_leads"`
	ConversionRate float64               `json:"conversion_rate"`
	PipelineValue  float64               `json:"pipeline_value"`
	Orders         orders.Stats          `json:"orders"`
	Revenue        saleslog.RevenueStats `json:"revenue"`
}
