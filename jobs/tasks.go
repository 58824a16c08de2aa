package jobs

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskInquiryNotify is the task type for notifying the owner about a new
	// public inquiry.
	TaskInquiryNotify = "crm:inquiry_notify"
	// TaskDashboardWarmup is the task type for pre-computing the insights
	// snapshot.
	TaskDashboardWarmup = "crm:dashboard_warmup"
)

// InquiryNotifyPayload carries the lead details for the owner notification.
type InquiryNotifyPayload struct {
	To          string `json:"to"`
	LeadID      string `json:"lead_id"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	ProductType string `json:"product_type"`
	Message     string `json:"message"`
}

// NewInquiryNotifyTask constructs an Asynq task.
func NewInquiryNotifyTask(payload InquiryNotifyPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskInquiryNotify, data), nil
}

// HandleInquiryNotifyTask processes TaskInquiryNotify tasks.
func HandleInquiryNotifyTask(ctx context.Context, t *asynq.Task) error {
	var payload InquiryNotifyPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return asynq.SkipRetry
	}
	// Placeholder: integrate with SMTP/Mailpit in phase 2.
	fmt.Printf("[jobs] inquiry notification to %s lead=%s from=%s\n", payload.To, payload.LeadID, payload.Email)
	return nil
}

// DashboardWarmupPayload is currently empty; the warmup recomputes the whole
// snapshot.
type DashboardWarmupPayload struct{}

// NewDashboardWarmupTask constructs an Asynq task.
func NewDashboardWarmupTask() (*asynq.Task, error) {
	data, err := json.Marshal(DashboardWarmupPayload{})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskDashboardWarmup, data), nil
}
