package views

import "github.com/almas-industries/techplan/pkg/core/model"

// EmailPartition groups queue items by delivery status
type EmailPartition struct {
	Pending []model.EmailQueueItem `json:"pending"`
	Sent    []model.EmailQueueItem `json:"sent"`
	Failed  []model.EmailQueueItem `json:"failed"`
}

// PartitionEmails splits the queue by status, keeping relative order in each group
func PartitionEmails(items []model.EmailQueueItem) EmailPartition {
	p := EmailPartition{
		Pending: []model.EmailQueueItem{},
		Sent:    []model.EmailQueueItem{},
		Failed:  []model.EmailQueueItem{},
	}
	for _, item := range items {
		switch item.Status {
		case model.EmailPending:
			p.Pending = append(p.Pending, item)
		case model.EmailSent:
			p.Sent = append(p.Sent, item)
		case model.EmailFailed:
			p.Failed = append(p.Failed, item)
		}
	}
	return p
}
