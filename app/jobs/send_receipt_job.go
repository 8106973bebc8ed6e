package jobs

import (
	"fmt"
	"strings"

	"github.com/shashiranjanraj/inkstore/pkg/logger"
	"github.com/shashiranjanraj/inkstore/pkg/notification"
	"github.com/shashiranjanraj/inkstore/pkg/queue"
)

// SendReceiptJob emails an order receipt. It carries a snapshot of the
// order, not IDs, so the mail renders the same even if the catalog changes
// before the worker picks it up.
type SendReceiptJob struct {
	Email     string   `json:"email"`
	Name      string   `json:"name"`
	Reference string   `json:"reference"`
	Titles    []string `json:"titles"`
	Total     float64  `json:"total"`
}

// RegisterJobs makes every job type known to the queue for deserialization.
// Call once at boot, before StartWorkers.
func RegisterJobs() {
	queue.Register("*jobs.SendReceiptJob", func() queue.Job { return &SendReceiptJob{} })
}

func (j *SendReceiptJob) Handle() error {
	errs := notification.Send(j.Email, &receiptNotification{job: j})
	if len(errs) > 0 {
		return errs[0]
	}
	logger.Info("receipt sent", "reference", j.Reference, "email", j.Email)
	return nil
}

type receiptNotification struct {
	job *SendReceiptJob
}

func (n *receiptNotification) Via() []string { return []string{"mail"} }

func (n *receiptNotification) ToMail() notification.MailData {
	j := n.job
	return notification.MailData{
		Subject: fmt.Sprintf("Your Inkstore receipt (%s)", j.Reference),
		Body: fmt.Sprintf(
			"<p>Hi %s,</p><p>Thanks for your purchase:</p><p>%s</p><p>Total: $%.2f</p>",
			j.Name, strings.Join(j.Titles, "<br>"), j.Total,
		),
		Text: fmt.Sprintf(
			"Hi %s,\n\nThanks for your purchase:\n%s\n\nTotal: $%.2f\n",
			j.Name, strings.Join(j.Titles, "\n"), j.Total,
		),
	}
}
