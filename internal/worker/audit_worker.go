package worker

import (
	"context"
	"log"
)

// Event describes a completed mutation on a user record.
type Event struct {
	Action string
	UserID int64
	Email  string
}

type AuditWorker struct {
	Ch <-chan Event
}

func NewAuditWorker(ch <-chan Event) *AuditWorker {
	return &AuditWorker{Ch: ch}
}

func (w *AuditWorker) Run(ctx context.Context) {
	log.Println("audit worker started")
	for {
		select {
		case <-ctx.Done():
			log.Println("audit worker stopped")
			return
		case ev := <-w.Ch:
			if ev.Email != "" {
				log.Printf("audit: %s user=%d email=%s\n", ev.Action, ev.UserID, ev.Email)
			} else {
				log.Printf("audit: %s user=%d\n", ev.Action, ev.UserID)
			}
		}
	}
}
