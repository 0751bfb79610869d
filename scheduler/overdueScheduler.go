package scheduler

import (
	"log"
	"time"

	"github.com/robfig/cron/v3"

	repaymentService "plms/services/repayment"
)

// InitializeOverdueScheduler sets up the daily overdue sweep
func InitializeOverdueScheduler() {
	log.Println("[OVERDUE-SCHEDULER] Initializing overdue EMI scheduler...")

	c := cron.New()

	// Run daily at 1 AM to flag unpaid installments past their due date
	c.AddFunc("0 1 * * *", func() {
		log.Println("[OVERDUE-SCHEDULER] Running daily overdue sweep...")
		flagged, err := repaymentService.SweepOverdue(time.Now())
		if err != nil {
			log.Printf("[OVERDUE-SCHEDULER] Sweep failed: %v", err)
			return
		}
		if flagged > 0 {
			log.Printf("[OVERDUE-SCHEDULER] Flagged %d installments as OVERDUE", flagged)
		}
	})

	c.Start()
	log.Println("[OVERDUE-SCHEDULER] Overdue scheduler started - runs daily at 1 AM")
}
