package payment

import (
	"casino-platform/internal/event"
	"casino-platform/internal/ledger"
)

type Audit interface {
	Log(uid int64, action string, metadata string)
}

func RegisterConsumers(bus *event.Bus, audit Audit) {

	logEntry := func(action string) event.Handler {
		return func(payload interface{}) {
			e := payload.(*ledger.Entry)
			audit.Log(e.UID, action, e.Kind+":"+e.ID+":"+e.Status)
		}
	}

	bus.Subscribe(event.EventDepositRequested, logEntry("payment_request"))
	bus.Subscribe(event.EventWithdrawRequested, logEntry("payment_request"))
	bus.Subscribe(event.EventPaymentReviewed, logEntry("payment_review"))
}
