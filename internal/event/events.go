package event

const (
	EventCasinoSettled     = "casino.settled"
	EventDepositRequested  = "payment.deposit_requested"
	EventWithdrawRequested = "payment.withdraw_requested"
	EventPaymentReviewed   = "payment.reviewed"
)
