package casino

import (
	"casino-platform/internal/event"
)

type Audit interface {
	Log(uid int64, action string, metadata string)
}

type Broadcaster interface {
	BroadcastJSON(v interface{})
}

// RegisterConsumers wires settlement side effects. Consumers never touch
// balances; the engine has already committed by the time they run.
func RegisterConsumers(bus *event.Bus, audit Audit, lb *Leaderboard, hub Broadcaster) {

	bus.Subscribe(event.EventCasinoSettled, func(payload interface{}) {

		st := payload.(*Settlement)

		lb.Record(st.UID, st.Payout.Sub(st.Bet))

		audit.Log(st.UID, "casino_settle", st.Game+":"+st.Ref)

		hub.BroadcastJSON(st)
	})
}
