package payment

import "sort"

// Method is a manual mobile-money rail: the player sends funds to the house
// wallet out of band and files a deposit request with the provider's
// transaction id.
type Method struct {
	Name         string `json:"name"`
	WalletNumber string `json:"wallet_number"`
	Instructions string `json:"instructions"`
}

var methods = make(map[string]Method)

func RegisterMethod(m Method) {
	methods[m.Name] = m
}

func GetMethod(name string) (Method, bool) {
	m, ok := methods[name]
	return m, ok
}

func Methods() []Method {
	out := make([]Method, 0, len(methods))
	for _, m := range methods {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func RegisterDefaults() {
	for _, name := range []string{"bkash", "nagad", "rocket"} {
		RegisterMethod(Method{
			Name:         name,
			WalletNumber: "01324062666",
			Instructions: "Send the exact amount, then submit the provider transaction id.",
		})
	}
}
