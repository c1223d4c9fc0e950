package app

import (
	"github.com/dkeye/Huddle/internal/core"
	"github.com/dkeye/Huddle/internal/domain"
)

// byRecipient groups deliveries per target, keeping order.
func byRecipient(ds []core.Delivery) map[domain.ConnID][]core.Outbound {
	out := make(map[domain.ConnID][]core.Outbound)
	for _, d := range ds {
		out[d.To] = append(out[d.To], d.Event)
	}
	return out
}

func names(evs []core.Outbound) []string {
	out := make([]string, len(evs))
	for i, e := range evs {
		out[i] = e.Name
	}
	return out
}
