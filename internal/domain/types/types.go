// Package types contains the JSON shapes served by the admin API.
package types

import "github.com/xentee/skinticket/internal/domain/model"

// Candidate is one resolved item as shown to operators.
type Candidate struct {
	Rank             int    `json:"rank"`
	Name             string `json:"name"`
	MarketIdentifier string `json:"market_identifier"`
	Category         string `json:"category"`
}

// ResolveResponse is the body of GET /resolve.
type ResolveResponse struct {
	Query      string      `json:"query"`
	Count      int         `json:"count"`
	Candidates []Candidate `json:"candidates"`
}

// Stats summarises the running bot.
type Stats struct {
	Started        bool   `json:"started"`
	ActiveSessions int    `json:"active_sessions"`
	QueueLength    int    `json:"queue_length"`
	QueueCapacity  int    `json:"queue_capacity"`
	Workers        int    `json:"workers"`
	ActiveWorkers  int    `json:"active_workers"`
	SeenIDs        int64  `json:"seen_interactions"`
	Uptime         string `json:"uptime"`
}

// FromCandidates numbers candidates from 1 in their given order.
func FromCandidates(cands []model.Candidate) []Candidate {
	out := make([]Candidate, len(cands))
	for i, c := range cands {
		out[i] = Candidate{
			Rank:             i + 1,
			Name:             c.Name,
			MarketIdentifier: c.MarketIdentifier,
			Category:         string(c.Category),
		}
	}
	return out
}
