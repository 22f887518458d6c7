package domain

import "strings"

// Prize is one awardable item and its remaining stock
type Prize struct {
	Name   string `json:"name"`
	Amount int    `json:"amount"`
}

// PrizePool is one category of the prize draw.
// Chance is the configured base chance on a 0-100 scale. It is both the
// starting value and the pity increment. CurrentChance is the live chance.
type PrizePool struct {
	Type          int     `json:"type"`
	Chance        float64 `json:"chance"`
	CurrentChance float64 `json:"current_chance"`
	Prizes        []Prize `json:"prizes"`
}

// IsEmpty reports whether the pool has no stock left to award
func (p *PrizePool) IsEmpty() bool {
	for _, prize := range p.Prizes {
		if prize.Amount > 0 {
			return false
		}
	}
	return true
}

// Clone returns a deep copy of the pool
func (p *PrizePool) Clone() *PrizePool {
	c := *p
	c.Prizes = append([]Prize(nil), p.Prizes...)
	return &c
}

// Remove takes one unit of the named prize out of the pool.
// A prize whose amount drops to zero is removed from the list.
func (p *PrizePool) Remove(name string) bool {
	for i, prize := range p.Prizes {
		if !strings.EqualFold(prize.Name, name) {
			continue
		}
		if prize.Amount > 1 {
			p.Prizes[i].Amount--
		} else {
			p.Prizes = append(p.Prizes[:i:i], p.Prizes[i+1:]...)
		}
		return true
	}
	return false
}

// ResetChance restores the live chance to the base chance
func (p *PrizePool) ResetChance() {
	p.CurrentChance = p.Chance
}

// IncreaseChance adds the base chance to the live chance
func (p *PrizePool) IncreaseChance() {
	p.CurrentChance += p.Chance
}
