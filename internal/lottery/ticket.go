package lottery

import (
	"encoding/json"
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
)

// Ticket is a played EuroJackpot ticket: five main numbers followed by two
// euro numbers.
type Ticket []int

// MainNumbers returns the first five picks as a set.
func (t Ticket) MainNumbers() []int {
	if len(t) < 5 {
		return NormalizeSet(t)
	}
	return NormalizeSet(t[:5])
}

// EuroNumbers returns the picks after the fifth as a set.
func (t Ticket) EuroNumbers() []int {
	if len(t) < 5 {
		return nil
	}
	return NormalizeSet(t[5:])
}

// LoadTickets reads tickets from a JSON file holding an array of tickets.
func LoadTickets(path string) ([]Ticket, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("ticket file not found: %s", path)
	}

	var tickets []Ticket
	if err := json.Unmarshal(data, &tickets); err != nil {
		return nil, fmt.Errorf("ticket file must contain a list of tickets: %w", err)
	}

	log.Infof("Loaded %d tickets from %s", len(tickets), path)
	return tickets, nil
}

// Evaluate compares a ticket to the drawn numbers and returns how many main
// and euro numbers matched.
func Evaluate(ticket Ticket, drawnMain, drawnEuro []int) (matchedMain, matchedEuro int) {
	return intersectCount(ticket.MainNumbers(), drawnMain), intersectCount(ticket.EuroNumbers(), drawnEuro)
}

// PrizeKey returns the prize-class key used by the EuroJackpot quotas, e.g.
// "5 + 2" for a jackpot match.
func PrizeKey(matchedMain, matchedEuro int) string {
	return fmt.Sprintf("%d + %d", matchedMain, matchedEuro)
}

func intersectCount(a, b []int) int {
	set := make(map[int]struct{}, len(b))
	for _, n := range b {
		set[n] = struct{}{}
	}
	count := 0
	for _, n := range a {
		if _, ok := set[n]; ok {
			count++
		}
	}
	return count
}
