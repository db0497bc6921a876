package main

import (
	"fmt"

	"github.com/finnb0y/virtualchips/internal/display"
	"github.com/finnb0y/virtualchips/internal/engine"
	"github.com/finnb0y/virtualchips/internal/state"
)

// DemoCmd plays one scripted hand between three players and renders each
// step, so a dealer can see what the table view looks like without setting
// up a server and phones.
type DemoCmd struct {
	Stack int `default:"10000" help:"Starting stack for the demo players"`
}

func (c *DemoCmd) Run() error {
	eng := engine.New()
	snapshot := state.NewState(&state.Tournament{
		ID:   "demo",
		Name: "Demo Tournament",
		Config: state.TournamentConfig{
			StartingStack: c.Stack,
			BlindStructure: []state.BlindLevel{
				{SmallBlind: 25, BigBlind: 50, DurationMinutes: 20},
			},
		},
	})

	d := demo{eng: eng, snapshot: snapshot}
	d.apply("admin", engine.CreateTable{DealerAccessCode: "demo-dealer"})
	tableID := d.onlyTableID()
	for _, name := range []string{"Alice", "Bob", "Carol"} {
		d.apply("admin", engine.RegisterPlayer{PersonID: name, Name: name})
		d.apply("admin", engine.MovePlayer{PlayerID: d.playerID(name), TableID: tableID})
	}

	alice, bob, carol := d.playerID("Alice"), d.playerID("Bob"), d.playerID("Carol")

	d.show(tableID, "Seated and ready")
	d.apply("dealer", engine.StartHand{TableID: tableID})
	d.show(tableID, "Hand started, blinds posted")

	// Pre-flop: the player after the big blind opens.
	d.apply(d.turn(tableID), engine.Call{})
	d.apply(d.turn(tableID), engine.Call{})
	d.apply(d.turn(tableID), engine.Check{})
	d.show(tableID, "Pre-flop action complete")

	d.apply("dealer", engine.AdvanceBettingRound{TableID: tableID})
	d.apply(d.turn(tableID), engine.Bet{Amount: 100})
	d.apply(d.turn(tableID), engine.Raise{Amount: 200})
	d.apply(d.turn(tableID), engine.Fold{})
	d.apply(d.turn(tableID), engine.Call{})
	d.show(tableID, "Flop action complete")

	d.apply("dealer", engine.AdvanceBettingRound{TableID: tableID})
	d.apply(d.turn(tableID), engine.Check{})
	d.apply(d.turn(tableID), engine.Check{})
	d.apply("dealer", engine.AdvanceBettingRound{TableID: tableID})
	d.apply(d.turn(tableID), engine.Check{})
	d.apply(d.turn(tableID), engine.Check{})
	d.show(tableID, "River checked through")

	// Showdown happens with physical cards; the dealer records the winner.
	winner := d.remainingPlayer(tableID, alice, bob, carol)
	d.apply("dealer", engine.AwardPot{WinnerID: winner})
	d.show(tableID, fmt.Sprintf("Pot awarded to %s", d.snapshot.Players[winner].Name))

	return nil
}

type demo struct {
	eng      *engine.Engine
	snapshot *state.State
}

func (d *demo) apply(senderID string, action engine.Action) {
	next, res := d.eng.Apply(d.snapshot, engine.Message{SenderID: senderID, Action: action})
	if !res.Applied {
		fmt.Printf("  (%s rejected: %s)\n", action.Kind(), res.Reason)
		return
	}
	d.snapshot = next
}

func (d *demo) show(tableID, caption string) {
	fmt.Printf("\n-- %s --\n", caption)
	fmt.Println(display.RenderTable(d.snapshot, tableID))
}

func (d *demo) onlyTableID() string {
	for id := range d.snapshot.Tables {
		return id
	}
	return ""
}

func (d *demo) playerID(name string) string {
	for id, p := range d.snapshot.Players {
		if p.Name == name {
			return id
		}
	}
	return ""
}

func (d *demo) turn(tableID string) string {
	return d.snapshot.Tables[tableID].CurrentTurn
}

// remainingPlayer returns the first of the given players still in the hand.
func (d *demo) remainingPlayer(tableID string, ids ...string) string {
	for _, id := range ids {
		if p, ok := d.snapshot.Players[id]; ok && p.InHand() {
			return id
		}
	}
	return ids[0]
}
