// Package game implements the rules engine for an UNO-style card game played
// automatically by a fixed rule-driven agent.
//
// The main type is Engine, which owns the draw pile, the discard pile and one
// Hand per player, and resolves one turn per PlayTurn call.
//
// # Basic Usage
//
//	e, err := game.NewEngine(4, game.WithSeed(42))
//	if err != nil {
//	    return err
//	}
//	if err := e.Initialize(); err != nil {
//	    return err
//	}
//	for !e.IsGameOver() && !e.Stalled() {
//	    if err := e.PlayTurn(); err != nil {
//	        return err
//	    }
//	}
//	winner := e.Winner()
//
// # Deterministic Play
//
// All randomness comes from a single seeded source owned by the engine. The
// same seed and player count always produce the same deal and, because the
// agent policy is fixed, the same game.
//
// # Architecture
//
// Engine delegates responsibilities to small components:
//   - deck.Deck: builds, shuffles and serves the draw pile
//   - Hand: ordered cards held by one player
//   - Policy: ordered priority rules that pick the card to play
//   - applyEffect: Skip, Reverse and DrawTwo consequences
//   - EventBus: synchronous notification of everything that happens in a turn
package game
