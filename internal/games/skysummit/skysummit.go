// Package skysummit implements a deterministic, perfect-information,
// two-player climbing/building duel: each player places two workers, then
// alternates moving a worker to an adjacent cell and building up a tower,
// winning by stepping a worker onto a height-3 cell.
package skysummit

import (
	"fmt"
	"strings"

	"github.com/arenahq/ai-arena/internal/game"
	"github.com/arenahq/ai-arena/internal/jsonvalue"
)

const (
	boardSize = 5
	maxPly    = 200
	domeHeight = 4
)

// Game is the Skysummit rule set. State shape:
//
//	{"phase": "place"|"play", "ply": int, "board": [height,...25],
//	 "workers": [[pos|nil, pos|nil], [pos|nil, pos|nil]],
//	 "winner": 0|1|nil, "reason": string}
type Game struct{}

func New() *Game { return &Game{} }

func (Game) Name() string { return "skysummit" }

func (Game) InitialState() jsonvalue.Value {
	n := boardSize * boardSize
	board := make([]any, n)
	for i := range board {
		board[i] = 0
	}
	return map[string]any{
		"phase":   "place",
		"ply":     0,
		"board":   board,
		"workers": []any{[]any{nil, nil}, []any{nil, nil}},
		"winner":  nil,
		"reason":  "",
	}
}

type workerPair [2]*int

func stateOf(s jsonvalue.Value) map[string]any { return s.(map[string]any) }

func boardOf(s map[string]any) []int {
	raw := s["board"].([]any)
	out := make([]int, len(raw))
	for i, v := range raw {
		out[i] = toInt(v)
	}
	return out
}

func workersOf(s map[string]any) [2]workerPair {
	raw := s["workers"].([]any)
	var out [2]workerPair
	for p := 0; p < 2; p++ {
		pair := raw[p].([]any)
		for i := 0; i < 2; i++ {
			if pair[i] == nil {
				out[p][i] = nil
			} else {
				v := toInt(pair[i])
				out[p][i] = &v
			}
		}
	}
	return out
}

func toInt(v any) int {
	switch n := v.(type) {
	case int:
		return n
	case float64:
		return int(n)
	default:
		return 0
	}
}

func occupied(w [2]workerPair) map[int]bool {
	out := map[int]bool{}
	for _, pair := range w {
		for _, v := range pair {
			if v != nil {
				out[*v] = true
			}
		}
	}
	return out
}

func neighbors(idx int) []int {
	r, c := idx/boardSize, idx%boardSize
	var out []int
	for dr := -1; dr <= 1; dr++ {
		for dc := -1; dc <= 1; dc++ {
			if dr == 0 && dc == 0 {
				continue
			}
			rr, cc := r+dr, c+dc
			if rr >= 0 && rr < boardSize && cc >= 0 && cc < boardSize {
				out = append(out, rr*boardSize+cc)
			}
		}
	}
	return out
}

func winnerField(s map[string]any) *game.PlayerId {
	v := s["winner"]
	if v == nil {
		return nil
	}
	p := game.PlayerId(toInt(v))
	return &p
}

func (g *Game) LegalMoves(state jsonvalue.Value, player game.PlayerId) []jsonvalue.Value {
	s := stateOf(state)
	if winnerField(s) != nil {
		return nil
	}
	switch s["phase"].(string) {
	case "place":
		return g.legalPlaceMoves(s, player)
	case "play":
		return g.legalPlayMoves(s, player)
	default:
		return nil
	}
}

func (g *Game) legalPlaceMoves(s map[string]any, player game.PlayerId) []jsonvalue.Value {
	w := workersOf(s)
	if w[player][0] != nil || w[player][1] != nil {
		return nil
	}
	taken := occupied(w)
	n := boardSize * boardSize
	var empties []int
	for i := 0; i < n; i++ {
		if !taken[i] {
			empties = append(empties, i)
		}
	}
	var moves []jsonvalue.Value
	for i := 0; i < len(empties); i++ {
		for j := i + 1; j < len(empties); j++ {
			a, b := empties[i], empties[j]
			moves = append(moves, map[string]any{"t": "place", "to": []any{a, b}})
			moves = append(moves, map[string]any{"t": "place", "to": []any{b, a}})
		}
	}
	return moves
}

func (g *Game) legalPlayMoves(s map[string]any, player game.PlayerId) []jsonvalue.Value {
	b := boardOf(s)
	w := workersOf(s)
	if w[player][0] == nil || w[player][1] == nil {
		return nil
	}
	occNow := occupied(w)
	var moves []jsonvalue.Value
	for wi := 0; wi < 2; wi++ {
		src := *w[player][wi]
		srcH := b[src]
		for _, dst := range neighbors(src) {
			if occNow[dst] {
				continue
			}
			dstH := b[dst]
			if dstH >= domeHeight {
				continue
			}
			if dstH-srcH > 1 {
				continue
			}
			if dstH == 3 {
				moves = append(moves, map[string]any{"t": "move", "w": wi, "to": dst, "build": nil})
				continue
			}
			occAfter := map[int]bool{}
			for k, v := range occNow {
				occAfter[k] = v
			}
			delete(occAfter, src)
			occAfter[dst] = true
			for _, build := range neighbors(dst) {
				if occAfter[build] {
					continue
				}
				if b[build] >= domeHeight {
					continue
				}
				moves = append(moves, map[string]any{"t": "move", "w": wi, "to": dst, "build": build})
			}
		}
	}
	return moves
}

func (g *Game) ApplyMove(state jsonvalue.Value, player game.PlayerId, move jsonvalue.Value) (jsonvalue.Value, error) {
	s := stateOf(state)
	if winnerField(s) != nil {
		return nil, fmt.Errorf("skysummit: game is already over")
	}
	switch s["phase"].(string) {
	case "place":
		return g.applyPlace(s, player, move)
	case "play":
		return g.applyPlay(s, player, move)
	default:
		return nil, fmt.Errorf("skysummit: unknown phase %v", s["phase"])
	}
}

func (g *Game) applyPlace(s map[string]any, player game.PlayerId, move jsonvalue.Value) (jsonvalue.Value, error) {
	mm, ok := move.(map[string]any)
	if !ok || mm["t"] != "place" {
		return nil, fmt.Errorf("skysummit: expected place move, got %v", move)
	}
	to, ok := mm["to"].([]any)
	if !ok || len(to) != 2 {
		return nil, fmt.Errorf("skysummit: place.to must be [int,int]")
	}
	a, b := toInt(to[0]), toInt(to[1])
	if a == b {
		return nil, fmt.Errorf("skysummit: place positions must be distinct")
	}
	w := workersOf(s)
	if w[player][0] != nil || w[player][1] != nil {
		return nil, fmt.Errorf("skysummit: player has already placed workers")
	}
	n := boardSize * boardSize
	if a < 0 || a >= n || b < 0 || b >= n {
		return nil, fmt.Errorf("skysummit: place out of bounds")
	}
	taken := occupied(w)
	if taken[a] || taken[b] {
		return nil, fmt.Errorf("skysummit: place on occupied cell")
	}
	if a > b {
		a, b = b, a
	}

	newWorkers := []any{
		workerJSON(w[0]),
		workerJSON(w[1]),
	}
	newWorkers[player] = []any{a, b}

	phase := "place"
	if allPlaced(newWorkers) {
		phase = "play"
	}

	return map[string]any{
		"phase":   phase,
		"ply":     toInt(s["ply"]) + 1,
		"board":   cloneBoard(boardOf(s)),
		"workers": newWorkers,
		"winner":  nil,
		"reason":  "",
	}, nil
}

func workerJSON(p workerPair) []any {
	out := make([]any, 2)
	for i, v := range p {
		if v == nil {
			out[i] = nil
		} else {
			out[i] = *v
		}
	}
	return out
}

func allPlaced(workers []any) bool {
	for _, p := range workers {
		for _, v := range p.([]any) {
			if v == nil {
				return false
			}
		}
	}
	return true
}

func cloneBoard(b []int) []any {
	out := make([]any, len(b))
	for i, v := range b {
		out[i] = v
	}
	return out
}

func (g *Game) applyPlay(s map[string]any, player game.PlayerId, move jsonvalue.Value) (jsonvalue.Value, error) {
	mm, ok := move.(map[string]any)
	if !ok || mm["t"] != "move" {
		return nil, fmt.Errorf("skysummit: expected move, got %v", move)
	}
	widx, ok := mm["w"].(int)
	if !ok {
		if f, fok := mm["w"].(float64); fok {
			widx = int(f)
			ok = true
		}
	}
	if !ok || (widx != 0 && widx != 1) {
		return nil, fmt.Errorf("skysummit: move.w must be 0 or 1")
	}
	to, ok := asIntField(mm["to"])
	if !ok {
		return nil, fmt.Errorf("skysummit: move.to must be int")
	}
	var build *int
	if mm["build"] != nil {
		b, bok := asIntField(mm["build"])
		if !bok {
			return nil, fmt.Errorf("skysummit: move.build must be int or null")
		}
		build = &b
	}

	b := boardOf(s)
	w := workersOf(s)
	if w[player][widx] == nil {
		return nil, fmt.Errorf("skysummit: worker position missing")
	}
	src := *w[player][widx]
	n := boardSize * boardSize
	if to < 0 || to >= n {
		return nil, fmt.Errorf("skysummit: move.to out of bounds")
	}
	if !contains(neighbors(src), to) {
		return nil, fmt.Errorf("skysummit: move.to must be adjacent")
	}
	occNow := occupied(w)
	if occNow[to] {
		return nil, fmt.Errorf("skysummit: move.to occupied")
	}
	if b[to] >= domeHeight {
		return nil, fmt.Errorf("skysummit: move.to is a dome")
	}
	if b[to]-b[src] > 1 {
		return nil, fmt.Errorf("skysummit: move climb too steep")
	}

	newWorkers := [2]workerPair{w[0], w[1]}
	toCopy := to
	newWorkers[player][widx] = &toCopy

	ply2 := toInt(s["ply"]) + 1

	if b[to] == 3 {
		winner := int(player)
		return map[string]any{
			"phase":   "play",
			"ply":     ply2,
			"board":   cloneBoard(b),
			"workers": []any{workerJSON(newWorkers[0]), workerJSON(newWorkers[1])},
			"winner":  winner,
			"reason":  "reach_level3",
		}, nil
	}

	if build == nil {
		return nil, fmt.Errorf("skysummit: non-winning moves must include build")
	}
	if *build < 0 || *build >= n {
		return nil, fmt.Errorf("skysummit: build out of bounds")
	}
	if !contains(neighbors(to), *build) {
		return nil, fmt.Errorf("skysummit: build must be adjacent to destination")
	}
	occAfter := occupied([2]workerPair{newWorkers[0], newWorkers[1]})
	if occAfter[*build] {
		return nil, fmt.Errorf("skysummit: build on occupied cell")
	}
	if b[*build] >= domeHeight {
		return nil, fmt.Errorf("skysummit: build on dome")
	}

	newBoard := cloneBoard(b)
	newBoard[*build] = b[*build] + 1

	return map[string]any{
		"phase":   "play",
		"ply":     ply2,
		"board":   newBoard,
		"workers": []any{workerJSON(newWorkers[0]), workerJSON(newWorkers[1])},
		"winner":  nil,
		"reason":  "",
	}, nil
}

func asIntField(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case float64:
		return int(n), true
	default:
		return 0, false
	}
}

func contains(xs []int, v int) bool {
	for _, x := range xs {
		if x == v {
			return true
		}
	}
	return false
}

func (g *Game) Terminal(state jsonvalue.Value) game.Terminal {
	s := stateOf(state)
	if w := winnerField(s); w != nil {
		reason, _ := s["reason"].(string)
		if reason == "" {
			reason = "win"
		}
		return game.Terminal{IsTerminal: true, Winner: w, Reason: reason}
	}
	if toInt(s["ply"]) >= maxPly {
		return game.Terminal{IsTerminal: true, Winner: winnerOnTurnLimit(s), Reason: "turn_limit"}
	}
	return game.Terminal{}
}

func winnerOnTurnLimit(s map[string]any) *game.PlayerId {
	b := boardOf(s)
	w := workersOf(s)
	score := func(pid int) (int, int) {
		sum, max := 0, 0
		for _, pos := range w[pid] {
			h := 0
			if pos != nil {
				h = b[*pos]
			}
			sum += h
			if h > max {
				max = h
			}
		}
		return sum, max
	}
	s0sum, s0max := score(0)
	s1sum, s1max := score(1)
	if s0sum > s1sum || (s0sum == s1sum && s0max > s1max) {
		p := game.PlayerId(0)
		return &p
	}
	if s1sum > s0sum || (s1sum == s0sum && s1max > s0max) {
		p := game.PlayerId(1)
		return &p
	}
	return nil
}

func (g *Game) Render(state jsonvalue.Value) string {
	s := stateOf(state)
	b := boardOf(s)
	w := workersOf(s)

	occ := map[int]string{}
	tags := [2][2]string{{"A", "B"}, {"a", "b"}}
	for pid := 0; pid < 2; pid++ {
		for wi := 0; wi < 2; wi++ {
			if w[pid][wi] != nil {
				occ[*w[pid][wi]] = tags[pid][wi]
			}
		}
	}

	hch := func(v int) string {
		if v >= domeHeight {
			return "D"
		}
		return fmt.Sprintf("%d", v)
	}

	var rows []string
	for r := 0; r < boardSize; r++ {
		var parts []string
		for c := 0; c < boardSize; c++ {
			i := r*boardSize + c
			tag, ok := occ[i]
			if !ok {
				tag = "."
			}
			parts = append(parts, hch(b[i])+tag)
		}
		rows = append(rows, strings.Join(parts, " "))
	}

	header := fmt.Sprintf("phase=%s ply=%d", s["phase"], toInt(s["ply"]))
	if w := winnerField(s); w != nil {
		header += fmt.Sprintf(" winner=%d reason=%s", *w, s["reason"])
	}
	return header + "\n" + strings.Join(rows, "\n")
}
