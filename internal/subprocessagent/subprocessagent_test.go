package subprocessagent

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
	"time"

	"github.com/arenahq/ai-arena/internal/games/tictactoe"
	"github.com/arenahq/ai-arena/internal/jsonvalue"
)

const echoBotScript = `
import json, sys
for line in sys.stdin:
    msg = json.loads(line)
    if msg.get("type") != "turn":
        continue
    legal = msg.get("legal_moves", [])
    move = legal[0] if legal else None
    sys.stdout.write(json.dumps({"type": "move", "move": move}) + "\n")
    sys.stdout.flush()
`

func TestSelectMoveEchoesFirstLegalMove(t *testing.T) {
	python, err := exec.LookPath("python3")
	if err != nil {
		t.Skip("python3 not available in PATH")
	}

	dir := t.TempDir()
	botPath := filepath.Join(dir, "bot.py")
	if err := os.WriteFile(botPath, []byte(echoBotScript), 0o644); err != nil {
		t.Fatalf("writing bot script: %v", err)
	}

	a, err := New("echo-bot", "tictactoe", []string{python, "-u", botPath}, 5*time.Second)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	g := tictactoe.New()
	state := g.InitialState()
	legal := g.LegalMoves(state, 0)

	move, err := a.SelectMove(context.Background(), state, 0, legal)
	if err != nil {
		t.Fatalf("SelectMove: %v", err)
	}
	if !jsonvalue.Equal(move, legal[0]) {
		t.Fatalf("expected echoed move %v, got %v", legal[0], move)
	}

	done := make(chan error, 1)
	go func() { done <- a.Close() }()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Close: %v", err)
		}
	case <-time.After(1200 * time.Millisecond):
		t.Fatalf("Close did not reap child within 1s grace period")
	}
}

func TestCloseIsIdempotent(t *testing.T) {
	python, err := exec.LookPath("python3")
	if err != nil {
		t.Skip("python3 not available in PATH")
	}
	dir := t.TempDir()
	botPath := filepath.Join(dir, "bot.py")
	if err := os.WriteFile(botPath, []byte(echoBotScript), 0o644); err != nil {
		t.Fatalf("writing bot script: %v", err)
	}
	a, err := New("echo-bot", "tictactoe", []string{python, "-u", botPath}, 5*time.Second)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := a.Close(); err != nil {
		t.Fatalf("first Close: %v", err)
	}
	if err := a.Close(); err != nil {
		t.Fatalf("second Close: %v", err)
	}
}
