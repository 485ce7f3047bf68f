package game

import (
	"context"
	"errors"
	"testing"
)

// move is one scripted answer from a fake collaborator.
type move struct {
	guess    Combination
	feedback Feedback
	cmd      Command
	err      error
}

type scriptedCracker struct {
	moves  []move
	calls  int
	wins   int
	losses int
	last   Outcome
}

func (c *scriptedCracker) ObtainGuess(_ context.Context, _ []Entry) (Combination, Command, error) {
	if c.calls >= len(c.moves) {
		return Combination{}, CommandQuit, nil
	}
	m := c.moves[c.calls]
	c.calls++
	return m.guess, m.cmd, m.err
}

func (c *scriptedCracker) WinMessage(o Outcome)  { c.wins++; c.last = o }
func (c *scriptedCracker) LoseMessage(o Outcome) { c.losses++; c.last = o }

// scoringSetter scores against a fixed secret unless a scripted move is
// queued for the next call.
type scoringSetter struct {
	secret    Combination
	colors    int
	secretCmd Command
	script    map[int]move
	calls     int
	restored  Combination
}

func (s *scoringSetter) SetSecretCode(context.Context) (Combination, Command, error) {
	if s.secretCmd != CommandNone {
		return Combination{}, s.secretCmd, nil
	}
	return s.secret, CommandNone, nil
}

func (s *scoringSetter) GetFeedback(_ context.Context, guess Combination) (Feedback, Command, error) {
	n := s.calls
	s.calls++
	if m, ok := s.script[n]; ok {
		return m.feedback, m.cmd, m.err
	}
	return Score(guess, s.secret, s.colors), CommandNone, nil
}

func (s *scoringSetter) RestoreSecret(c Combination) { s.secret, s.restored = c, c }

func guesses(cs ...Combination) []move {
	out := make([]move, len(cs))
	for i, c := range cs {
		out[i] = move{guess: c}
	}
	return out
}

func newTestSession(t *testing.T, cfg Config, setter CodeSetter, cracker CodeCracker) *Session {
	t.Helper()
	s, err := NewSession(cfg, setter, cracker)
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	return s
}

var classic = Config{Colors: 6, Dots: 4, MaxAttempts: 10, Mode: ModeHvAI}

func TestSessionWinsOnSecret(t *testing.T) {
	secret := CombinationOf(1, 2, 3, 4)
	setter := &scoringSetter{secret: secret, colors: 6}
	cracker := &scriptedCracker{moves: guesses(CombinationOf(1, 2, 3, 4))}
	s := newTestSession(t, classic, setter, cracker)

	cmd, err := s.Start(context.Background())
	if err != nil || cmd != CommandNone {
		t.Fatalf("Start = %q, %v", cmd, err)
	}
	if s.WinStatus() != Won || s.Status() != StatusWon {
		t.Fatalf("status = %s / %s, want won", s.WinStatus(), s.Status())
	}
	last := s.History()[0]
	if last.Feedback != (Feedback{4, 0}) {
		t.Fatalf("feedback = %s, want 4,0", last.Feedback)
	}
	if cracker.wins != 1 || cracker.losses != 0 {
		t.Fatalf("messages wins=%d losses=%d", cracker.wins, cracker.losses)
	}
	if cracker.last.Attempts != 1 || !cracker.last.Secret.Equal(secret) {
		t.Fatalf("outcome = %+v", cracker.last)
	}
}

func TestSessionLosesWhenAttemptsExhausted(t *testing.T) {
	cfg := Config{Colors: 6, Dots: 4, MaxAttempts: 1, Mode: ModeHvAI}
	setter := &scoringSetter{secret: CombinationOf(1, 2, 3, 4), colors: 6}
	cracker := &scriptedCracker{moves: guesses(CombinationOf(4, 3, 2, 1))}
	s := newTestSession(t, cfg, setter, cracker)

	if _, err := s.Start(context.Background()); err != nil {
		t.Fatal(err)
	}
	if s.WinStatus() != Lost {
		t.Fatalf("status = %s, want lost", s.WinStatus())
	}
	if s.Len() != 1 {
		t.Fatalf("len = %d, want 1", s.Len())
	}
	if cracker.losses != 1 || cracker.wins != 0 {
		t.Fatalf("messages wins=%d losses=%d", cracker.wins, cracker.losses)
	}
}

func TestSessionWinOnLastAttemptIsWon(t *testing.T) {
	cfg := Config{Colors: 6, Dots: 4, MaxAttempts: 2, Mode: ModeHvAI}
	setter := &scoringSetter{secret: CombinationOf(5, 5, 6, 6), colors: 6}
	cracker := &scriptedCracker{moves: guesses(CombinationOf(1, 1, 1, 1), CombinationOf(5, 5, 6, 6))}
	s := newTestSession(t, cfg, setter, cracker)

	if _, err := s.Start(context.Background()); err != nil {
		t.Fatal(err)
	}
	if s.WinStatus() != Won {
		t.Fatalf("status = %s, want won", s.WinStatus())
	}
}

func TestSubmitGuessAfterEndFails(t *testing.T) {
	setter := &scoringSetter{secret: CombinationOf(1, 2, 3, 4), colors: 6}
	cracker := &scriptedCracker{moves: guesses(CombinationOf(1, 2, 3, 4))}
	s := newTestSession(t, classic, setter, cracker)
	if _, err := s.Start(context.Background()); err != nil {
		t.Fatal(err)
	}

	err := s.SubmitGuess(CombinationOf(1, 1, 1, 1), Feedback{1, 0})
	if !errors.Is(err, ErrGameEnded) {
		t.Fatalf("SubmitGuess err = %v, want ErrGameEnded", err)
	}
	if s.Len() != 1 {
		t.Fatalf("len = %d, want 1", s.Len())
	}
	if _, err := s.Undo(); !errors.Is(err, ErrGameEnded) {
		t.Fatalf("Undo err = %v, want ErrGameEnded", err)
	}
}

func TestUndoOnEmptyHistoryFails(t *testing.T) {
	setter := &scoringSetter{secret: CombinationOf(1, 2, 3, 4), colors: 6}
	cracker := &scriptedCracker{moves: []move{{cmd: CommandUndo}}}
	s := newTestSession(t, classic, setter, cracker)

	_, err := s.Start(context.Background())
	if !errors.Is(err, ErrEmptyBoard) {
		t.Fatalf("Start err = %v, want ErrEmptyBoard", err)
	}
}

func TestRedoWithEmptyBufferFails(t *testing.T) {
	setter := &scoringSetter{secret: CombinationOf(1, 2, 3, 4), colors: 6}
	cracker := &scriptedCracker{moves: []move{{guess: CombinationOf(1, 1, 1, 1)}, {cmd: CommandRedo}}}
	s := newTestSession(t, classic, setter, cracker)

	_, err := s.Start(context.Background())
	if !errors.Is(err, ErrEmptyRedoBuffer) {
		t.Fatalf("Start err = %v, want ErrEmptyRedoBuffer", err)
	}
	if s.Len() != 1 {
		t.Fatalf("len = %d, want 1", s.Len())
	}
}

func TestUndoRedoThroughTheLoop(t *testing.T) {
	setter := &scoringSetter{secret: CombinationOf(6, 6, 6, 6), colors: 6}
	cracker := &scriptedCracker{moves: []move{
		{guess: CombinationOf(1, 1, 1, 1)},
		{guess: CombinationOf(2, 2, 2, 2)},
		{cmd: CommandUndo},
		{cmd: CommandUndo},
		{cmd: CommandRedo},
		{cmd: CommandQuit},
	}}
	s := newTestSession(t, classic, setter, cracker)

	cmd, err := s.Start(context.Background())
	if err != nil || cmd != CommandQuit {
		t.Fatalf("Start = %q, %v", cmd, err)
	}
	h := s.History()
	if len(h) != 1 || !h[0].Guess.Equal(CombinationOf(1, 1, 1, 1)) {
		t.Fatalf("history = %+v", h)
	}
	if s.board.RedoLen() != 1 {
		t.Fatalf("redo len = %d, want 1", s.board.RedoLen())
	}
	if s.Status() != StatusAbandoned {
		t.Fatalf("status = %s, want abandoned", s.Status())
	}
	if setter.calls != 2 {
		t.Fatalf("setter scored %d guesses, want 2", setter.calls)
	}
}

func TestRedoCanWin(t *testing.T) {
	secret := CombinationOf(1, 2, 3, 4)
	setter := &scoringSetter{secret: secret, colors: 6}
	cracker := &scriptedCracker{}
	s := newTestSession(t, classic, setter, cracker)
	s.started.Blow()
	if err := s.secret.Set(secret); err != nil {
		t.Fatal(err)
	}
	if err := s.SubmitGuess(secret, Feedback{4, 0}); err != nil {
		t.Fatal(err)
	}
	// Undo is refused once won, so rebuild the position by hand.
	s.win = InProgress
	if _, err := s.Undo(); err != nil {
		t.Fatal(err)
	}
	cracker.moves = []move{{cmd: CommandRedo}}

	if _, err := s.Resume(context.Background()); err != nil {
		t.Fatal(err)
	}
	if s.WinStatus() != Won || cracker.wins != 1 {
		t.Fatalf("status = %s wins = %d", s.WinStatus(), cracker.wins)
	}
}

func TestSetterCommands(t *testing.T) {
	t.Run("undo withdraws the guess", func(t *testing.T) {
		setter := &scoringSetter{secret: CombinationOf(1, 2, 3, 4), colors: 6,
			script: map[int]move{0: {cmd: CommandUndo}}}
		cracker := &scriptedCracker{moves: guesses(CombinationOf(6, 6, 6, 6), CombinationOf(1, 2, 3, 4))}
		s := newTestSession(t, classic, setter, cracker)
		if _, err := s.Start(context.Background()); err != nil {
			t.Fatal(err)
		}
		if s.Len() != 1 || s.WinStatus() != Won {
			t.Fatalf("len = %d status = %s", s.Len(), s.WinStatus())
		}
	})
	t.Run("quit drops the guess", func(t *testing.T) {
		setter := &scoringSetter{secret: CombinationOf(1, 2, 3, 4), colors: 6,
			script: map[int]move{0: {cmd: CommandQuit}}}
		cracker := &scriptedCracker{moves: guesses(CombinationOf(1, 2, 3, 4))}
		s := newTestSession(t, classic, setter, cracker)
		cmd, err := s.Start(context.Background())
		if err != nil || cmd != CommandQuit {
			t.Fatalf("Start = %q, %v", cmd, err)
		}
		if s.Len() != 0 || cracker.wins != 0 {
			t.Fatalf("len = %d wins = %d", s.Len(), cracker.wins)
		}
	})
	t.Run("redo is not a feedback command", func(t *testing.T) {
		setter := &scoringSetter{secret: CombinationOf(1, 2, 3, 4), colors: 6,
			script: map[int]move{0: {cmd: CommandRedo}}}
		cracker := &scriptedCracker{moves: guesses(CombinationOf(1, 2, 3, 4))}
		s := newTestSession(t, classic, setter, cracker)
		if _, err := s.Start(context.Background()); !errors.Is(err, ErrUnexpectedCommand) {
			t.Fatalf("Start err = %v, want ErrUnexpectedCommand", err)
		}
	})
}

func TestDiscardBeforeSecret(t *testing.T) {
	setter := &scoringSetter{secretCmd: CommandDiscard, colors: 6}
	cracker := &scriptedCracker{}
	s := newTestSession(t, classic, setter, cracker)

	cmd, err := s.Start(context.Background())
	if err != nil || cmd != CommandDiscard {
		t.Fatalf("Start = %q, %v", cmd, err)
	}
	if cracker.calls != 0 {
		t.Fatalf("cracker asked %d times, want 0", cracker.calls)
	}
	if s.Status() != StatusAbandoned || !s.Started() {
		t.Fatalf("status = %s started = %v", s.Status(), s.Started())
	}
}

func TestStartAndResumeGuards(t *testing.T) {
	setter := &scoringSetter{secret: CombinationOf(1, 2, 3, 4), colors: 6}
	cracker := &scriptedCracker{moves: []move{{cmd: CommandQuit}}}
	s := newTestSession(t, classic, setter, cracker)

	if _, err := s.Resume(context.Background()); !errors.Is(err, ErrGameNotStarted) {
		t.Fatalf("Resume err = %v, want ErrGameNotStarted", err)
	}
	if err := s.SubmitGuess(CombinationOf(1, 1, 1, 1), Feedback{}); !errors.Is(err, ErrGameNotStarted) {
		t.Fatalf("SubmitGuess err = %v, want ErrGameNotStarted", err)
	}
	if _, err := s.Start(context.Background()); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Start(context.Background()); !errors.Is(err, ErrGameAlreadyStarted) {
		t.Fatalf("second Start err = %v, want ErrGameAlreadyStarted", err)
	}
	if !s.Started() {
		t.Fatal("started flag reset")
	}
}

func TestExternalFeedbackWins(t *testing.T) {
	// No secret is known; a perfect feedback row ends the session.
	setter := &scoringSetter{colors: 6, script: map[int]move{
		0: {feedback: Feedback{1, 2}},
		1: {feedback: Feedback{4, 0}},
	}}
	cracker := &scriptedCracker{moves: guesses(CombinationOf(1, 2, 3, 4), CombinationOf(1, 3, 4, 2))}
	cfg := classic
	cfg.Mode = ModeAIvAI
	s := newTestSession(t, cfg, setter, cracker)

	if _, err := s.Start(context.Background()); err != nil {
		t.Fatal(err)
	}
	if _, ok := s.Secret(); ok {
		t.Fatal("secret unexpectedly known")
	}
	if s.WinStatus() != Won || s.Len() != 2 {
		t.Fatalf("status = %s len = %d", s.WinStatus(), s.Len())
	}
}

func TestInvalidGuessFromCrackerIsReturned(t *testing.T) {
	setter := &scoringSetter{secret: CombinationOf(1, 2, 3, 4), colors: 6}
	cracker := &scriptedCracker{moves: guesses(CombinationOf(7, 1, 1, 1))}
	s := newTestSession(t, classic, setter, cracker)
	if _, err := s.Start(context.Background()); !errors.Is(err, ErrRange) {
		t.Fatalf("Start err = %v, want ErrRange", err)
	}
	if setter.calls != 0 {
		t.Fatal("setter scored an invalid guess")
	}
}

func TestCollaboratorErrorPropagates(t *testing.T) {
	boom := errors.New("stdin closed")
	setter := &scoringSetter{secret: CombinationOf(1, 2, 3, 4), colors: 6}
	cracker := &scriptedCracker{moves: []move{{err: boom}}}
	s := newTestSession(t, classic, setter, cracker)
	if _, err := s.Start(context.Background()); !errors.Is(err, boom) {
		t.Fatalf("Start err = %v, want %v", err, boom)
	}
}

func TestCanceledContextStopsLoop(t *testing.T) {
	setter := &scoringSetter{secret: CombinationOf(1, 2, 3, 4), colors: 6}
	cracker := &scriptedCracker{moves: guesses(CombinationOf(1, 2, 3, 4))}
	s := newTestSession(t, classic, setter, cracker)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := s.Start(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("Start err = %v, want context.Canceled", err)
	}
	if cracker.calls != 0 {
		t.Fatal("cracker called after cancel")
	}
}

func TestNewSessionRejectsBadConfig(t *testing.T) {
	_, err := NewSession(Config{Colors: 1, Dots: 4, MaxAttempts: 1, Mode: ModeHvH}, &scoringSetter{}, &scriptedCracker{})
	if !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("err = %v, want ErrInvalidConfig", err)
	}
}
