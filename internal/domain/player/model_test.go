package player

import "testing"

func TestPlayerValidate(t *testing.T) {
	valid := Player{ID: "p1", SquadNumber: 10, Name: "Ten", Position: PositionMidfielder}

	tests := []struct {
		name    string
		mutate  func(*Player)
		wantErr bool
	}{
		{name: "valid", mutate: func(*Player) {}},
		{name: "missing id", mutate: func(p *Player) { p.ID = " " }, wantErr: true},
		{name: "missing name", mutate: func(p *Player) { p.Name = "" }, wantErr: true},
		{name: "unknown position", mutate: func(p *Player) { p.Position = "LIB" }, wantErr: true},
		{name: "squad number", mutate: func(p *Player) { p.SquadNumber = 120 }, wantErr: true},
		{name: "negative stats", mutate: func(p *Player) { p.Stats.Goals = -1 }, wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p := valid.Clone()
			tc.mutate(&p)
			err := p.Validate()
			if tc.wantErr && err == nil {
				t.Fatalf("expected error")
			}
			if !tc.wantErr && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestPlayerPrefers(t *testing.T) {
	p := Player{Position: PositionDefender, PreferredPositions: []Position{PositionMidfielder}}
	if !p.Prefers(PositionDefender) || !p.Prefers(PositionMidfielder) {
		t.Fatalf("expected player to prefer DEF and MID")
	}
	if p.Prefers(PositionForward) {
		t.Fatalf("did not expect FWD preference")
	}
	if NormalizePosition(" gk ") != PositionGoalkeeper {
		t.Fatalf("unexpected normalized position")
	}
}
