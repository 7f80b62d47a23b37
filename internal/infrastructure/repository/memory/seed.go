package memory

import (
	"fmt"
	"time"

	"github.com/riskibarqy/tactical-board/internal/domain/formation"
	"github.com/riskibarqy/tactical-board/internal/domain/lineup"
	"github.com/riskibarqy/tactical-board/internal/domain/matchevent"
	"github.com/riskibarqy/tactical-board/internal/domain/player"
	"gonum.org/v1/gonum/spatial/r2"
)

const MatchIDDerby = "idn-persija-persib-2026"

func seedPlayer(id string, number int, name string, pos player.Position, goals, assists, minutes int) player.Player {
	return player.Player{
		ID:          id,
		SquadNumber: number,
		Name:        name,
		Position:    pos,
		Stats:       player.Stats{Goals: goals, Assists: assists, Minutes: minutes},
	}
}

func starter(pl player.Player, x, y float64) lineup.Starter {
	return lineup.Starter{Player: pl, X: x, Y: y}
}

// SeedMatchLineups returns the kick-off lineups used by the memory data
// source. Both teams are expressed in the same pitch space; the away side
// lines up in the right half.
func SeedMatchLineups() []lineup.MatchLineup {
	captain := seedPlayer("idn-persija-10", 10, "Maciej Gajos", player.PositionMidfielder, 4, 6, 1620)
	captain.Captain = true
	awayCaptain := seedPlayer("idn-persib-23", 23, "Marc Klok", player.PositionMidfielder, 3, 5, 1710)
	awayCaptain.Captain = true

	return []lineup.MatchLineup{
		{
			MatchID:   MatchIDDerby,
			UpdatedAt: time.Date(2026, 2, 14, 18, 0, 0, 0, time.UTC),
			Home: lineup.TeamSheet{
				TeamID:   "idn-persija",
				TeamName: "Persija Jakarta",
				Starters: []lineup.Starter{
					starter(seedPlayer("idn-persija-26", 26, "Andritany Ardhiyasa", player.PositionGoalkeeper, 0, 0, 1800), 5, 34),
					starter(seedPlayer("idn-persija-2", 2, "Ryo Matsumura", player.PositionDefender, 1, 2, 1500), 20, 8),
					starter(seedPlayer("idn-persija-5", 5, "Hansamu Yama", player.PositionDefender, 2, 0, 1710), 18, 26),
					starter(seedPlayer("idn-persija-4", 4, "Ondrej Kudela", player.PositionDefender, 1, 0, 1620), 18, 42),
					starter(seedPlayer("idn-persija-14", 14, "Firza Andika", player.PositionDefender, 0, 3, 1350), 20, 60),
					starter(seedPlayer("idn-persija-8", 8, "Syahrian Abimanyu", player.PositionMidfielder, 1, 1, 1400), 35, 22),
					starter(captain, 38, 34),
					starter(seedPlayer("idn-persija-19", 19, "Hanif Sjahbandi", player.PositionMidfielder, 0, 2, 1280), 35, 46),
					starter(seedPlayer("idn-persija-11", 11, "Riko Simanjuntak", player.PositionForward, 5, 7, 1580), 48, 10),
					starter(seedPlayer("idn-persija-9", 9, "Gustavo Almeida", player.PositionForward, 12, 3, 1690), 50, 34),
					starter(seedPlayer("idn-persija-7", 7, "Witan Sulaeman", player.PositionForward, 6, 4, 1450), 48, 58),
				},
				Bench: []player.Player{
					seedPlayer("idn-persija-1", 1, "Cahya Supriadi", player.PositionGoalkeeper, 0, 0, 90),
					seedPlayer("idn-persija-3", 3, "Muhammad Ferarri", player.PositionDefender, 0, 0, 640),
					seedPlayer("idn-persija-17", 17, "Resky Fandi", player.PositionMidfielder, 0, 1, 420),
					seedPlayer("idn-persija-20", 20, "Marko Simic", player.PositionForward, 3, 0, 510),
					seedPlayer("idn-persija-21", 21, "Dony Tri Pamungkas", player.PositionDefender, 0, 1, 380),
				},
			},
			Away: lineup.TeamSheet{
				TeamID:   "idn-persib",
				TeamName: "Persib Bandung",
				Starters: []lineup.Starter{
					starter(seedPlayer("idn-persib-1", 1, "Teja Paku Alam", player.PositionGoalkeeper, 0, 0, 1800), 105, 34),
					starter(seedPlayer("idn-persib-2", 2, "Henhen Herdiana", player.PositionDefender, 0, 2, 1450), 90, 60),
					starter(seedPlayer("idn-persib-5", 5, "Nick Kuipers", player.PositionDefender, 3, 0, 1720), 92, 42),
					starter(seedPlayer("idn-persib-4", 4, "Alberto Rodriguez", player.PositionDefender, 1, 0, 1600), 92, 26),
					starter(seedPlayer("idn-persib-12", 12, "Edo Febriansah", player.PositionDefender, 0, 4, 1500), 90, 8),
					starter(seedPlayer("idn-persib-13", 13, "Dedi Kusnandar", player.PositionMidfielder, 0, 1, 1200), 75, 46),
					starter(awayCaptain, 72, 34),
					starter(seedPlayer("idn-persib-19", 19, "Tyronne del Pino", player.PositionMidfielder, 6, 5, 1530), 75, 22),
					starter(seedPlayer("idn-persib-7", 7, "Beckham Putra", player.PositionForward, 4, 3, 1300), 62, 58),
					starter(seedPlayer("idn-persib-9", 9, "David da Silva", player.PositionForward, 14, 2, 1650), 60, 34),
					starter(seedPlayer("idn-persib-11", 11, "Ciro Alves", player.PositionForward, 7, 6, 1620), 62, 10),
				},
				Bench: []player.Player{
					seedPlayer("idn-persib-33", 33, "Kevin Ray Mendoza", player.PositionGoalkeeper, 0, 0, 0),
					seedPlayer("idn-persib-3", 3, "Kakang Rudianto", player.PositionDefender, 0, 0, 520),
					seedPlayer("idn-persib-8", 8, "Ryan Kurnia", player.PositionMidfielder, 1, 2, 610),
					seedPlayer("idn-persib-17", 17, "Febri Hariyadi", player.PositionForward, 2, 1, 700),
					seedPlayer("idn-persib-27", 27, "Adam Alis", player.PositionMidfielder, 0, 1, 450),
				},
			},
		},
	}
}

type seedEvent struct {
	category    matchevent.Category
	subcategory string
	action      string
	side        formation.Side
	playerID    string
	second      int
	start       []float64
	end         []float64
}

var derbyEvents = []seedEvent{
	{matchevent.CategoryPassing, "open_play", "short_pass", formation.SideHome, "idn-persija-5", 95, []float64{18, 26}, []float64{35, 22}},
	{matchevent.CategoryPassing, "open_play", "short_pass", formation.SideHome, "idn-persija-8", 130, []float64{36, 21}, []float64{39, 34}},
	{matchevent.CategoryPassing, "open_play", "long_pass", formation.SideHome, "idn-persija-10", 190, []float64{40, 34}, []float64{82, 12}},
	{matchevent.CategoryPassing, "open_play", "through_ball", formation.SideHome, "idn-persija-10", 610, []float64{58, 30}, []float64{92, 36}},
	{matchevent.CategoryPassing, "set_piece", "cross", formation.SideHome, "idn-persija-11", 1240, []float64{104, 4}, []float64{98, 33}},
	{matchevent.CategoryPassing, "open_play", "key_pass", formation.SideHome, "idn-persija-7", 2405, []float64{86, 52}, []float64{97, 38}},
	{matchevent.CategoryPassing, "open_play", "short_pass", formation.SideHome, "idn-persija-26", 2900, []float64{6, 34}, []float64{18, 42}},
	{matchevent.CategoryPassing, "open_play", "short_pass", formation.SideAway, "idn-persib-23", 320, []float64{72, 34}, []float64{75, 46}},
	{matchevent.CategoryPassing, "open_play", "long_pass", formation.SideAway, "idn-persib-5", 845, []float64{92, 42}, []float64{60, 12}},
	{matchevent.CategoryPassing, "set_piece", "cross", formation.SideAway, "idn-persib-19", 3120, []float64{8, 64}, []float64{12, 36}},
	{matchevent.CategoryPassing, "open_play", "short_pass", formation.SideAway, "idn-persib-13", 3305, []float64{70, 40}, nil},
	{matchevent.CategoryShooting, "open_play", "shot_on_target", formation.SideHome, "idn-persija-9", 615, []float64{95, 36}, []float64{110, 33}},
	{matchevent.CategoryShooting, "open_play", "goal", formation.SideHome, "idn-persija-9", 2410, []float64{99, 37}, []float64{110, 35}},
	{matchevent.CategoryShooting, "set_piece", "shot_off_target", formation.SideHome, "idn-persija-4", 1250, []float64{98, 30}, []float64{110, 24}},
	{matchevent.CategoryShooting, "open_play", "blocked_shot", formation.SideAway, "idn-persib-9", 3130, []float64{12, 35}, nil},
	{matchevent.CategoryShooting, "open_play", "shot_on_target", formation.SideAway, "idn-persib-11", 4020, []float64{16, 28}, []float64{0, 33}},
	{matchevent.CategoryDuels, "aerial", "aerial_duel", formation.SideHome, "idn-persija-5", 860, []float64{62, 14}, nil},
	{matchevent.CategoryDuels, "ground", "tackle", formation.SideHome, "idn-persija-8", 1530, []float64{40, 20}, nil},
	{matchevent.CategoryDuels, "ground", "ground_duel", formation.SideAway, "idn-persib-4", 1770, []float64{90, 28}, nil},
	{matchevent.CategoryDuels, "aerial", "aerial_duel", formation.SideAway, "idn-persib-5", 3135, []float64{14, 34}, nil},
	{matchevent.CategoryDuels, "ground", "tackle", formation.SideAway, "idn-persib-13", 0, nil, nil},
	{matchevent.CategoryCarries, "progressive", "progressive_carry", formation.SideHome, "idn-persija-14", 1010, []float64{22, 60}, []float64{58, 62}},
	{matchevent.CategoryCarries, "open_play", "dribble", formation.SideHome, "idn-persija-7", 2390, []float64{70, 56}, []float64{86, 52}},
	{matchevent.CategoryCarries, "open_play", "carry", formation.SideAway, "idn-persib-7", 3600, []float64{62, 58}, []float64{40, 60}},
	{matchevent.CategoryCarries, "progressive", "progressive_carry", formation.SideAway, "idn-persib-2", 4700, []float64{90, 60}, []float64{48, 64}},
}

// SeedMatchEvents returns the categorized event stream per match.
func SeedMatchEvents() map[string][]matchevent.Event {
	out := make([]matchevent.Event, 0, len(derbyEvents))
	for i, e := range derbyEvents {
		out = append(out, matchevent.Event{
			ID:          eventID(i),
			Category:    e.category,
			Subcategory: e.subcategory,
			ActionType:  e.action,
			Start:       vecOf(e.start),
			End:         vecOf(e.end),
			Timestamp:   time.Duration(e.second) * time.Second,
			Side:        e.side,
			PlayerID:    e.playerID,
		})
	}
	return map[string][]matchevent.Event{MatchIDDerby: out}
}

func eventID(i int) string {
	return fmt.Sprintf("evt-%02d", i)
}

func vecOf(xy []float64) *r2.Vec {
	if len(xy) != 2 {
		return nil
	}
	return &r2.Vec{X: xy[0], Y: xy[1]}
}
