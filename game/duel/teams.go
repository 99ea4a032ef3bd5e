package duel

// Roster returns the two default teams used by the CLI and experiments.
func Roster() (team0, team1 []Creature) {
	team0 = []Creature{
		{Name: "Voltmouse", HP: 90, MaxHP: 90, Speed: 110, Moves: []Move{
			{Name: "Spark", Power: 30},
			{Name: "Volt Dash", Power: 20, VoltTurn: true},
		}},
		{Name: "Emberfox", HP: 110, MaxHP: 110, Speed: 95, CanMega: true, Moves: []Move{
			{Name: "Flame Bite", Power: 35},
			{Name: "Heat Wave", Power: 25},
		}},
		{Name: "Stoneback", HP: 150, MaxHP: 150, Speed: 40, Moves: []Move{
			{Name: "Rock Slam", Power: 40},
		}},
	}
	team1 = []Creature{
		{Name: "Tidecrab", HP: 120, MaxHP: 120, Speed: 60, Moves: []Move{
			{Name: "Bubble Jet", Power: 30},
			{Name: "Shell Smash", Power: 40},
		}},
		{Name: "Galewing", HP: 85, MaxHP: 85, Speed: 120, Moves: []Move{
			{Name: "Air Cut", Power: 25, VoltTurn: true},
			{Name: "Dive", Power: 35},
		}},
		{Name: "Thornbeast", HP: 130, MaxHP: 130, Speed: 70, CanMega: true, Moves: []Move{
			{Name: "Vine Lash", Power: 30},
		}},
	}
	return team0, team1
}

// NewDefaultState returns a battle between the default rosters.
func NewDefaultState(maxTurns int) *State {
	team0, team1 := Roster()
	return NewState(team0, team1, maxTurns)
}
