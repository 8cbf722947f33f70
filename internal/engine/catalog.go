package engine

// DefaultHabits is the fixed daily checklist seeded for every new user.
var DefaultHabits = []Habit{
	{ID: 1, Name: "Drink Water", XPValue: 10},
	{ID: 2, Name: "Breakfast", XPValue: 15},
	{ID: 3, Name: "Exercise", XPValue: 20},
	{ID: 4, Name: "Relax", XPValue: 15},
	{ID: 5, Name: "Shower", XPValue: 20},
	{ID: 6, Name: "Stretch", XPValue: 25},
	{ID: 7, Name: "Work", XPValue: 20},
	{ID: 8, Name: "School Work", XPValue: 30},
}

// Catalog is the habit lookup table. A copy of it is persisted with each
// user record, but its content never changes during play.
type Catalog struct {
	habits []Habit
	byID   map[int]Habit
}

func NewCatalog(habits []Habit) *Catalog {
	c := &Catalog{
		habits: append([]Habit(nil), habits...),
		byID:   make(map[int]Habit, len(habits)),
	}
	for _, h := range c.habits {
		c.byID[h.ID] = h
	}
	return c
}

func DefaultCatalog() *Catalog {
	return NewCatalog(DefaultHabits)
}

// Habits returns the catalog in definition order.
func (c *Catalog) Habits() []Habit {
	return c.habits
}

func (c *Catalog) Get(id int) (Habit, bool) {
	h, ok := c.byID[id]
	return h, ok
}

func (c *Catalog) Len() int {
	return len(c.habits)
}
