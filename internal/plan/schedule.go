package plan

import "strings"

// Day indices, Monday through Sunday.
const (
	monday = iota
	tuesday
	wednesday
	thursday
	friday
	saturday
	sunday
)

var dayNames = [7]string{"Lundi", "Mardi", "Mercredi", "Jeudi", "Vendredi", "Samedi", "Dimanche"}

// RestLabel is the activity label of an empty day.
const RestLabel = "Repos"

// AssignSchedule places a week's sessions on the 7-day grid. Placement is
// purely presentational: it can be recomputed at will without touching
// session identity or completion state.
func AssignSchedule(sessions []Session, hyroxMode bool) Schedule {
	var sched Schedule
	ids := make([][]string, 7)
	slotSessions := make([][]Session, 7)

	place := func(day int, s Session) {
		ids[day] = append(ids[day], s.ID)
		slotSessions[day] = append(slotSessions[day], s)
	}

	if hyroxMode {
		assignHyrox(sessions, place, ids, slotSessions)
	} else {
		assignStandard(sessions, place, ids)
	}

	for d := 0; d < 7; d++ {
		slot := DaySlot{Day: dayNames[d], SessionIDs: ids[d]}
		slot.Activity = activityLabel(slotSessions[d])
		slot.Focus = focusLabel(slotSessions[d])
		sched.Days[d] = slot
	}
	return sched
}

func assignStandard(sessions []Session, place func(int, Session), ids [][]string) {
	placed := make(map[string]bool)
	taken := func(day int) bool { return len(ids[day]) > 0 }

	// Long or endurance run anchors Sunday.
	for _, s := range sessions {
		if s.Category == CategoryRun && isLongRun(s) {
			place(sunday, s)
			placed[s.ID] = true
			break
		}
	}

	// Quality run anchors Tuesday.
	for _, s := range sessions {
		if s.Category == CategoryRun && s.Intensity == IntensityHigh && !placed[s.ID] {
			place(tuesday, s)
			placed[s.ID] = true
			break
		}
	}

	// Heavy-legs strength owns the Friday "Force" day, falling back to
	// Thursday when Friday is already taken.
	for _, s := range sessions {
		if s.Category == CategoryStrength && isLegDay(s) && !placed[s.ID] {
			day := friday
			if taken(friday) {
				day = thursday
			}
			place(day, s)
			placed[s.ID] = true
			break
		}
	}

	strengthOrder := []int{monday, wednesday, thursday, saturday}
	next := 0
	for _, s := range sessions {
		if s.Category != CategoryStrength || placed[s.ID] {
			continue
		}
		day := pickDay(strengthOrder, &next, taken)
		place(day, s)
		placed[s.ID] = true
	}

	runOrder := []int{thursday, saturday, monday}
	next = 0
	for _, s := range sessions {
		if s.Category != CategoryRun || placed[s.ID] {
			continue
		}
		day := pickDay(runOrder, &next, taken)
		place(day, s)
		placed[s.ID] = true
	}

	// Anything left over (hyrox sessions in a non-hyrox week cannot
	// happen, but never drop a session) lands on the first free day.
	for _, s := range sessions {
		if !placed[s.ID] {
			place(pickDay([]int{monday, tuesday, wednesday, thursday, friday, saturday, sunday}, new(int), taken), s)
			placed[s.ID] = true
		}
	}
}

var (
	hyroxWODOrder      = []int{tuesday, thursday, saturday, sunday, monday, wednesday, friday}
	hyroxStrengthOrder = []int{monday, wednesday, friday, tuesday, thursday, saturday, sunday}
	hyroxRunOrder      = []int{wednesday, saturday, monday, thursday, tuesday, friday, sunday}
)

func assignHyrox(sessions []Session, place func(int, Session), ids [][]string, slotSessions [][]Session) {
	taken := func(day int) bool { return len(ids[day]) > 0 }

	next := 0
	for _, s := range sessions {
		if s.Category != CategoryHyrox {
			continue
		}
		place(pickDay(hyroxWODOrder, &next, taken), s)
	}

	next = 0
	for _, s := range sessions {
		if s.Category != CategoryStrength {
			continue
		}
		place(pickDay(hyroxStrengthOrder, &next, taken), s)
	}

	// Extra runs may share a day holding exactly one strength session
	// (combined day), never a day with a run or a Hyrox session.
	runBlocked := func(day int) bool {
		slot := slotSessions[day]
		if len(slot) == 0 {
			return false
		}
		if len(slot) == 1 && slot[0].Category == CategoryStrength {
			return false
		}
		return true
	}
	next = 0
	for _, s := range sessions {
		if s.Category != CategoryRun {
			continue
		}
		place(pickDay(hyroxRunOrder, &next, runBlocked), s)
	}
}

// pickDay walks the priority order from the cursor, returning the first day
// the blocked predicate accepts. When every day is blocked it returns the
// plain next day in order: a session always gets a slot.
func pickDay(order []int, next *int, blocked func(int) bool) int {
	for i := 0; i < len(order); i++ {
		day := order[(*next+i)%len(order)]
		if !blocked(day) {
			*next = (*next + i + 1) % len(order)
			return day
		}
	}
	day := order[*next%len(order)]
	*next = (*next + 1) % len(order)
	return day
}

func isLongRun(s Session) bool {
	return strings.HasPrefix(s.Type, "Sortie Longue") || strings.HasPrefix(s.Type, "Endurance")
}

// isLegDay reports whether a strength session targets sleds or heavy legs,
// which claims the dedicated Force day.
func isLegDay(s Session) bool {
	t := strings.ToLower(s.Type)
	return strings.Contains(t, "jambes") || strings.Contains(t, "bas du corps") || strings.Contains(t, "sled")
}

func activityLabel(slot []Session) string {
	if len(slot) == 0 {
		return RestLabel
	}
	parts := make([]string, len(slot))
	for i, s := range slot {
		parts[i] = s.Type
	}
	return strings.Join(parts, " + ")
}

func focusLabel(slot []Session) string {
	if len(slot) == 0 {
		return "Récupération"
	}
	for _, s := range slot {
		if s.Category == CategoryStrength && isLegDay(s) {
			return "Force"
		}
	}
	switch slot[0].Category {
	case CategoryRun:
		return "Course"
	case CategoryHyrox:
		return "Hyrox"
	default:
		return "Renforcement"
	}
}
