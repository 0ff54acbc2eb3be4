package reminders

import (
	"math/rand"
	"strings"
)

// Message bodies are drawn uniformly at random from a fixed pool per reminder
// slot, with NAME/TASK/TIME placeholders substituted afterwards. A profile
// without a name selects the anonymous pool instead; personalization never
// affects scheduling itself.

var pickTaskNamed = []string{
	"Good morning, NAME! What's your one thing today?",
	"NAME, a new day is waiting. Pick today's task.",
	"Time to choose, NAME. What will you focus on today?",
	"NAME, your streak is counting on you. Pick a task.",
}

var pickTaskAnon = []string{
	"Good morning! What's your one thing today?",
	"A new day is waiting. Pick today's task.",
	"Time to choose. What will you focus on today?",
	"Your streak is counting on you. Pick a task.",
}

var focusNudgeNamed = []string{
	"NAME, it's TIME. Time to work on: TASK",
	"Ready, NAME? TASK is scheduled for now.",
	"NAME, you planned TASK for TIME. Go get it.",
}

var focusNudgeAnon = []string{
	"It's TIME. Time to work on: TASK",
	"Ready? TASK is scheduled for now.",
	"You planned TASK for TIME. Go get it.",
}

var wrapUpNamed = []string{
	"NAME, the day is winding down. Finish what you started.",
	"Almost done, NAME? There's still a task waiting.",
	"NAME, close out your day. One task left to check off.",
}

var wrapUpAnon = []string{
	"The day is winding down. Finish what you started.",
	"Almost done? There's still a task waiting.",
	"Close out your day. One task left to check off.",
}

type messageVars struct {
	Name string
	Task string
	Time string
}

func pickMessage(rng *rand.Rand, named, anon []string, vars messageVars) string {
	pool := anon
	if vars.Name != "" {
		pool = named
	}
	msg := pool[rng.Intn(len(pool))]
	msg = strings.ReplaceAll(msg, "NAME", vars.Name)
	msg = strings.ReplaceAll(msg, "TASK", vars.Task)
	msg = strings.ReplaceAll(msg, "TIME", vars.Time)
	return msg
}
