package domain

import "time"

const (
	ScopeGlobal   = "global"
	ScopePersonal = "personal"

	// DateLayout keys question sets by calendar day.
	DateLayout = "2006-01-02"
)

// Category ids used by the trivia source.
var topicCategories = map[string]int{
	"geografia":  22,
	"historia":   23,
	"naturaleza": 17,
	"random":     9,
}

// DefaultTopics is the fixed set refreshed by a fetch run, in fetch order.
var DefaultTopics = []string{"geografia", "historia", "naturaleza", "random"}

// CategoryFor resolves a topic to the trivia source's category id.
func CategoryFor(topic string) (int, bool) {
	id, ok := topicCategories[topic]
	return id, ok
}

// DayKey formats t as the UTC calendar day used to key question sets.
func DayKey(t time.Time) string {
	return t.UTC().Format(DateLayout)
}
