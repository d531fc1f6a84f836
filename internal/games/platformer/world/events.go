package world

// EventKind classifies something that happened during a step.
type EventKind int

const (
	EventLevelComplete EventKind = iota
	EventHeroDied
	EventHeroHurt
	EventSpikeHit
	EventOrcSpawned
	EventKeyCollected
	EventCoinCollected
	EventArrowFired
	EventArrowHit
	EventEnemyKilled
	EventJumpPad
	EventInvariantViolation
)

func (k EventKind) String() string {
	switch k {
	case EventLevelComplete:
		return "level_complete"
	case EventHeroDied:
		return "hero_died"
	case EventHeroHurt:
		return "hero_hurt"
	case EventSpikeHit:
		return "spike_hit"
	case EventOrcSpawned:
		return "orc_spawned"
	case EventKeyCollected:
		return "key_collected"
	case EventCoinCollected:
		return "coin_collected"
	case EventArrowFired:
		return "arrow_fired"
	case EventArrowHit:
		return "arrow_hit"
	case EventEnemyKilled:
		return "enemy_killed"
	case EventJumpPad:
		return "jump_pad"
	case EventInvariantViolation:
		return "invariant_violation"
	default:
		return "unknown"
	}
}

// Event is emitted by controllers. ID is the entity the event is about and
// Value carries a kind-specific amount (damage, coins gained, key count).
type Event struct {
	Kind  EventKind
	Tick  int64
	ID    EntityID
	Value int
}
