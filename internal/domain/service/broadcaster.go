package service

// Broadcaster pushes an event to every live subscriber.
// Broadcast must not block on slow subscribers.
type Broadcaster interface {
	Broadcast(event string, payload any)
}
