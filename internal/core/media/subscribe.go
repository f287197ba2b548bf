package media

const eventBuffer = 64

// Subscribe routes a target's readiness changes and, when it implements
// Observer, its playback events onto a channel. Readiness loss is reported
// as EventNotReady. Time updates are dropped when the reader falls behind;
// every other event is delivered.
func Subscribe(target Target) <-chan Event {
	ch := make(chan Event, eventBuffer)
	if target == nil {
		return ch
	}

	deliver := func(ev Event) {
		if ev.Kind == EventTimeUpdate {
			select {
			case ch <- ev:
			default:
			}
			return
		}
		ch <- ev
	}

	target.OnReadyChanged(func(ready bool) {
		if ready {
			deliver(Event{Kind: EventReady})
		} else {
			deliver(Event{Kind: EventNotReady})
		}
	})

	if obs, ok := target.(Observer); ok {
		obs.OnEvent(func(ev Event) {
			// readiness already arrives through OnReadyChanged
			if ev.Kind == EventReady || ev.Kind == EventNotReady {
				return
			}
			deliver(ev)
		})
	}

	return ch
}
