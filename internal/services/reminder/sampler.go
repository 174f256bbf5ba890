package reminder

import (
	"fmt"
	"time"

	"github.com/NordCoder/Remindus/internal/domain/notification"
)

// Sample is the wall-clock reading a tick matches users against.
type Sample struct {
	At     time.Time
	Hour   int
	Minute int
}

func (s Sample) String() string { return fmt.Sprintf("%02d:%02d", s.Hour, s.Minute) }

type TimeSampler struct {
	Clock notification.Clock
}

// Sample reads the clock once and derives hour and minute from that single
// instant, in UTC.
func (t TimeSampler) Sample() Sample {
	now := t.Clock.Now().UTC()
	return Sample{At: now, Hour: now.Hour(), Minute: now.Minute()}
}
