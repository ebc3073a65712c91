package tagcache

// Timer is a started measurement. Stop must be called exactly once.
type Timer interface {
	Stop()
}

// Monitor times backend and transaction operations.
// tags carries "db" (Options.MonitorName) and "operation".
type Monitor interface {
	CreateTimer(tags map[string]string) Timer
}

type NopMonitor struct{}

type nopTimer struct{}

func (nopTimer) Stop() {}

func (NopMonitor) CreateTimer(map[string]string) Timer { return nopTimer{} }
